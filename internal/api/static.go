package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// secDataPage is the filings lookup page shipped in the public directory.
const secDataPage = "secData.html"

// noListingFS hides directories that have no index.html, so the file server answers 404
// instead of rendering a listing.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		index, err := n.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			_ = f.Close()
			return nil, os.ErrNotExist
		}
		_ = index.Close()
	}
	return f, nil
}

// staticFallback serves files from dir for any request no route matched.
// Only GET and HEAD are served; other methods and missing files get the standard 404.
func staticFallback(dir string) gin.HandlerFunc {
	fs := http.FileServer(noListingFS{fs: http.Dir(dir)})
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			http.NotFound(c.Writer, c.Request)
			return
		}
		fs.ServeHTTP(c.Writer, c.Request)
	}
}

// registerPages mounts named HTML pages that do not map 1:1 to file names.
func registerPages(r *gin.Engine, dir string) {
	r.GET("/sec-data", func(c *gin.Context) {
		c.File(filepath.Join(dir, secDataPage))
	})
}
