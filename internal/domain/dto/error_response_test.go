package dto

import (
	"encoding/json"
	"testing"
)

func TestErrorResponse_Error(t *testing.T) {
	e := NewErrorResponse("oops")
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
}

func TestErrorResponse_JSONShape(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse(MsgQuoteFetchFailed))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"error":"Error fetching data"}` {
		t.Fatalf("unexpected body %s", b)
	}
}
