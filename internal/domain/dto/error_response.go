package dto

// Fixed client-facing error messages.
const (
	MsgQuoteFetchFailed  = "Error fetching data"
	MsgFilingFetchFailed = "Error fetching filings"
	MsgInternalError     = "Internal server error"
	MsgRequestTimeout    = "request timed out"
)

// ErrorResponse is the JSON error body returned by every endpoint: {"error": "..."}.
//
// Error causes are logged server-side and never included in the body.
type ErrorResponse struct {
	Message string `json:"error" example:"Error fetching data"`
}

// NewErrorResponse builds an ErrorResponse with the given client-facing message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// Error implements the error interface so the DTO can travel through c.Error.
func (e ErrorResponse) Error() string {
	return e.Message
}
