package dto

// FilingsRequest is the body of POST /fetch-sec-data.
type FilingsRequest struct {
	Ticker string `json:"ticker" binding:"required" example:"AAPL"`
}
