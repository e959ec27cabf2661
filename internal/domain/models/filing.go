package models

// Filing is one row of the SEC EDGAR company filings table.
type Filing struct {
	Date string `json:"date" example:"2024-11-01"`
	Type string `json:"type" example:"10-K"`
}
