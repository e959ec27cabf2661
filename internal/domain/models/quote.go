package models

import "encoding/json"

// Quote module names understood by the Yahoo quoteSummary endpoint.
const (
	ModuleSummaryDetail        = "summaryDetail"
	ModulePrice                = "price"
	ModuleDefaultKeyStatistics = "defaultKeyStatistics"
)

// QuoteModules is the fixed module set requested for every ticker lookup.
var QuoteModules = []string{ModuleSummaryDetail, ModulePrice, ModuleDefaultKeyStatistics}

// QuoteResult is the provider's result object for one ticker, kept as raw JSON.
// It is written back to clients byte-for-byte and never decoded.
//
// swagger:model QuoteResult
type QuoteResult = json.RawMessage
