package dto

// ImportSummary is the result of a CSV statement import.
type ImportSummary struct {
	Created             int      `json:"created"`
	UnresolvedMerchants []string `json:"unresolvedMerchants"`
}

// AddKeywordRequest defines the payload for extending the keyword table.
type AddKeywordRequest struct {
	Keyword  string `json:"keyword" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// KeywordResponse is one keyword table entry.
type KeywordResponse struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}
