package model

// SearchIntent is the single most recent city/query pair a user searched
// with, used as personalization context by the recommendation ranker.
// Exactly one slot exists per user: every new search overwrites it.
type SearchIntent struct {
	City  string `json:"city"`
	Query string `json:"query"`
	At    int64  `json:"at"` // capture time, epoch milliseconds
}

// IsZero reports whether the record carries no usable context.
func (s SearchIntent) IsZero() bool {
	return s.City == "" && s.Query == ""
}
