package model

// PropertyFilter represents structured listing filters.
type PropertyFilter struct {
	City     string  `json:"city,omitempty"`
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
	Sort     string  `json:"sort,omitempty"` // quality, price_asc, price_desc, recent
}

// PropertyListResponse is a paginated listing page with quality scores.
type PropertyListResponse struct {
	Items  []ScoredProperty `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// RecommendRequest asks for personalized recommendations. Every field is
// optional: an absent user or intent simply degrades to preview-style,
// non-personalized results.
type RecommendRequest struct {
	UserID       string        `json:"user_id,omitempty"`
	FavoriteIDs  []string      `json:"favorite_ids,omitempty"`
	SearchIntent *SearchIntent `json:"search_intent,omitempty"`
	Limit        int           `json:"limit,omitempty"`
	Mode         string        `json:"mode,omitempty"` // auto (default) or preview
}

// RecommendationResult is one ranked recommendation with its "why this?"
// explanation. Created fresh per ranking call, never stored.
type RecommendationResult struct {
	Property     Property `json:"property"`
	MatchPercent int      `json:"match_percent"`
	ReasonTag    string   `json:"reason_tag"`
	Explanation  string   `json:"explanation"`
	CueLabel     string   `json:"cue_label"`
	CueTone      string   `json:"cue_tone"`
	Preview      bool     `json:"preview"`
}

// RecommendResponse is the ranked recommendation payload. RecommendationID
// identifies this result set in later feedback submissions.
type RecommendResponse struct {
	RecommendationID string                 `json:"recommendation_id"`
	Results          []RecommendationResult `json:"results"`
	Total            int                    `json:"total"`
	Took             int64                  `json:"took_ms"`
}

// IntentSaveRequest records the search a user just issued.
type IntentSaveRequest struct {
	UserID string `json:"user_id,omitempty"`
	City   string `json:"city"`
	Query  string `json:"query"`
}

// FeedbackRequest represents a user action on a recommendation
type FeedbackRequest struct {
	RecommendationID string `json:"recommendation_id" binding:"required"`
	PropertyID       string `json:"property_id" binding:"required"`
	Action           string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
