package service

import (
	"fmt"
	"sort"
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

// Score contributions for the recommendation heuristic.
const (
	pointsCityMatch  = 42
	pointsQueryMatch = 24
	pointsFavorite   = 16
	pointsHighDemand = 10
	pointsBestValue  = 8

	// Displayed percentages stay in a "confident but not absolute" band
	// regardless of how the raw points land.
	matchPercentFloor = 55
	matchPercentCeil  = 96

	// Views above this threshold flag a listing as high-demand even
	// without an external label.
	highDemandViews = 50
)

// Reason tags shown to the user, in priority order.
const (
	ReasonFavorites  = "Because you favorited similar homes"
	ReasonSearches   = "Based on your searches"
	ReasonPopular    = "Popular with similar users"
	ReasonGreatValue = "Great value for your budget"
	ReasonSmartMatch = "Smart Match"
)

// Cue labels, a presentation-only confidence band by match percent.
const (
	CueHighConfidence = "High Confidence"
	CueSmartMatch     = "Smart Match"
	CueTrending       = "Trending Prediction"
)

// Ranking modes.
const (
	ModeAuto    = "auto"
	ModePreview = "preview"
)

// RankOptions carries the user/session context a ranking call scores
// against. Every field is optional; absent context is neutral, never an
// error.
type RankOptions struct {
	UserID       string
	FavoriteIDs  []string
	SearchIntent *model.SearchIntent
	Limit        int
	Mode         string
}

// Ranker scores properties against a user's inferred intent and produces
// ranked recommendations with human-readable explanations.
type Ranker struct {
	defaultLimit int
}

// NewRanker creates a ranker with the given default result count.
func NewRanker(defaultLimit int) *Ranker {
	if defaultLimit <= 0 {
		defaultLimit = 6
	}
	return &Ranker{defaultLimit: defaultLimit}
}

// Rank scores every property against the context in opts and returns the
// top results ordered by descending match percent. The sort is stable, so
// listings with an identical percent keep their input order; the per-ID jitter
// already separates most ties deterministically.
func (r *Ranker) Rank(properties []model.Property, opts RankOptions) []model.RecommendationResult {
	var intent model.SearchIntent
	if opts.SearchIntent != nil {
		intent = *opts.SearchIntent
	}
	city := utils.NormalizeTerm(intent.City)
	query := utils.NormalizeTerm(intent.Query)

	favorites := make(map[string]struct{}, len(opts.FavoriteIDs))
	for _, id := range opts.FavoriteIDs {
		if id != "" {
			favorites[id] = struct{}{}
		}
	}

	preview := opts.Mode == ModePreview || opts.UserID == ""

	results := make([]model.RecommendationResult, 0, len(properties))
	for i := range properties {
		p := properties[i]

		score := jitter(p.ID)

		cityMatch := city != "" && utils.NormalizeTerm(p.Address.City) == city
		if cityMatch {
			score += pointsCityMatch
		}

		queryMatch := query != "" && (utils.ContainsFold(p.Title, query) ||
			utils.ContainsFold(p.Description, query) ||
			utils.ContainsFold(p.Address.City, query))
		if queryMatch {
			score += pointsQueryMatch
		}

		_, favorite := favorites[p.ID]
		if favorite {
			score += pointsFavorite
		}

		highDemand := utils.ContainsFold(p.AILabel, "high demand") || p.Views > highDemandViews
		if highDemand {
			score += pointsHighDemand
		}

		_, priced := monthlyPrice(&p)
		bestValue := utils.ContainsFold(p.AILabel, "best value") || priced
		if bestValue {
			score += pointsBestValue
		}

		matchPercent := utils.ClampInt(score, matchPercentFloor, matchPercentCeil)
		reasonTag, explanation := buildReason(&p, intent, cityMatch, favorite, highDemand, bestValue)
		cueLabel, cueTone := cueFor(matchPercent)

		results = append(results, model.RecommendationResult{
			Property:     p,
			MatchPercent: matchPercent,
			ReasonTag:    reasonTag,
			Explanation:  explanation,
			CueLabel:     cueLabel,
			CueTone:      cueTone,
			Preview:      preview,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// jitter derives a small deterministic offset (0-6) from the property ID
// so otherwise-identical listings do not tie. The hash folds each code
// point left to right as h = (h*31 + c) mod 97 and takes h mod 7; it must
// stay this exact recurrence so results are reproducible across processes.
func jitter(id string) int {
	h := 0
	for _, c := range id {
		h = (h*31 + int(c)) % 97
	}
	return h % 7
}

// cueFor picks the presentation band for a match percent.
func cueFor(matchPercent int) (label, tone string) {
	switch {
	case matchPercent >= 85:
		return CueHighConfidence, "success"
	case matchPercent >= 72:
		return CueSmartMatch, "info"
	default:
		return CueTrending, "warning"
	}
}

// buildReason selects the reason tag and the longer "why this?" sentence.
// First matching signal wins: favorites, then a city hit on the saved
// search, then demand, then value.
func buildReason(p *model.Property, intent model.SearchIntent, cityMatch, favorite, highDemand, bestValue bool) (string, string) {
	switch {
	case favorite:
		return ReasonFavorites,
			"You saved homes like this one, so it should feel familiar."
	case cityMatch:
		return ReasonSearches,
			fmt.Sprintf("Matches your recent search for homes in %s.", strings.TrimSpace(intent.City))
	case highDemand:
		return ReasonPopular,
			"Renters with similar searches are viewing this home right now."
	case bestValue:
		return ReasonGreatValue,
			"Priced competitively against comparable homes in its area."
	default:
		return ReasonSmartMatch,
			"A solid all-round match based on your activity."
	}
}
