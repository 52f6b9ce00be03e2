package screener

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Alias1177/TradeVault/internal/model"
)

// DefaultMinScore hides listings with weak signals.
const DefaultMinScore = 20

const minPossibleScore = math.MinInt32

// CapAll disables the cap filter.
const CapAll = "all"

// SortKey orders filtered listings.
type SortKey string

const (
	SortScore  SortKey = "score" // highest first
	SortChange SortKey = "chg"   // biggest day gain first
	SortRSI    SortKey = "rsi"   // most oversold first
)

// ParseSortKey validates a sort key; empty means score.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortScore, nil
	case SortScore, SortChange, SortRSI:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", model.ErrInvalidParameter, s)
}

// Query filters by cap class and minimum score, then sorts.
type Query struct {
	Cap      string
	MinScore int
	SortBy   SortKey
}

// DefaultQuery shows every cap class above the default min score.
func DefaultQuery() Query {
	return Query{Cap: CapAll, MinScore: DefaultMinScore, SortBy: SortScore}
}

// Apply returns the matching listings sorted; ties keep input order.
func (q Query) Apply(listings []model.Listing) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if q.Cap != "" && !strings.EqualFold(q.Cap, CapAll) && !strings.EqualFold(l.Cap, q.Cap) {
			continue
		}
		if l.Asset.Score < q.MinScore {
			continue
		}
		out = append(out, l)
	}

	switch q.SortBy {
	case SortChange:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Asset.DayChangePercent > out[j].Asset.DayChangePercent
		})
	case SortRSI:
		sort.SliceStable(out, func(i, j int) bool {
			ri, okI := out[i].Asset.Snapshot.RSI.Get()
			rj, okJ := out[j].Asset.Snapshot.RSI.Get()
			if okI != okJ {
				return okI
			}
			return ri < rj
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Asset.Score > out[j].Asset.Score
		})
	}
	return out
}
