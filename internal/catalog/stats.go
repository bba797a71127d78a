package catalog

import "math"

// Stats are the dashboard figures shown to admins.
type Stats struct {
	Total        int   `json:"total"`
	AveragePrice int64 `json:"average_price"`
	Categories   int   `json:"categories"`
}

// Summarize computes Stats over props. The average is rounded half away
// from zero; it is 0 for an empty catalog.
func Summarize(props []Property) Stats {
	st := Stats{Total: len(props)}
	if len(props) == 0 {
		return st
	}

	var sum float64
	seen := make(map[Category]struct{})
	for _, p := range props {
		sum += p.Price
		seen[p.Category] = struct{}{}
	}
	st.AveragePrice = int64(math.Round(sum / float64(len(props))))
	st.Categories = len(seen)
	return st
}
