package dashboard

import (
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"userAnalytics/models"
)

// Histogram groups values into nbins equal-width bins spanning [min, max].
// The last bin is closed so max is counted. When every value is equal a single
// bin of width one is returned. Empty input yields no bins.
func Histogram(values []int, nbins int) []Bin {
	if len(values) == 0 || nbins <= 0 {
		return nil
	}
	low, high := slices.Min(values), slices.Max(values)
	if low == high {
		return []Bin{{Lower: float64(low), Upper: float64(low + 1), Count: len(values)}}
	}

	width := float64(high-low) / float64(nbins)
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i].Lower = float64(low) + float64(i)*width
		bins[i].Upper = float64(low) + float64(i+1)*width
	}
	bins[nbins-1].Upper = float64(high)
	for _, v := range values {
		i := int(float64(v-low) / width)
		if i >= nbins {
			i = nbins - 1
		}
		bins[i].Count++
	}
	return bins
}

// DomainCounts counts users per email domain, most common first and ties by
// domain. Users without a domain are counted under NoDomainLabel so the counts
// always add up to len(users).
func DomainCounts(users []models.EnrichedUser) []Slice {
	counts := lo.CountValuesBy(users, func(u models.EnrichedUser) string {
		if u.EmailDomain == nil {
			return NoDomainLabel
		}
		return *u.EmailDomain
	})
	out := lo.Map(lo.Entries(counts), func(e lo.Entry[string, int], _ int) Slice {
		return Slice{Label: e.Key, Count: e.Value}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// LengthCounts counts users per distinct name length, ascending by length.
func LengthCounts(users []models.EnrichedUser) []Bar {
	counts := lo.CountValuesBy(users, func(u models.EnrichedUser) int { return u.NameLength })
	out := lo.Map(lo.Entries(counts), func(e lo.Entry[int, int], _ int) Bar {
		return Bar{NameLength: e.Key, Count: e.Value}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].NameLength < out[j].NameLength })
	return out
}

// DailySeries synthesizes one date per row, one day apart from start, and
// counts rows per date. Dates are unique, so every count is 1. The series is a
// placeholder: the source data carries no creation timestamps.
func DailySeries(n int, start time.Time) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{Date: start.AddDate(0, 0, i), Count: 1}
	}
	return out
}

// TableGrid lays out the six stored columns, one row per user, left aligned.
func TableGrid(users []models.EnrichedUser) Grid {
	g := Grid{
		Header: append([]string(nil), models.UserColumns...),
		Rows:   make([][]string, len(users)),
		Align:  "left",
	}
	for i, u := range users {
		id := ""
		if u.ID != nil {
			id = strconv.FormatInt(*u.ID, 10)
		}
		g.Rows[i] = []string{id, cell(u.Name), cell(u.Username), cell(u.Email), cell(u.Phone), cell(u.Website)}
	}
	return g
}
