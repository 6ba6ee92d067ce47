// Package catalog holds the pure search, filter and geometry helpers the
// stylist pages share.
package catalog

import (
	"slices"
	"sort"
	"strings"

	"myhair/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sort orders accepted by Filter.
const (
	SortRating  = "rating"
	SortWaiting = "waiting"
	SortPopular = "popular"
)

// Availability values accepted by Filter.
const (
	AvailabilityAll       = "all"
	AvailabilityAvailable = "available"
	AvailabilityPopular   = "popular"
)

// BusyThreshold is the queue length from which a stylist counts as busy.
const BusyThreshold = 5

// Filters is the search page state. Zero values match everything.
type Filters struct {
	City         string
	Category     string // "" or "all" for any
	MinRating    float64
	Availability string // "", "all", "available" or "popular"
	Sort         string
}

// DefaultFilters is the state of a fresh search page.
func DefaultFilters() Filters {
	return Filters{Category: "all", Availability: AvailabilityAll, Sort: SortRating}
}

// Active reports whether any filter narrows the list.
func (f Filters) Active() bool {
	return f.City != "" ||
		(f.Category != "" && f.Category != "all") ||
		f.MinRating > 0 ||
		(f.Availability != "" && f.Availability != AvailabilityAll)
}

// Filter returns the stylists matching f in f.Sort order. The input slice
// is never modified.
func Filter(stylists []model.Stylist, f Filters) []model.Stylist {
	out := make([]model.Stylist, 0, len(stylists))
	for _, s := range stylists {
		if matches(s, f) {
			out = append(out, s)
		}
	}

	switch f.Sort {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortWaiting:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Waiting < out[j].Waiting })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Capacity > out[j].Capacity })
	}
	return out
}

func matches(s model.Stylist, f Filters) bool {
	if f.City != "" && s.City != f.City {
		return false
	}
	if f.Category != "" && f.Category != "all" && s.Category != f.Category {
		return false
	}
	if f.MinRating > 0 && s.Rating < f.MinRating {
		return false
	}
	switch f.Availability {
	case AvailabilityAvailable:
		return s.Waiting < BusyThreshold
	case AvailabilityPopular:
		return s.Waiting >= BusyThreshold
	}
	return true
}

// Cities returns the distinct non-empty cities, sorted.
func Cities(stylists []model.Stylist) []string {
	return distinct(stylists, func(s model.Stylist) string { return s.City })
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(stylists []model.Stylist) []string {
	return distinct(stylists, func(s model.Stylist) string { return s.Category })
}

func distinct(stylists []model.Stylist, field func(model.Stylist) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range stylists {
		v := field(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MatchName keeps the stylists whose name or city contains term, ignoring
// case. An empty term keeps everything.
func MatchName(stylists []model.Stylist, term string) []model.Stylist {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(term))
	if needle == "" {
		return slices.Clone(stylists)
	}
	var out []model.Stylist
	for _, s := range stylists {
		if strings.Contains(folder.String(s.Name), needle) || strings.Contains(folder.String(s.City), needle) {
			out = append(out, s)
		}
	}
	return out
}

// DisplayName title-cases a name typed in any case, e.g. "amal ben ali".
// Casers are stateful, so each call builds its own.
func DisplayName(name string) string {
	return cases.Title(language.French).String(strings.TrimSpace(name))
}

// QueueDelta applies delta to a queue length, never going below zero.
func QueueDelta(current, delta int) int {
	if n := current + delta; n > 0 {
		return n
	}
	return 0
}
