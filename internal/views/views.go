// Package views derives presentation lists from store snapshots.
// Everything here is a pure function over a copy of the canonical
// state; nothing is cached and nothing writes back.
package views

import (
	"sort"
	"strings"

	"github.com/mroshb/watch_club/internal/models"
)

// Sort modes for the tracked-items list.
const (
	SortAddedAsc     = "added_asc"
	SortAddedDesc    = "added_desc"
	SortRatingAsc    = "rating_low"
	SortRatingDesc   = "rating_high"
	SortMyRatingAsc  = "my_rating_low"
	SortMyRatingDesc = "my_rating_high"
)

// Query describes one projection of the tracked-items collection.
// Page is 1-indexed. The caller is responsible for clamping Page into
// range; out-of-range pages simply project to an empty slice.
type Query struct {
	Search   string
	Tab      string // a watch status, or models.StatusAll
	Sort     string
	Page     int
	PageSize int
}

// Page is one projected slice of the filtered, sorted collection.
type Page struct {
	Items     []models.TrackedItem
	Total     int // filtered length before pagination
	PageCount int
}

// Project filters, sorts and paginates a snapshot of tracked items.
func Project(items []models.TrackedItem, q Query) Page {
	filtered := Filter(items, q.Search, q.Tab)
	Sort(filtered, q.Sort)
	return Paginate(filtered, q.Page, q.PageSize)
}

// Filter keeps items whose title contains the search string
// (case-insensitive) and whose status matches the tab. The all tab
// matches every status.
func Filter(items []models.TrackedItem, search, tab string) []models.TrackedItem {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.TrackedItem, 0, len(items))
	for _, it := range items {
		if tab != "" && tab != models.StatusAll && it.Status != tab {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(it.Title), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Sort orders items in place by the given mode. The sort is stable:
// items with equal keys keep their pre-sort relative order. Items with
// no external rating sort as the lowest possible rating. An unknown
// mode leaves insertion order untouched.
func Sort(items []models.TrackedItem, mode string) {
	less := lessFunc(mode)
	if less == nil {
		return
	}
	sort.SliceStable(items, less(items))
}

func lessFunc(mode string) func([]models.TrackedItem) func(i, j int) bool {
	switch mode {
	case SortAddedAsc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return items[i].AddedAt.Before(items[j].AddedAt) }
		}
	case SortAddedDesc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return items[j].AddedAt.Before(items[i].AddedAt) }
		}
	case SortRatingAsc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return externalRating(items[i]) < externalRating(items[j]) }
		}
	case SortRatingDesc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return externalRating(items[j]) < externalRating(items[i]) }
		}
	case SortMyRatingAsc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return items[i].UserRating < items[j].UserRating }
		}
	case SortMyRatingDesc:
		return func(items []models.TrackedItem) func(i, j int) bool {
			return func(i, j int) bool { return items[j].UserRating < items[i].UserRating }
		}
	}
	return nil
}

func externalRating(it models.TrackedItem) float64 {
	if it.ExternalRating == nil {
		return -1
	}
	return *it.ExternalRating
}

// Paginate slices one 1-indexed page out of the filtered collection.
func Paginate(items []models.TrackedItem, page, pageSize int) Page {
	if pageSize <= 0 {
		return Page{Items: []models.TrackedItem{}, Total: len(items)}
	}

	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= total {
		return Page{Items: []models.TrackedItem{}, Total: total, PageCount: pageCount}
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]models.TrackedItem, end-start)
	copy(out, items[start:end])
	return Page{Items: out, Total: total, PageCount: pageCount}
}
