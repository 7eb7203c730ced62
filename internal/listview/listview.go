// Package listview implements the in-memory filter/sort/paginate pipeline
// shared by the customer, order and product list screens.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Predicate decides whether an item stays in the view.
type Predicate[T any] func(T) bool

// Filter keeps the items every predicate accepts. Predicates AND
// together; no predicates means everything passes.
func Filter[T any](items []T, predicates ...Predicate[T]) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		ok := true
		for _, pred := range predicates {
			if !pred(item) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, item)
		}
	}
	return kept
}

// TextSearch matches when the query appears in any of the given string
// fields, case-insensitively. An empty query matches everything.
func TextSearch[T any](query string, fields ...func(T) string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(query))
	return func(item T) bool {
		if needle == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Exact matches the field against want, case-insensitively. An empty
// want (the "all" option in a dropdown) matches everything.
func Exact[T any](want string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if want == "" {
			return true
		}
		return strings.EqualFold(field(item), want)
	}
}

// Within keeps items whose timestamp falls inside the window ending at
// now. A zero window matches everything.
func Within[T any](window time.Duration, now time.Time, field func(T) time.Time) Predicate[T] {
	return func(item T) bool {
		if window == 0 {
			return true
		}
		return !field(item).Before(now.Add(-window))
	}
}

// Direction of the active sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// collator backs every string comparison in list views. Und gives
// locale-neutral collation that still orders accented names sensibly.
var collator = collate.New(language.Und)

// StringKey builds a locale-aware comparator over a string field.
func StringKey[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return collator.CompareString(field(a), field(b))
	}
}

// NumberKey compares a numeric field by direct subtraction.
func NumberKey[T any](field func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		switch diff := field(a) - field(b); {
		case diff < 0:
			return -1
		case diff > 0:
			return 1
		default:
			return 0
		}
	}
}

// DecimalKey compares a money field.
func DecimalKey[T any](field func(T) decimal.Decimal) func(a, b T) int {
	return func(a, b T) int {
		return field(a).Cmp(field(b))
	}
}

// TimeKey compares timestamps.
func TimeKey[T any](field func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

// SortBy returns a sorted copy. The sort is stable in both directions:
// descending swaps the comparator's arguments rather than reversing the
// result, so ties keep their input order either way.
func SortBy[T any](items []T, cmp func(a, b T) int, direction Direction) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == Descending {
			return cmp(sorted[j], sorted[i]) < 0
		}
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// Page is one slice of a filtered, sorted collection.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginate slices out the 1-indexed page. Pages past the end come back
// empty with HasNext false; they are never an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}
