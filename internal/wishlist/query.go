package wishlist

import (
	"sort"
	"strings"
)

// Sort fields understood by the query engine. Anything else leaves the
// collection in store order.
const (
	SortByPrice     = "price"
	SortByCreatedAt = "createdAt"
	SortByStatus    = "status"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query filters and sorts the in-memory collection. Filters compose with AND;
// zero values impose no constraint. Order falls back to ascending for any
// value other than "desc".
type Query struct {
	Status     string
	ReservedBy string
	SortBy     string
	Order      string
}

// Apply evaluates the query against the collection and returns the result as
// a new slice; the input is never mutated.
func (q Query) Apply(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if q.matches(item) {
			result = append(result, item)
		}
	}

	less := q.comparator()
	if less == nil {
		return result
	}
	if strings.EqualFold(q.Order, OrderDesc) {
		asc := less
		less = func(a, b Item) bool { return asc(b, a) }
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func (q Query) matches(item Item) bool {
	if q.Status != "" && item.Status.String() != q.Status {
		return false
	}
	if q.ReservedBy != "" &&
		!strings.Contains(strings.ToLower(item.ReservedBy), strings.ToLower(q.ReservedBy)) {
		return false
	}
	return true
}

func (q Query) comparator() func(a, b Item) bool {
	switch q.SortBy {
	case SortByPrice:
		return func(a, b Item) bool { return a.Price.Float() < b.Price.Float() }
	case SortByCreatedAt:
		return func(a, b Item) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByStatus:
		return func(a, b Item) bool { return a.Status.Rank() < b.Status.Rank() }
	default:
		return nil
	}
}
