package task

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "all"

// Filter restricts a listing by equality on status and/or priority.
// An empty value or FilterAll leaves that field unconstrained; when both
// are set the constraints are conjoined.
type Filter struct {
	Status   string
	Priority string
}

// ByStatus reports whether the filter constrains status.
func (f Filter) ByStatus() bool {
	return f.Status != "" && f.Status != FilterAll
}

// ByPriority reports whether the filter constrains priority.
func (f Filter) ByPriority() bool {
	return f.Priority != "" && f.Priority != FilterAll
}

// Sort directions accepted by listings. Anything other than SortAsc
// orders descending.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSortField orders listings by creation time unless overridden.
const DefaultSortField = "createdAt"

// Sort describes the requested ordering of a listing. Field uses the
// client-facing field names (e.g. "createdAt", "title"); unknown names are
// carried through as opaque column references for the store to resolve.
type Sort struct {
	Field     string
	Direction string
}

// Query is the storage-level listing request.
type Query struct {
	Filter Filter
	Sort   Sort
}

// NewQuery applies the listing defaults to the supplied filter and sort.
func NewQuery(f Filter, s Sort) Query {
	if s.Field == "" {
		s.Field = DefaultSortField
	}
	if s.Direction != SortAsc {
		s.Direction = SortDesc
	}
	return Query{Filter: f, Sort: s}
}
