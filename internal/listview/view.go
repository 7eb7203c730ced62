package listview

// View carries the interactive state of one list screen: the active
// filters, the active sort column and direction, and the current page.
// It reproduces the admin console's behavior exactly: clicking the
// sorted column again flips the direction, clicking a different column
// resets to ascending, and any filter change snaps back to page one so
// the view can never be left on a page that no longer exists.
type View[T any] struct {
	pageSize    int
	page        int
	sortKey     string
	direction   Direction
	comparators map[string]func(a, b T) int
	filters     []Predicate[T]
}

func NewView[T any](pageSize int) *View[T] {
	return &View[T]{
		pageSize:    pageSize,
		page:        1,
		direction:   Ascending,
		comparators: make(map[string]func(a, b T) int),
	}
}

// SortKey registers a sortable column.
func (v *View[T]) SortKey(key string, cmp func(a, b T) int) *View[T] {
	v.comparators[key] = cmp
	return v
}

// SetFilters replaces the filter chain and resets to page one.
func (v *View[T]) SetFilters(predicates ...Predicate[T]) {
	v.filters = predicates
	v.page = 1
}

// ToggleSort activates the column; re-activating the active column flips
// the direction, switching columns resets to ascending.
func (v *View[T]) ToggleSort(key string) {
	if v.sortKey == key {
		if v.direction == Ascending {
			v.direction = Descending
		} else {
			v.direction = Ascending
		}
		return
	}
	v.sortKey = key
	v.direction = Ascending
}

func (v *View[T]) Sort() (key string, direction Direction) {
	return v.sortKey, v.direction
}

func (v *View[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

func (v *View[T]) Page() int { return v.page }

// Apply runs the full pipeline over a fresh collection snapshot.
func (v *View[T]) Apply(items []T) Page[T] {
	narrowed := Filter(items, v.filters...)
	if cmp, ok := v.comparators[v.sortKey]; ok {
		narrowed = SortBy(narrowed, cmp, v.direction)
	}
	return Paginate(narrowed, v.page, v.pageSize)
}
