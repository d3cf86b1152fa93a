package constants

// Table engine defaults shared by every rendered view.
const (
	// DefaultPageSize is used when a view does not declare its own page size.
	DefaultPageSize = 50

	// SelectionModeMaxValues is the unique-value cardinality at or below which
	// a filterable column gets a checkbox filter instead of a text filter.
	// Applied identically everywhere filter UIs are generated.
	SelectionModeMaxValues = 20

	// PaginationWindow is the maximum number of numbered page buttons shown.
	PaginationWindow = 5

	// FilterDebounceMillis is the text-filter input debounce hint exposed to
	// the embedding page. The engine itself is synchronous.
	FilterDebounceMillis = 300
)

// Placeholder labels for missing or empty values.
const (
	// PlaceholderCell is rendered for null/undefined cell values.
	PlaceholderCell = "--"

	// EmptyValueLabel is the sentinel bucket for null/missing values in
	// column filter value lists and chart groupings.
	EmptyValueLabel = "(empty)"
)

// FilterAllSentinel is accepted at the HTTP boundary as "no constraint" for
// exact-match filter parameters. It never reaches the evaluator.
const FilterAllSentinel = "all"

// Boolean display labels.
const (
	BoolTrueLabel  = "Yes"
	BoolFalseLabel = "No"
)
