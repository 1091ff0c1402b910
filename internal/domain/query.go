package domain

// SortField names a column tasks can be ordered by.
type SortField string

// Supported sort fields
const (
	SortByNone         SortField = ""
	SortByCreationDate SortField = "creation_date"
	SortByDueDate      SortField = "due_date"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Supported sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskQuery filters and orders a task listing. Nil filters match everything;
// when both are set they are ANDed. Order is ignored without SortBy.
type TaskQuery struct {
	Status  *TaskStatus
	DueDate *Date
	SortBy  SortField
	Order   SortOrder
}

// Validate checks that the sort settings are known values.
func (q TaskQuery) Validate() error {
	switch q.SortBy {
	case SortByNone, SortByCreationDate, SortByDueDate:
	default:
		return NewValidationError("sort_by", "must be creation_date or due_date", ErrInvalidSortField)
	}
	switch q.Order {
	case "", SortAsc, SortDesc:
	default:
		return NewValidationError("order", "must be asc or desc", ErrInvalidSortOrder)
	}
	if q.Status != nil && !q.Status.IsValid() {
		return NewValidationError("status", "is not a valid status", ErrInvalidTaskStatus)
	}
	return nil
}

// Descending reports whether results should be in descending order.
func (q TaskQuery) Descending() bool {
	return q.Order == SortDesc
}
