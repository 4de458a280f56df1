package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-api/internal/constants"
)

var (
	ErrPaginationRequired = errors.New("pagination cannot be null")
	ErrInvalidPagination  = errors.New("pageNumber must be non-negative and pageSize between 1 and 100")
	ErrSortDirection      = errors.New("wrong sorting direction value")
	ErrSortField          = errors.New("unknown sort field")
)

// PageQuery holds pagination and sorting parameters. PageNumber is zero-based.
// Sorting is applied only when both Field and Direction are present; a lone
// field or direction means no sort. Direction is case-sensitive: "Asc"/"Desc".
type PageQuery struct {
	PageNumber int
	PageSize   int
	Field      *string
	Direction  *string
}

// Offset returns the row offset for the query.
func (q PageQuery) Offset() int {
	return q.PageNumber * q.PageSize
}

// Sorted reports whether both sort parameters were supplied.
func (q PageQuery) Sorted() bool {
	return q.Field != nil && q.Direction != nil
}

// OrderClause builds the SQL order clause for the query. The field must have
// been validated against a column whitelist beforehand.
func (q PageQuery) OrderClause() string {
	dir := "ASC"
	if *q.Direction == "Desc" {
		dir = "DESC"
	}
	return *q.Field + " " + dir
}

// GetPageQuery extracts and validates pagination/sorting parameters from the
// request. allowedFields is the set of sortable columns for the listed entity.
func GetPageQuery(c *gin.Context, allowedFields map[string]bool) (PageQuery, error) {
	pageNumberStr := c.Query("pageNumber")
	pageSizeStr := c.Query("pageSize")
	if pageNumberStr == "" || pageSizeStr == "" {
		return PageQuery{}, ErrPaginationRequired
	}

	pageNumber, err := strconv.Atoi(pageNumberStr)
	if err != nil || pageNumber < 0 {
		return PageQuery{}, ErrInvalidPagination
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 || pageSize > constants.MaxPageSize {
		return PageQuery{}, ErrInvalidPagination
	}

	query := PageQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}

	// Sorting counts only when both parameters are present; a lone field or
	// direction is ignored rather than rejected.
	field, hasField := c.GetQuery("field")
	direction, hasDirection := c.GetQuery("direction")
	if hasField && hasDirection {
		if direction != "Asc" && direction != "Desc" {
			return PageQuery{}, ErrSortDirection
		}
		if !allowedFields[field] {
			return PageQuery{}, ErrSortField
		}
		query.Field = &field
		query.Direction = &direction
	}

	return query, nil
}

// TaskSortFields lists the task columns exposed for sorting.
var TaskSortFields = map[string]bool{
	"id":            true,
	"title":         true,
	"status":        true,
	"priority":      true,
	"creation_date": true,
	"deadline":      true,
}

// UserSortFields lists the user columns exposed for sorting.
var UserSortFields = map[string]bool{
	"id":    true,
	"email": true,
	"name":  true,
}
