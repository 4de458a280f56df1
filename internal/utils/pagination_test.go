package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func pageQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/tasks?"+rawQuery, nil)
	return c
}

func TestGetPageQuery_RequiresBothParams(t *testing.T) {
	_, err := GetPageQuery(pageQueryContext(t, ""), TaskSortFields)
	require.ErrorIs(t, err, ErrPaginationRequired)

	_, err = GetPageQuery(pageQueryContext(t, "pageNumber=0"), TaskSortFields)
	require.ErrorIs(t, err, ErrPaginationRequired)

	_, err = GetPageQuery(pageQueryContext(t, "pageSize=10"), TaskSortFields)
	require.ErrorIs(t, err, ErrPaginationRequired)
}

func TestGetPageQuery_InvalidValues(t *testing.T) {
	_, err := GetPageQuery(pageQueryContext(t, "pageNumber=-1&pageSize=10"), TaskSortFields)
	require.ErrorIs(t, err, ErrInvalidPagination)

	_, err = GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=0"), TaskSortFields)
	require.ErrorIs(t, err, ErrInvalidPagination)

	_, err = GetPageQuery(pageQueryContext(t, "pageNumber=abc&pageSize=10"), TaskSortFields)
	require.ErrorIs(t, err, ErrInvalidPagination)

	_, err = GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=101"), TaskSortFields)
	require.ErrorIs(t, err, ErrInvalidPagination)
}

func TestGetPageQuery_NoSort(t *testing.T) {
	query, err := GetPageQuery(pageQueryContext(t, "pageNumber=2&pageSize=25"), TaskSortFields)
	require.NoError(t, err)
	require.Equal(t, 2, query.PageNumber)
	require.Equal(t, 25, query.PageSize)
	require.False(t, query.Sorted())
	require.Equal(t, 50, query.Offset())
}

func TestGetPageQuery_LoneSortParamIgnored(t *testing.T) {
	// A field without a direction does not sort, and is not an error either.
	query, err := GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=title"), TaskSortFields)
	require.NoError(t, err)
	require.False(t, query.Sorted())

	// Same for a direction without a field, even an invalid one.
	query, err = GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&direction=sideways"), TaskSortFields)
	require.NoError(t, err)
	require.False(t, query.Sorted())
}

func TestGetPageQuery_Sort(t *testing.T) {
	query, err := GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=deadline&direction=Desc"), TaskSortFields)
	require.NoError(t, err)
	require.True(t, query.Sorted())
	require.Equal(t, "deadline DESC", query.OrderClause())

	query, err = GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=title&direction=Asc"), TaskSortFields)
	require.NoError(t, err)
	require.Equal(t, "title ASC", query.OrderClause())
}

func TestGetPageQuery_DirectionIsCaseSensitive(t *testing.T) {
	_, err := GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=title&direction=desc"), TaskSortFields)
	require.ErrorIs(t, err, ErrSortDirection)

	_, err = GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=title&direction=ASC"), TaskSortFields)
	require.ErrorIs(t, err, ErrSortDirection)
}

func TestGetPageQuery_UnknownSortField(t *testing.T) {
	_, err := GetPageQuery(pageQueryContext(t, "pageNumber=0&pageSize=10&field=password_hash&direction=Asc"), TaskSortFields)
	require.ErrorIs(t, err, ErrSortField)
}
