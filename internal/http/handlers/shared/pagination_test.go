package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v2/sale-items?"+rawQuery, nil)
	return c
}

func TestParsePageParams(t *testing.T) {
	params, err := ParsePageParams(newQueryContext("page=2&size=20&sortField=price&sortDirection=desc"))
	require.NoError(t, err)
	assert.Equal(t, PageParams{Page: 2, Size: 20, SortField: "price", SortDirection: "desc"}, params)

	params, err = ParsePageParams(newQueryContext("page=0"))
	require.NoError(t, err)
	assert.Equal(t, 0, params.Size)
}

func TestParsePageParamsErrors(t *testing.T) {
	cases := map[string]struct {
		query string
		field string
		want  error
	}{
		"missing page":  {query: "size=5", field: "page", want: errQueryRequired},
		"negative page": {query: "page=-1", field: "page", want: errQueryInvalid},
		"bad size":      {query: "page=0&size=ten", field: "size", want: errQueryInvalid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePageParams(newQueryContext(tc.query))
			var qerr *QueryParamError
			require.True(t, errors.As(err, &qerr))
			assert.Equal(t, tc.field, qerr.Field)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestQueryList(t *testing.T) {
	values, present := QueryList(newQueryContext("filterBrands=Apple,%20Samsung&filterBrands=Xiaomi&filterBrands="), "filterBrands")
	assert.True(t, present)
	assert.Equal(t, []string{"Apple", "Samsung", "Xiaomi"}, values)

	values, present = QueryList(newQueryContext("filterStorages="), "filterStorages")
	assert.True(t, present)
	assert.Empty(t, values)

	_, present = QueryList(newQueryContext("page=0"), "filterStorages")
	assert.False(t, present)
}
