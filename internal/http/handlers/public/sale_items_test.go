package public

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	handlershared "github.com/bangmod-market/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v2/sale-items?"+rawQuery, nil)
	return c
}

func TestParseCatalogQuery(t *testing.T) {
	q, err := parseCatalogQuery(catalogContext(
		"page=1&size=5&sortField=price&sortDirection=desc&filterBrands=Apple,Samsung" +
			"&filterStorages=128&filterStorages=Null&filterPriceLower=500&searchKeyWord=pro"))
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 5, q.Size)
	assert.Equal(t, "price", q.SortField)
	assert.Equal(t, []string{"Apple", "Samsung"}, q.BrandNames)
	require.NotNil(t, q.Storages)
	assert.Equal(t, []int{128}, q.Storages.Values)
	assert.True(t, q.Storages.IncludeNull)
	require.NotNil(t, q.PriceLower)
	assert.Equal(t, 500, *q.PriceLower)
	assert.Nil(t, q.PriceUpper)
	assert.Equal(t, "pro", q.Keyword)
}

func TestParseCatalogQueryStoragesAbsentVsEmpty(t *testing.T) {
	q, err := parseCatalogQuery(catalogContext("page=0"))
	require.NoError(t, err)
	assert.Nil(t, q.Storages)

	q, err = parseCatalogQuery(catalogContext("page=0&filterStorages=null"))
	require.NoError(t, err)
	require.NotNil(t, q.Storages)
	assert.Empty(t, q.Storages.Values)
	assert.True(t, q.Storages.IncludeNull)
}

func TestParseCatalogQueryRejectsBadNumbers(t *testing.T) {
	_, err := parseCatalogQuery(catalogContext("page=0&filterStorages=lots"))
	var qerr *handlershared.QueryParamError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "filterStorages", qerr.Field)

	_, err = parseCatalogQuery(catalogContext("page=0&filterPriceUpper=cheap"))
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "filterPriceUpper", qerr.Field)
}
