package public

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bangmod-market/internal/http/response"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func mappedStatus(err error, rules []mappedHandlerError) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
	return w.Code
}

func TestRespondWithMappedError(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		rules []mappedHandlerError
		want  int
	}{
		{name: "insufficient stock", err: fmt.Errorf("order 3: %w", service.ErrInsufficientStock), rules: orderErrorRules, want: http.StatusConflict},
		{name: "owner mismatch", err: service.ErrUserMismatch, rules: saleItemErrorRules, want: http.StatusForbidden},
		{name: "missing item", err: service.ErrSaleItemNotFound, rules: cartErrorRules, want: http.StatusNotFound},
		{name: "bad credentials", err: service.ErrInvalidCredentials, rules: authErrorRules, want: http.StatusUnauthorized},
		{name: "brand in use", err: service.ErrBrandHasSaleItem, rules: brandErrorRules, want: http.StatusConflict},
		{name: "unexpected", err: errors.New("disk on fire"), rules: orderErrorRules, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mappedStatus(tc.err, tc.rules))
		})
	}
}

func TestConcatMappedHandlerErrors(t *testing.T) {
	merged := concatMappedHandlerErrors(notFoundErrorRules, ownershipErrorRules)
	assert.Len(t, merged, len(notFoundErrorRules)+len(ownershipErrorRules))
}
