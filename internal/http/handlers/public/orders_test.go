package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondPartialPlacementKeepsCommittedOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v2/orders", nil)
	c.Set("request_id", "req-1")

	itemID := uint(3)
	placed := []*models.Order{{
		ID:          11,
		OrderDate:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		OrderStatus: constants.OrderStatusCompleted,
		Details:     []models.OrderDetail{{ID: 1, SaleItemID: &itemID, Price: 500, Quantity: 1, Description: "iPhone"}},
	}}
	respondPartialPlacement(c, fmt.Errorf("order 2: %w", service.ErrInsufficientStock), placed)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			RequestID    string `json:"request_id"`
			PlacedOrders []struct {
				ID          uint   `json:"id"`
				OrderStatus string `json:"orderStatus"`
			} `json:"placedOrders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 409, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Data.RequestID)
	require.Len(t, resp.Data.PlacedOrders, 1)
	assert.EqualValues(t, 11, resp.Data.PlacedOrders[0].ID)
	assert.Equal(t, constants.OrderStatusCompleted, resp.Data.PlacedOrders[0].OrderStatus)
}

func TestRespondPartialPlacementUnknownErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v2/orders", nil)

	respondPartialPlacement(c, fmt.Errorf("connection reset"), []*models.Order{{ID: 4}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"placedOrders"`)
}
