package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/constants"
	"github.com/bangmod-market/internal/logger"
	"github.com/bangmod-market/internal/models"
	"github.com/bangmod-market/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	engine    *gin.Engine
	container *provider.Container
	db        *gorm.DB
	buyer     *models.User
	seller    *models.User
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	oldDB, oldLog := models.DB, logger.L
	models.DB = db
	logger.L = zap.NewNop()
	t.Cleanup(func() {
		models.DB = oldDB
		logger.L = oldLog
	})

	cfg, err := config.Decode(viper.New())
	require.NoError(t, err)
	cfg.JWT.SecretKey = strings.Repeat("k", 40)
	cfg.Upload.Dir = t.TempDir()

	c := provider.NewContainer(cfg)
	env := &testEnv{engine: SetupRouter(cfg, c), container: c, db: db}
	env.buyer = env.createUser(t, "buyer@example.com", constants.RoleBuyer)
	env.seller = env.createUser(t, "seller@example.com", constants.RoleSeller)
	return env
}

func (e *testEnv) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:           email,
		PasswordHash:    string(hash),
		Nickname:        strings.Split(email, "@")[0],
		IsActive:        true,
		Role:            role,
		ShippingAddress: "1 Market Street",
	}
	require.NoError(t, e.db.Create(user).Error)
	if role == constants.RoleSeller {
		require.NoError(t, e.db.Create(&models.Seller{UserID: user.ID, MobileNumber: "0812345678", NationalID: "1234567890123"}).Error)
	}
	return user
}

func (e *testEnv) createItem(t *testing.T, brandID uint, model string, storage *int, quantity int) *models.SaleItem {
	t.Helper()
	item := &models.SaleItem{
		BrandID:     brandID,
		SellerID:    &e.seller.ID,
		Model:       model,
		Description: model + " description",
		Price:       1000,
		StorageGB:   storage,
		Quantity:    quantity,
	}
	require.NoError(t, e.db.Create(item).Error)
	return item
}

func (e *testEnv) createBrand(t *testing.T, name string) *models.Brand {
	t.Helper()
	brand := &models.Brand{Name: &name, IsActive: true}
	require.NoError(t, e.db.Create(brand).Error)
	return brand
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()
	issued, err := e.container.TokenService.Issue(user, constants.TokenTypeAccess)
	require.NoError(t, err)
	return issued.Value
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func TestHealthAndUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := env.do(t, http.MethodGet, "/api/v9/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestSecuredRouteRejectsMissingOrMalformedToken(t *testing.T) {
	env := newTestEnv(t)
	path := fmt.Sprintf("/api/v2/cart/%d", env.buyer.ID)

	w, _ := env.do(t, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w, _ = env.do(t, http.MethodGet, path, env.token(t, env.buyer), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.buyer)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", env.buyer.ID).
		Update("token_version", gorm.Expr("token_version + 1")).Error)

	w, _ := env.do(t, http.MethodGet, fmt.Sprintf("/api/v2/users/%d/profile", env.buyer.ID), token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuyerCannotUseSellerRoutes(t *testing.T) {
	env := newTestEnv(t)
	buyerToken := env.token(t, env.buyer)

	w, _ := env.do(t, http.MethodPost, "/api/v1/brands", buyerToken, `{"name":"Nokia"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v2/orders/new/count", buyerToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v2/orders/new/count", env.token(t, env.seller), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGalleryStorageNullSentinel(t *testing.T) {
	env := newTestEnv(t)
	brand := env.createBrand(t, "Apple")
	storage := 128
	env.createItem(t, brand.ID, "iPhone 15", &storage, 3)
	env.createItem(t, brand.ID, "iPhone SE", nil, 3)

	w, resp := env.do(t, http.MethodGet, "/api/v2/sale-items?page=0&size=10&filterStorages=NULL", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Content []struct {
			Model string `json:"model"`
		} `json:"content"`
		TotalElements int64  `json:"totalElements"`
		Sort          string `json:"sort"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "iPhone SE", page.Content[0].Model)
	assert.EqualValues(t, 1, page.TotalElements)

	w, resp = env.do(t, http.MethodGet, "/api/v2/sale-items?page=0&filterStorages=128,null&filterBrands=apple", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 2, page.TotalElements)
}

func TestGalleryRequiresPage(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v2/sale-items?size=5", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var data struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Errors, 1)
	assert.Equal(t, "page", data.Errors[0].Field)
}

func TestPlaceOrdersEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	brand := env.createBrand(t, "Samsung")
	item := env.createItem(t, brand.ID, "Galaxy S24", nil, 2)
	token := env.token(t, env.buyer)

	w, _ := env.do(t, http.MethodPost, "/api/v2/orders", token, `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := fmt.Sprintf(`[{"sellerId":%d,"orderItems":[{"saleItemId":%d,"quantity":2}]}]`, env.seller.ID, item.ID)
	w, resp := env.do(t, http.MethodPost, "/api/v2/orders", token, body)
	require.Equal(t, http.StatusCreated, w.Code, string(resp.Data))

	var stored models.SaleItem
	require.NoError(t, env.db.First(&stored, item.ID).Error)
	assert.Equal(t, 0, stored.Quantity)

	w, _ = env.do(t, http.MethodPost, "/api/v2/orders", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlaceOrdersMixedBatchCommitsNothing(t *testing.T) {
	env := newTestEnv(t)
	brand := env.createBrand(t, "Google")
	item := env.createItem(t, brand.ID, "Pixel 8", nil, 3)
	token := env.token(t, env.buyer)

	body := fmt.Sprintf(`[{"sellerId":%d,"orderItems":[{"saleItemId":%d,"quantity":1}]},`+
		`{"sellerId":%d,"orderItems":[{"saleItemId":9999,"quantity":1}]}]`, env.seller.ID, item.ID, env.seller.ID)
	w, resp := env.do(t, http.MethodPost, "/api/v2/orders", token, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 404, resp.StatusCode)

	body = fmt.Sprintf(`[{"sellerId":%d,"orderItems":[{"saleItemId":%d,"quantity":1}]}]`, env.buyer.ID, item.ID)
	w, _ = env.do(t, http.MethodPost, "/api/v2/orders", token, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.SaleItem
	require.NoError(t, env.db.First(&stored, item.ID).Error)
	assert.Equal(t, 3, stored.Quantity)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestLoginSetsRefreshCookie(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"buyer@example.com","password":"Passw0rd!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, constants.RoleBuyer, data.Role)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"buyer@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
