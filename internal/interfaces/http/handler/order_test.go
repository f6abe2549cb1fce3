package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/tommyfx/storefront/internal/application/order"
	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
	"github.com/tommyfx/storefront/internal/infrastructure/auth"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
	"github.com/tommyfx/storefront/internal/interfaces/http/middleware"
)

type orderTestEnv struct {
	router *gin.Engine
	repo   *recordingOrderRepository
	jwt    *auth.JWTService
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &recordingOrderRepository{}
	service := orderapp.NewService(repo)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "order-handler-test-secret",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})

	router := gin.New()
	router.Use(middleware.OptionalAuth(jwtService))
	api := router.Group("/api/v1")
	NewOrderHandler(service).RegisterRoutes(api)

	return &orderTestEnv{router: router, repo: repo, jwt: jwtService}
}

func (e *orderTestEnv) placeOrder(t *testing.T, userID *uuid.UUID) *order.Order {
	t.Helper()
	info := order.ShippingInfo{
		Name:    "Jamie Rivera",
		Email:   "jamie@example.com",
		Phone:   "+1-555-0134",
		Address: "12 Rose Ave",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
		Country: "USA",
	}
	o, err := order.NewOrder(userID, info, order.TierStandard, decimal.NewFromFloat(25), decimal.NewFromFloat(5.99))
	require.NoError(t, err)
	_, err = o.AddItem("Velvet Lipstick", 2, valueobject.NewMoneyUSDFromFloat(10))
	require.NoError(t, err)
	_, err = o.AddItem("Lip Gloss", 1, valueobject.NewMoneyUSDFromFloat(5))
	require.NoError(t, err)
	e.repo.orders = append(e.repo.orders, o)
	return o
}

func (e *orderTestEnv) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(userID, "jamie@example.com", "")
	require.NoError(t, err)
	return token
}

func (e *orderTestEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(uuid.New(), "ops@example.com", auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (e *orderTestEnv) patchStatus(t *testing.T, orderID uuid.UUID, status, token string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"status": status})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status", orderID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *orderTestEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_Get_Guest(t *testing.T) {
	env := newOrderTestEnv(t)
	o := env.placeOrder(t, nil)

	w := env.get(t, fmt.Sprintf("/api/v1/orders/%s", o.ID), "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, o.ID.String(), data["id"])
	assert.Equal(t, "30.99", data["total_amount"])
	assert.Len(t, data["items"], 2)
}

func TestOrderHandler_Get_Owner(t *testing.T) {
	env := newOrderTestEnv(t)
	userID := uuid.New()
	o := env.placeOrder(t, &userID)

	w := env.get(t, fmt.Sprintf("/api/v1/orders/%s", o.ID), env.token(t, userID))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestOrderHandler_Get_OtherUserForbidden(t *testing.T) {
	env := newOrderTestEnv(t)
	userID := uuid.New()
	o := env.placeOrder(t, &userID)

	w := env.get(t, fmt.Sprintf("/api/v1/orders/%s", o.ID), env.token(t, uuid.New()))

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestOrderHandler_Get_GuestCannotReadUserOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	userID := uuid.New()
	o := env.placeOrder(t, &userID)

	// no bearer token: possession of the id is not enough for a user order
	w := env.get(t, fmt.Sprintf("/api/v1/orders/%s", o.ID), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.get(t, fmt.Sprintf("/api/v1/orders/%s", uuid.New()), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Get_InvalidID(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.get(t, "/api/v1/orders/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_List_RequiresAuth(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.get(t, "/api/v1/orders", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_List(t *testing.T) {
	env := newOrderTestEnv(t)
	userID := uuid.New()
	env.placeOrder(t, &userID)

	w := env.get(t, "/api/v1/orders", env.token(t, userID))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	env := newOrderTestEnv(t)
	o := env.placeOrder(t, nil)

	w := env.patchStatus(t, o.ID, "processing", env.adminToken(t))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "processing", data["status"])
}

func TestOrderHandler_UpdateStatus_RequiresAuth(t *testing.T) {
	env := newOrderTestEnv(t)
	o := env.placeOrder(t, nil)

	w := env.patchStatus(t, o.ID, "cancelled", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, order.StatusPending, env.repo.orders[0].Status)
}

func TestOrderHandler_UpdateStatus_RequiresAdmin(t *testing.T) {
	env := newOrderTestEnv(t)
	userID := uuid.New()
	o := env.placeOrder(t, &userID)

	// even the order's owner cannot move its status without the admin role
	w := env.patchStatus(t, o.ID, "cancelled", env.token(t, userID))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, order.StatusPending, env.repo.orders[0].Status)
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	env := newOrderTestEnv(t)
	o := env.placeOrder(t, nil)

	w := env.patchStatus(t, o.ID, "delivered", env.adminToken(t))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
