package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/domain/shared"
	"github.com/tommyfx/storefront/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func testShippingInfo() order.ShippingInfo {
	return order.ShippingInfo{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1-555-0100",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62701",
		Country: "US",
	}
}

func createTestOrder(t *testing.T, userID *uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, testShippingInfo(), order.TierStandard, decimal.NewFromInt(25), decimal.NewFromFloat(5.99))
	require.NoError(t, err)
	_, err = o.AddItem("Rose Lip Balm", 2, valueobject.NewMoneyUSDFromFloat(10))
	require.NoError(t, err)
	return o
}

func TestOrderService_GetByIDForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can read the order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		userID := uuid.New()

		o := createTestOrder(t, &userID)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := service.GetByIDForUser(ctx, userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		ownerID := uuid.New()

		o := createTestOrder(t, &ownerID)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.GetByIDForUser(ctx, uuid.New(), o.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("guest orders are not owned by anyone", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := createTestOrder(t, nil)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.GetByIDForUser(ctx, uuid.New(), o.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestOrderService_GetByIDForGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("guest can read a guest order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := createTestOrder(t, nil)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		resp, err := service.GetByIDForGuest(ctx, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, order.PaymentMethodCOD, resp.PaymentMethod)
		require.Len(t, resp.Items, 1)
		assert.True(t, decimal.NewFromInt(20).Equal(resp.Items[0].Amount))
		assert.True(t, decimal.NewFromFloat(30.99).Equal(resp.TotalAmount))
	})

	t.Run("user-owned orders are forbidden to guests", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		ownerID := uuid.New()

		o := createTestOrder(t, &ownerID)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.GetByIDForGuest(ctx, o.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("not found propagates", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		orderID := uuid.New()

		repo.On("FindByID", ctx, orderID).Return(nil, shared.ErrNotFound)

		_, err := service.GetByIDForGuest(ctx, orderID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_ListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("lists with defaults applied", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		userID := uuid.New()

		o := createTestOrder(t, &userID)
		repo.On("FindByUser", ctx, userID, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]order.Order{*o}, nil)
		repo.On("CountByUser", ctx, userID).Return(int64(1), nil)

		orders, total, err := service.ListByUser(ctx, userID, ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, o.ID, orders[0].ID)
		assert.Equal(t, 1, orders[0].ItemCount)
	})

	t.Run("status filter is forwarded", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)
		userID := uuid.New()
		status := order.StatusShipped

		repo.On("FindByUser", ctx, userID, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["status"] == "shipped"
		})).Return([]order.Order{}, nil)
		repo.On("CountByUser", ctx, userID).Return(int64(0), nil)

		_, _, err := service.ListByUser(ctx, userID, ListFilter{Status: &status})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition persists", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := createTestOrder(t, nil)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateStatus", ctx, o.ID, order.StatusProcessing).Return(nil)

		resp, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "processing"})

		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("invalid transition never persists", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := createTestOrder(t, nil)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "delivered"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
