package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tommyfx/storefront/internal/domain/cart"
	"github.com/tommyfx/storefront/internal/domain/notification"
	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/domain/shared"
	"github.com/tommyfx/storefront/internal/infrastructure/logger"
)

// notifyTimeout bounds the fire-and-forget confirmation dispatch
const notifyTimeout = 15 * time.Second

// Service orchestrates one checkout attempt end to end: guards,
// shipping quote, order persistence, confirmation dispatch, cart
// cleanup. Validation failures happen before any write, and a failed
// confirmation dispatch never fails the checkout.
type Service struct {
	cartStore cart.Store
	orderRepo order.Repository
	notifier  notification.Notifier
	policy    *order.ShippingPolicy
	logger    *zap.Logger

	// inFlight tracks sessions with a submission in progress so a
	// double submit cannot create two orders from one click
	inFlight sync.Map

	// wg tracks spawned notification goroutines for clean shutdown
	wg sync.WaitGroup
}

// NewService creates a new checkout Service
func NewService(cartStore cart.Store, orderRepo order.Repository, notifier notification.Notifier, policy *order.ShippingPolicy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cartStore: cartStore,
		orderRepo: orderRepo,
		notifier:  notifier,
		policy:    policy,
		logger:    logger.Named("checkout"),
	}
}

// ShippingOptions returns the shipping tiers for the session's current
// cart subtotal
func (s *Service) ShippingOptions(ctx context.Context, sessionID uuid.UUID) (*ShippingOptionsResponse, error) {
	c, err := s.cartStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := c.Subtotal()
	options := s.policy.Options(subtotal)

	resp := &ShippingOptionsResponse{
		Subtotal:         subtotal,
		FreeThreshold:    s.policy.FreeThreshold(),
		QualifiesForFree: s.policy.QualifiesForFree(subtotal),
		Options:          make([]ShippingOptionResponse, 0, len(options)),
	}
	for _, opt := range options {
		resp.Options = append(resp.Options, ShippingOptionResponse{
			Tier:         opt.Tier.String(),
			DisplayName:  opt.DisplayName,
			DeliveryTime: opt.DeliveryTime,
			Cost:         opt.Cost,
			Available:    opt.Available,
		})
	}
	return resp, nil
}

// Submit runs one checkout attempt for a session. userID is nil for
// guest checkout. On success the cart is cleared; on any error the
// cart is left untouched.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	if _, loaded := s.inFlight.LoadOrStore(sessionID, struct{}{}); loaded {
		return nil, shared.NewDomainError("CHECKOUT_IN_PROGRESS", "A checkout is already being processed for this session")
	}
	defer s.inFlight.Delete(sessionID)

	info := req.ShippingInfo()
	if err := info.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cartStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	subtotal := c.Subtotal()
	tier := order.ShippingTier(req.ShippingTier)
	shippingCost, err := s.policy.Quote(subtotal, tier)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, info, tier, subtotal, shippingCost)
	if err != nil {
		return nil, err
	}
	for _, item := range c.Items {
		if _, err := o.AddItem(item.Name, item.Quantity, item.GetUnitPriceMoney()); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		// surface the collaborator's message rather than an opaque 500
		return nil, shared.NewDomainError("ORDER_CREATION_FAILED", err.Error())
	}

	// Request-scoped logger carries request_id, cart_session and
	// user_id fields when they were resolved upstream
	reqLogger := s.requestLogger(ctx)
	reqLogger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("shipping_tier", tier.String()),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
		zap.Int("item_count", o.ItemCount()),
	)

	s.dispatchConfirmation(reqLogger, o)

	if err := s.cartStore.Delete(ctx, sessionID); err != nil {
		// Order already exists; a stale cart is recoverable
		reqLogger.Warn("failed to clear cart after checkout",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}

	resp := ToSubmitResponse(o)
	return &resp, nil
}

// requestLogger merges the service logger with request-scoped fields
// carried in ctx (request_id, cart_session, user_id)
func (s *Service) requestLogger(ctx context.Context) *zap.Logger {
	l := s.logger
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		l = l.With(zap.String("request_id", requestID))
	}
	if session := logger.GetCartSession(ctx); session != "" {
		l = l.With(zap.String("cart_session", session))
	}
	if userID := logger.GetUserID(ctx); userID != "" {
		l = l.With(zap.String("user_id", userID))
	}
	return l
}

// dispatchConfirmation sends the order confirmation in the background.
// Failure is logged and never surfaced to the caller. reqLogger keeps
// the originating request's correlation fields on the async log line.
func (s *Service) dispatchConfirmation(reqLogger *zap.Logger, o *order.Order) {
	confirmation := buildConfirmation(o)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(ctx, confirmation); err != nil {
			reqLogger.Warn("order confirmation dispatch failed",
				zap.String("order_id", confirmation.Order.ID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until all in-flight confirmation dispatches finish.
// Called during server shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

func buildConfirmation(o *order.Order) notification.Confirmation {
	items := make([]notification.OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, notification.OrderItemPayload{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		})
	}
	return notification.Confirmation{
		Order: notification.OrderPayload{
			ID:          o.ID.String(),
			CreatedAt:   o.CreatedAt,
			TotalAmount: o.TotalAmount,
			Items:       items,
		},
		Customer: notification.CustomerPayload{
			Name:    o.CustomerName,
			Email:   o.CustomerEmail,
			Address: o.ShippingAddress,
			City:    o.ShippingCity,
			State:   o.ShippingState,
			Zip:     o.ShippingZip,
			Country: o.ShippingCountry,
		},
	}
}
