package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/tommyfx/storefront/internal/domain/order"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// Service handles order reads and status updates. Order creation goes
// through the checkout service only.
type Service struct {
	orderRepo order.Repository
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository) *Service {
	return &Service{orderRepo: orderRepo}
}

// GetByIDForUser retrieves an order by ID, verifying ownership.
// A guest order (nil user) is only reachable through GetByIDForGuest.
func (s *Service) GetByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return nil, shared.ErrForbidden
	}
	response := ToResponse(o)
	return &response, nil
}

// GetByIDForGuest retrieves a guest order by ID. Orders placed by a
// signed-in user are never served to anonymous callers.
func (s *Service) GetByIDForGuest(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != nil {
		return nil, shared.ErrForbidden
	}
	response := ToResponse(o)
	return &response, nil
}

// ListByUser lists a user's orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]ListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return ToListItemResponses(orders), total, nil
}

// UpdateStatus moves an order to a new status, enforcing the
// transition table
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, o.Status); err != nil {
		return nil, err
	}

	response := ToResponse(o)
	return &response, nil
}
