package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/tommyfx/storefront/internal/domain/catalog"
	"github.com/tommyfx/storefront/internal/domain/shared"
)

// ProductService handles catalog reads for the storefront
type ProductService struct {
	productRepo catalog.Repository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.Repository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(p)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
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
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.Featured:
		products, err = s.productRepo.FindFeatured(ctx, domainFilter)
	case filter.Category != "":
		products, err = s.productRepo.FindByCategory(ctx, filter.Category, domainFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Featured {
		domainFilter.Filters["featured"] = true
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}
