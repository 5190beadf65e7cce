// Package catalog serves product browsing for the POS and customer pages and
// the admin inventory's create/update/delete flows.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dogarmed/storefront/internal/domain/models"
)

const expiryDateLayout = "2006-01-02"

// BackendAPI is the slice of the upstream client the catalog needs.
type BackendAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) error
	UpdateProduct(ctx context.Context, id int64, input models.ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
}

// ValidationError marks a locally rejected payload; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service owns the catalog page logic.
type Service struct {
	backend BackendAPI
	logger  *zap.Logger
}

// NewService wires a catalog service instance.
func NewService(backend BackendAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// List fetches the catalog and applies the page's local search, category and
// sort controls. Prices and quantities render as non-negative, defaulting to
// zero when the backend omits them.
func (s *Service) List(ctx context.Context, query models.ProductQuery) ([]models.Product, error) {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	for i := range products {
		if products[i].Price < 0 {
			products[i].Price = 0
		}
		if products[i].StockQuantity < 0 {
			products[i].StockQuantity = 0
		}
	}

	filtered := Filter(products, query)
	Sort(filtered, query.SortBy)
	return filtered, nil
}

// Filter applies the search box and category dropdown locally, the way the
// pages filtered their in-memory product lists.
func Filter(products []models.Product, query models.ProductQuery) []models.Product {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	category := strings.TrimSpace(query.Category)
	if strings.EqualFold(category, "All Categories") {
		category = ""
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" {
			name := strings.ToLower(p.ProductName)
			id := strconv.FormatInt(p.ProductID, 10)
			if !strings.Contains(name, search) && !strings.Contains(id, search) {
				continue
			}
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders products in place by the requested column. Unknown columns
// leave the backend order untouched.
func Sort(products []models.Product, sortBy string) {
	switch sortBy {
	case "name":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].ProductName) < strings.ToLower(products[j].ProductName)
		})
	case "price":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case "stock":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].StockQuantity < products[j].StockQuantity
		})
	case "expiry":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ExpiryDate < products[j].ExpiryDate
		})
	}
}

// Create validates the payload and forwards it upstream.
func (s *Service) Create(ctx context.Context, input models.ProductInput) error {
	if err := validate(input); err != nil {
		return err
	}
	if err := s.backend.CreateProduct(ctx, input); err != nil {
		return err
	}

	s.logger.Info("product created", zap.String("name", input.ProductName))
	return nil
}

// Update validates the payload and forwards it upstream.
func (s *Service) Update(ctx context.Context, id int64, input models.ProductInput) error {
	if err := validate(input); err != nil {
		return err
	}
	if err := s.backend.UpdateProduct(ctx, id, input); err != nil {
		return err
	}

	s.logger.Info("product updated", zap.Int64("product_id", id))
	return nil
}

// Delete forwards a removal upstream.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func validate(input models.ProductInput) error {
	if strings.TrimSpace(input.ProductName) == "" {
		return &ValidationError{Reason: "product name is required"}
	}
	if input.Price <= 0 {
		return &ValidationError{Reason: "price must be greater than zero"}
	}
	if input.StockQuantity < 0 {
		return &ValidationError{Reason: "stock quantity cannot be negative"}
	}
	if input.ExpiryDate != "" {
		if _, err := time.Parse(expiryDateLayout, input.ExpiryDate); err != nil {
			return &ValidationError{Reason: "expiry date must use YYYY-MM-DD"}
		}
	}
	return nil
}
