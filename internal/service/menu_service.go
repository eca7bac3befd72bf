package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// MenuService coordinates menu and table management for a tenant.
type MenuService struct {
	menu          repository.MenuRepository
	tables        repository.TableRepository
	publicBaseURL string
}

// NewMenuService builds the service.
func NewMenuService(menu repository.MenuRepository, tables repository.TableRepository, publicBaseURL string) *MenuService {
	return &MenuService{menu: menu, tables: tables, publicBaseURL: publicBaseURL}
}

// MenuItemInput describes create/update payloads.
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	Available   bool
}

// CreateItem adds a menu item for the tenant.
func (s *MenuService) CreateItem(ctx context.Context, businessID string, input MenuItemInput) (*domain.MenuItem, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}

	item := &domain.MenuItem{
		BusinessID:  businessID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Available:   input.Available,
	}
	if err := s.menu.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem replaces a menu item's fields; tenant scoping is enforced by the
// repository's WHERE clause.
func (s *MenuService) UpdateItem(ctx context.Context, businessID, itemID string, input MenuItemInput) (*domain.MenuItem, error) {
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	item := &domain.MenuItem{
		ID:          itemID,
		BusinessID:  businessID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Available:   input.Available,
	}
	if err := s.menu.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a tenant's menu item.
func (s *MenuService) DeleteItem(ctx context.Context, businessID, itemID string) error {
	return s.menu.Delete(ctx, businessID, itemID)
}

// ListItems returns the tenant's full menu.
func (s *MenuService) ListItems(ctx context.Context, businessID string) ([]domain.MenuItem, error) {
	return s.menu.ListByBusiness(ctx, businessID)
}

// CreateTable registers a table and mints its QR token.
func (s *MenuService) CreateTable(ctx context.Context, businessID, name string) (*domain.Table, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	table := &domain.Table{
		BusinessID: businessID,
		Name:       name,
		QRToken:    uuid.NewString(),
	}
	if err := s.tables.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable removes a tenant's table.
func (s *MenuService) DeleteTable(ctx context.Context, businessID, tableID string) error {
	return s.tables.Delete(ctx, businessID, tableID)
}

// ListTables returns the tenant's tables.
func (s *MenuService) ListTables(ctx context.Context, businessID string) ([]domain.Table, error) {
	return s.tables.ListByBusiness(ctx, businessID)
}

// QRCodeURL returns the public menu URL a table's QR code encodes.
func (s *MenuService) QRCodeURL(table *domain.Table) string {
	return fmt.Sprintf("%s/public/menu/%s", s.publicBaseURL, table.QRToken)
}
