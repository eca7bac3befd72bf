package dto

import "github.com/spec-kit/qrmenu-service/internal/domain"

// MenuItemRequest payload for creating or updating a menu item.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Available   bool    `json:"available"`
}

// MenuItemResponse shapes a menu item for JSON responses.
type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Available   bool    `json:"available"`
}

// NewMenuItemResponse maps the domain model.
func NewMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		Available:   item.Available,
	}
}

// TableRequest payload for creating a table.
type TableRequest struct {
	Name string `json:"name"`
}

// TableResponse shapes a table with its QR payload URL.
type TableResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	QRURL string `json:"qrUrl"`
}
