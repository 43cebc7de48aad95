package api

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog sections.
type Category string

const (
	CategoryClothing    Category = "clothing"
	CategoryMusic       Category = "music"
	CategoryAccessories Category = "accessories"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryClothing, CategoryMusic, CategoryAccessories}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// Product mirrors the catalog record exchanged with the backend.
type Product struct {
	ID          string          `json:"id" mapstructure:"id"`
	Name        string          `json:"name" mapstructure:"name"`
	Category    Category        `json:"category" mapstructure:"category"`
	SubCategory string          `json:"subCategory" mapstructure:"subCategory"`
	Price       decimal.Decimal `json:"price" mapstructure:"price"`
	Sizes       []string        `json:"size" mapstructure:"size"`
	Stock       int             `json:"stock" mapstructure:"stock"`
	Image       string          `json:"image" mapstructure:"image"`
	Description string          `json:"description" mapstructure:"description"`
	Culture     string          `json:"culture" mapstructure:"culture"`
	Tags        []string        `json:"tags" mapstructure:"tags"`
	Featured    bool            `json:"featured,omitempty" mapstructure:"featured"`
}

// UnmarshalJSON accepts the backend's "_id" identity when "id" is absent.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw.plain)
	if strings.TrimSpace(p.ID) == "" {
		p.ID = raw.MongoID
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	dup := p
	dup.Sizes = slices.Clone(p.Sizes)
	dup.Tags = slices.Clone(p.Tags)
	return dup
}

// ProductDraft is a product before the backend assigns its identity.
type ProductDraft struct {
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	SubCategory string          `json:"subCategory"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []string        `json:"size"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Culture     string          `json:"culture"`
	Tags        []string        `json:"tags"`
	Featured    bool            `json:"featured,omitempty"`
}

// WithID builds the catalog record for a draft once an identity is known.
func (d ProductDraft) WithID(id string) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Category:    d.Category,
		SubCategory: d.SubCategory,
		Price:       d.Price,
		Sizes:       slices.Clone(d.Sizes),
		Stock:       d.Stock,
		Image:       d.Image,
		Description: d.Description,
		Culture:     d.Culture,
		Tags:        slices.Clone(d.Tags),
		Featured:    d.Featured,
	}
}

// CreateProductResponse mirrors /api/products/create.
type CreateProductResponse struct {
	Product Product `json:"product"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupData is the signup payload.
type SignupData struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// TransactionLine is one cart line submitted at checkout.
type TransactionLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// TransactionRequest mirrors the /api/transactions payload.
type TransactionRequest struct {
	Items []TransactionLine `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// TransactionReceipt is the backend acknowledgement of a checkout.
type TransactionReceipt struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// errorPayload is the structured failure body some routes return.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
