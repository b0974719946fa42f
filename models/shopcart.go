package models

import (
	"errors"

	"github.com/Ramneek99/shopcarts/persistence"
	"gorm.io/gorm"
)

// Shopcart is a customer's cart. The id is assigned by the client when the
// cart is created, never by the store.
type Shopcart struct {
	ID       int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Products []Product `json:"products" gorm:"foreignKey:ShopcartID;constraint:OnDelete:CASCADE"`
}

// Serialize maps the cart into its wire form, products in their current order.
func (s *Shopcart) Serialize() map[string]any {
	products := make([]map[string]any, 0, len(s.Products))
	for i := range s.Products {
		products = append(products, s.Products[i].Serialize())
	}
	return map[string]any{
		"id":       s.ID,
		"products": products,
	}
}

// Deserialize populates the cart from a decoded JSON body. Any products
// already attached to the receiver are dropped first; the payload replaces
// the collection, it is never merged into it.
func (s *Shopcart) Deserialize(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return newValidationError("Invalid Shopcart: body of request contained bad or no data")
	}
	id, ok := intField(fields, "id")
	if !ok {
		return newValidationError("Invalid Shopcart: missing id")
	}
	s.ID = id
	s.Products = []Product{}
	raw, present := fields["products"]
	if !present || raw == nil {
		return nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return newValidationError("Invalid Shopcart: products must be a list")
	}
	for _, entry := range entries {
		var product Product
		if err := product.Deserialize(entry); err != nil {
			return err
		}
		s.Products = append(s.Products, product)
	}
	return nil
}

// ShopcartStore implements the cart half of the persistence contract:
// create, find, all, update, delete, clear and the product-name filter.
type ShopcartStore struct {
	carts    *persistence.Repository[Shopcart]
	products *persistence.Repository[Product]
}

func NewShopcartStore(db *gorm.DB) *ShopcartStore {
	return &ShopcartStore{
		carts:    persistence.NewRepository[Shopcart](db),
		products: persistence.NewRepository[Product](db),
	}
}

// Create inserts the cart row along with any seeded products.
func (s *ShopcartStore) Create(cart *Shopcart) error {
	for i := range cart.Products {
		cart.Products[i].ID = 0
		cart.Products[i].ShopcartID = cart.ID
	}
	return s.carts.Create(cart)
}

// Find returns the cart with its products eagerly loaded, or
// gorm.ErrRecordNotFound.
func (s *ShopcartStore) Find(id int) (*Shopcart, error) {
	return s.carts.FindByID(id, "Products")
}

// All returns every cart with its products.
func (s *ShopcartStore) All() ([]Shopcart, error) {
	return s.carts.All("Products")
}

// Update replaces the cart's product collection wholesale: the stored rows
// are deleted and the attached collection is written back. Product ids are
// reassigned by the store.
func (s *ShopcartStore) Update(cart *Shopcart) error {
	if _, err := s.products.DeleteWhere("shopcart_id = ?", cart.ID); err != nil {
		return err
	}
	for i := range cart.Products {
		cart.Products[i].ID = 0
		cart.Products[i].ShopcartID = cart.ID
		if err := s.products.Create(&cart.Products[i]); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the cart's products and then the cart itself. Deleting a
// cart that does not exist is a no-op.
func (s *ShopcartStore) Delete(id int) error {
	if _, err := s.products.DeleteWhere("shopcart_id = ?", id); err != nil {
		return err
	}
	_, err := s.carts.DeleteWhere("id = ?", id)
	return err
}

// Clear deletes every product owned by the cart but keeps the cart row.
func (s *ShopcartStore) Clear(cart *Shopcart) error {
	if _, err := s.products.DeleteWhere("shopcart_id = ?", cart.ID); err != nil {
		return err
	}
	cart.Products = []Product{}
	return nil
}

// FilterByProductName returns every cart owning at least one product whose
// name matches exactly. Carts come back in the order the matching products
// were returned, each listed once.
func (s *ShopcartStore) FilterByProductName(name string) ([]Shopcart, error) {
	matches, err := s.products.Where("name = ?", name)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	carts := make([]Shopcart, 0)
	for _, product := range matches {
		if seen[product.ShopcartID] {
			continue
		}
		seen[product.ShopcartID] = true
		cart, err := s.carts.FindByID(product.ShopcartID, "Products")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		carts = append(carts, *cart)
	}
	return carts, nil
}
