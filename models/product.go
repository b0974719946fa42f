package models

import (
	"github.com/Ramneek99/shopcarts/persistence"
	"gorm.io/gorm"
)

// Product is a single line item owned by exactly one cart. Ids are assigned
// by the store on creation.
type Product struct {
	ID         int     `json:"id" gorm:"primaryKey;autoIncrement"`
	ShopcartID int     `json:"shopcart_id" gorm:"index;not null"`
	Name       string  `json:"name" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
}

func (p *Product) Serialize() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"shopcart_id": p.ShopcartID,
		"name":        p.Name,
		"quantity":    p.Quantity,
		"price":       p.Price,
	}
}

// Deserialize populates the product from a decoded JSON body. shopcart_id,
// name, price and quantity are all required; id is accepted when present.
func (p *Product) Deserialize(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return newValidationError("Invalid Product: body of request contained bad or no data")
	}
	cartID, ok := intField(fields, "shopcart_id")
	if !ok {
		return newValidationError("Invalid Product: missing shopcart_id")
	}
	name, ok := fields["name"].(string)
	if !ok || name == "" {
		return newValidationError("Invalid Product: missing name")
	}
	price, ok := floatField(fields, "price")
	if !ok {
		return newValidationError("Invalid Product: missing price")
	}
	quantity, ok := intField(fields, "quantity")
	if !ok {
		return newValidationError("Invalid Product: missing quantity")
	}
	if quantity < 0 {
		return newValidationError("Invalid Product: quantity must not be negative")
	}
	if id, present := intField(fields, "id"); present {
		p.ID = id
	}
	p.ShopcartID = cartID
	p.Name = name
	p.Price = price
	p.Quantity = quantity
	return nil
}

// ProductStore implements the line-item half of the persistence contract.
type ProductStore struct {
	products *persistence.Repository[Product]
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{products: persistence.NewRepository[Product](db)}
}

// Create inserts the product. The id is always store-assigned; any id
// carried in from the payload is discarded.
func (s *ProductStore) Create(product *Product) error {
	product.ID = 0
	return s.products.Create(product)
}

// Find returns the product or gorm.ErrRecordNotFound.
func (s *ProductStore) Find(id int) (*Product, error) {
	return s.products.FindByID(id)
}

// FindByCart returns every product owned by the given cart.
func (s *ProductStore) FindByCart(cartID int) ([]Product, error) {
	return s.products.Where("shopcart_id = ?", cartID)
}

// FindByName returns every product whose name matches exactly.
func (s *ProductStore) FindByName(name string) ([]Product, error) {
	return s.products.Where("name = ?", name)
}

// Update writes every field of the product back to its row.
func (s *ProductStore) Update(product *Product) error {
	return s.products.Save(product)
}

// Delete removes the product if it exists and reports whether a row went
// away. Deleting an absent product is not an error.
func (s *ProductStore) Delete(id int) (bool, error) {
	rows, err := s.products.DeleteWhere("id = ?", id)
	return rows > 0, err
}

// intField reads an integer out of a decoded JSON object. JSON numbers
// arrive as float64; whole values are accepted, anything else is not.
func intField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func floatField(fields map[string]any, key string) (float64, bool) {
	switch v := fields[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
