package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. The single
// connection keeps the database alive for the test's duration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&Shopcart{}, &Product{}))
	return db
}

func TestShopcartCreateAndFind(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	require.NoError(t, store.Create(&Shopcart{ID: 42}))

	cart, err := store.Find(42)
	require.NoError(t, err)
	assert.Equal(t, 42, cart.ID)
	assert.Empty(t, cart.Products)
}

func TestShopcartCreateSeedsProducts(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	cart := Shopcart{ID: 7, Products: []Product{
		{Name: "pear", Quantity: 3, Price: 1.5},
		{Name: "fig", Quantity: 1, Price: 4.25},
	}}
	require.NoError(t, store.Create(&cart))

	found, err := store.Find(7)
	require.NoError(t, err)
	require.Len(t, found.Products, 2)
	for _, product := range found.Products {
		assert.Equal(t, 7, product.ShopcartID)
		assert.NotZero(t, product.ID)
	}
}

func TestShopcartDuplicateCreateLeavesOriginalUntouched(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	require.NoError(t, store.Create(&Shopcart{ID: 42, Products: []Product{
		{Name: "apple", Quantity: 1, Price: 0.5},
	}}))
	assert.Error(t, store.Create(&Shopcart{ID: 42}))

	cart, err := store.Find(42)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, "apple", cart.Products[0].Name)
}

func TestShopcartFindNotFound(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	_, err := store.Find(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShopcartAll(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	all, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Create(&Shopcart{ID: 1}))
	require.NoError(t, store.Create(&Shopcart{ID: 2}))

	all, err = store.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShopcartUpdateReplacesProducts(t *testing.T) {
	db := newTestDB(t)
	store := NewShopcartStore(db)
	products := NewProductStore(db)

	cart := Shopcart{ID: 5, Products: []Product{
		{Name: "apple", Quantity: 1, Price: 0.5},
		{Name: "banana", Quantity: 2, Price: 0.25},
	}}
	require.NoError(t, store.Create(&cart))
	oldID := cart.Products[0].ID

	replacement := Shopcart{ID: 5, Products: []Product{
		{Name: "cherry", Quantity: 10, Price: 0.1},
	}}
	require.NoError(t, store.Update(&replacement))

	found, err := store.Find(5)
	require.NoError(t, err)
	require.Len(t, found.Products, 1)
	assert.Equal(t, "cherry", found.Products[0].Name)

	_, err = products.Find(oldID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShopcartDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	store := NewShopcartStore(db)
	products := NewProductStore(db)

	cart := Shopcart{ID: 3, Products: []Product{
		{Name: "apple", Quantity: 1, Price: 0.5},
	}}
	require.NoError(t, store.Create(&cart))
	productID := cart.Products[0].ID

	require.NoError(t, store.Delete(3))

	_, err := store.Find(3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = products.Find(productID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting again is a no-op
	require.NoError(t, store.Delete(3))
}

func TestShopcartClearKeepsCart(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	cart := Shopcart{ID: 8, Products: []Product{
		{Name: "apple", Quantity: 1, Price: 0.5},
	}}
	require.NoError(t, store.Create(&cart))

	found, err := store.Find(8)
	require.NoError(t, err)
	require.NoError(t, store.Clear(found))
	assert.Empty(t, found.Products)

	again, err := store.Find(8)
	require.NoError(t, err)
	assert.Equal(t, 8, again.ID)
	assert.Empty(t, again.Products)
}

func TestShopcartFilterByProductName(t *testing.T) {
	store := NewShopcartStore(newTestDB(t))

	require.NoError(t, store.Create(&Shopcart{ID: 1, Products: []Product{
		{Name: "apple", Quantity: 1, Price: 0.5},
	}}))
	require.NoError(t, store.Create(&Shopcart{ID: 2, Products: []Product{
		{Name: "apple", Quantity: 2, Price: 0.5},
		{Name: "banana", Quantity: 1, Price: 0.25},
	}}))
	require.NoError(t, store.Create(&Shopcart{ID: 3, Products: []Product{
		{Name: "banana", Quantity: 5, Price: 0.25},
	}}))

	matches, err := store.FilterByProductName("apple")
	require.NoError(t, err)
	ids := make([]int, 0, len(matches))
	for _, cart := range matches {
		ids = append(ids, cart.ID)
	}
	assert.ElementsMatch(t, []int{1, 2}, ids)

	matches, err = store.FilterByProductName("banana")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// exact match only
	matches, err = store.FilterByProductName("appl")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestShopcartSerialize(t *testing.T) {
	cart := Shopcart{ID: 42, Products: []Product{
		{ID: 1, ShopcartID: 42, Name: "apple", Quantity: 2, Price: 0.5},
		{ID: 2, ShopcartID: 42, Name: "banana", Quantity: 1, Price: 0.25},
	}}

	data := cart.Serialize()
	assert.Equal(t, 42, data["id"])
	products := data["products"].([]map[string]any)
	require.Len(t, products, 2)
	assert.Equal(t, "apple", products[0]["name"])
	assert.Equal(t, "banana", products[1]["name"])
}

func TestShopcartDeserialize(t *testing.T) {
	payload := map[string]any{
		"id": float64(42),
		"products": []any{
			map[string]any{
				"shopcart_id": float64(42),
				"name":        "apple",
				"price":       0.5,
				"quantity":    float64(2),
			},
		},
	}

	var cart Shopcart
	require.NoError(t, cart.Deserialize(payload))
	assert.Equal(t, 42, cart.ID)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, "apple", cart.Products[0].Name)
	assert.Equal(t, 2, cart.Products[0].Quantity)
}

func TestShopcartDeserializeReplacesExistingProducts(t *testing.T) {
	cart := Shopcart{ID: 1, Products: []Product{
		{Name: "stale", Quantity: 1, Price: 1},
	}}

	require.NoError(t, cart.Deserialize(map[string]any{"id": float64(1)}))
	assert.Empty(t, cart.Products)
}

func TestShopcartDeserializeErrors(t *testing.T) {
	var dve *DataValidationError
	var cart Shopcart

	err := cart.Deserialize(map[string]any{"products": []any{}})
	require.ErrorAs(t, err, &dve)
	assert.Contains(t, err.Error(), "missing id")

	err = cart.Deserialize([]any{"not", "a", "mapping"})
	require.ErrorAs(t, err, &dve)
	assert.Contains(t, err.Error(), "bad or no data")

	err = cart.Deserialize(nil)
	require.ErrorAs(t, err, &dve)

	err = cart.Deserialize(map[string]any{"id": float64(1), "products": "nope"})
	require.ErrorAs(t, err, &dve)

	err = cart.Deserialize(map[string]any{"id": "one"})
	require.ErrorAs(t, err, &dve)
}

func TestShopcartRoundTrip(t *testing.T) {
	raw := `{"id":42,"products":[{"id":7,"shopcart_id":42,"name":"apple","quantity":2,"price":0.5}]}`
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	var cart Shopcart
	require.NoError(t, cart.Deserialize(payload))

	out, err := json.Marshal(cart.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
