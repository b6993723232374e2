package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-order-bot/models"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	gs, err := NewGormStore(db)
	require.NoError(t, err)
	return gs
}

func TestGormStoreEmpty(t *testing.T) {
	gs := newTestGormStore(t)

	orders, err := gs.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGormStoreRoundtrip(t *testing.T) {
	gs := newTestGormStore(t)

	orders := map[string]*models.Cart{
		"628111": {
			Order: []models.CartItem{
				{Name: "Lasagne", Qty: 2, Price: 15000, Subtotal: 30000},
				{Name: "Tea", Qty: 1, Price: 8000, Subtotal: 8000},
				{Name: "Fries", Qty: 3, Price: 10000, Subtotal: 30000},
			},
			Total:     68000,
			Status:    models.StatusUnpaid,
			Table:     "5",
			Timestamp: time.Now(),
		},
		"628222": {
			Order:     []models.CartItem{{Name: "Espresso", Qty: 1, Price: 18000, Subtotal: 18000}},
			Total:     18000,
			Status:    models.StatusUnpaid,
			Timestamp: time.Now(),
		},
	}
	require.NoError(t, gs.Save(orders))

	loaded, err := gs.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	cart := loaded["628111"]
	require.NotNil(t, cart)
	assert.Equal(t, 68000, cart.Total)
	assert.Equal(t, "5", cart.Table)

	// Urutan insertion harus terjaga lewat kolom position
	require.Len(t, cart.Order, 3)
	assert.Equal(t, "Lasagne", cart.Order[0].Name)
	assert.Equal(t, "Tea", cart.Order[1].Name)
	assert.Equal(t, "Fries", cart.Order[2].Name)
	assert.Equal(t, models.CartItem{Name: "Tea", Qty: 1, Price: 8000, Subtotal: 8000}, cart.Order[1])
}

func TestGormStoreSaveOverwrites(t *testing.T) {
	gs := newTestGormStore(t)

	require.NoError(t, gs.Save(map[string]*models.Cart{
		"628111": {
			Order:     []models.CartItem{{Name: "Tea", Qty: 1, Price: 8000, Subtotal: 8000}},
			Total:     8000,
			Status:    models.StatusUnpaid,
			Timestamp: time.Now(),
		},
	}))
	require.NoError(t, gs.Save(map[string]*models.Cart{
		"628222": {
			Order:     []models.CartItem{{Name: "Fries", Qty: 2, Price: 10000, Subtotal: 20000}},
			Total:     20000,
			Status:    models.StatusUnpaid,
			Timestamp: time.Now(),
		},
	}))

	loaded, err := gs.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, "628111")
	require.Contains(t, loaded, "628222")
	assert.Equal(t, 20000, loaded["628222"].Total)

	// Item lama tidak boleh tersisa sebagai baris yatim
	var count int64
	require.NoError(t, gs.db.Model(&CartItemRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
