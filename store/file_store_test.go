package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/cafe-order-bot/models"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "orders_log.json"))

	orders, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders_log.json")
	require.NoError(t, os.WriteFile(path, []byte("{bukan json"), 0644))

	fs := NewFileStore(path)
	orders, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileStoreRoundtrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "orders_log.json"))

	orders := map[string]*models.Cart{
		"628111": {
			Order: []models.CartItem{
				{Name: "Lasagne", Qty: 2, Price: 15000, Subtotal: 30000},
				{Name: "Tea", Qty: 1, Price: 8000, Subtotal: 8000},
			},
			Total:     38000,
			Status:    models.StatusUnpaid,
			Table:     "5",
			Timestamp: time.Now().Truncate(time.Second),
		},
	}
	require.NoError(t, fs.Save(orders))

	loaded, err := fs.Load()
	require.NoError(t, err)
	require.Contains(t, loaded, "628111")

	cart := loaded["628111"]
	assert.Equal(t, 38000, cart.Total)
	assert.Equal(t, "5", cart.Table)
	assert.Equal(t, models.StatusUnpaid, cart.Status)

	// Urutan item harus tetap sesuai insertion order
	require.Len(t, cart.Order, 2)
	assert.Equal(t, "Lasagne", cart.Order[0].Name)
	assert.Equal(t, "Tea", cart.Order[1].Name)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "orders_log.json"))

	require.NoError(t, fs.Save(map[string]*models.Cart{
		"628111": {Total: 10000, Status: models.StatusUnpaid, Timestamp: time.Now()},
		"628222": {Total: 20000, Status: models.StatusUnpaid, Timestamp: time.Now()},
	}))
	require.NoError(t, fs.Save(map[string]*models.Cart{
		"628222": {Total: 25000, Status: models.StatusUnpaid, Timestamp: time.Now()},
	}))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, "628111")
	require.Contains(t, loaded, "628222")
	assert.Equal(t, 25000, loaded["628222"].Total)
}
