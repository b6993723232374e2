package store

import (
	"github.com/yeremiapane/cafe-order-bot/models"
)

// OrderStore menyimpan seluruh keranjang aktif, keyed by nomor pelanggan.
//
// Kontraknya sengaja kasar: Load mengembalikan seluruh mapping dan Save
// menimpa seluruh isinya, tidak ada partial update. Pemanggil wajib
// melakukan load-mutate-save dalam satu operasi logis; serialisasi antar
// request ditangani di CartService, bukan di sini.
type OrderStore interface {
	Load() (map[string]*models.Cart, error)
	Save(orders map[string]*models.Cart) error
}
