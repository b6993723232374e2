package models

import "time"

const StatusUnpaid = "unpaid"

// Cart adalah pesanan aktif milik satu pelanggan (keyed by nomor WhatsApp).
// Bentuk JSON-nya sama persis dengan order log yang dibaca dashboard.
type Cart struct {
	Order     []CartItem `json:"order"`
	Total     int        `json:"total"`
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Table     string     `json:"table,omitempty"`
}

type CartItem struct {
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Price    int    `json:"price"`
	Subtotal int    `json:"subtotal"`
}

// CartEntry adalah satu baris snapshot keranjang untuk classifier.
// Index 1-based; harga satuan sengaja tidak ikut diekspos.
type CartEntry struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Subtotal int    `json:"subtotal"`
}

// FindItem mencari baris dengan nama yang sama. Nama unik per keranjang,
// jadi maksimal satu baris yang cocok.
func (c *Cart) FindItem(name string) *CartItem {
	for i := range c.Order {
		if c.Order[i].Name == name {
			return &c.Order[i]
		}
	}
	return nil
}
