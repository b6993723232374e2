package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/cafe-order-bot/models"
	"github.com/yeremiapane/cafe-order-bot/store"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

var (
	ErrEmptyCart    = errors.New("keranjang kosong")
	ErrInvalidIndex = errors.New("nomor item di luar jangkauan")
)

// IncomingItem adalah satu item dari pesan order katalog, sudah di-resolve
// ke nama tampilan.
type IncomingItem struct {
	Name  string
	Qty   int
	Price int
}

// RemoveResult menjelaskan hasil RemoveQuantity untuk dirender jadi balasan.
type RemoveResult struct {
	ItemName    string
	RemovedQty  int
	RemovedLine bool         // seluruh baris ikut terhapus
	CartDeleted bool         // keranjang terhapus karena jadi kosong
	Cart        *models.Cart // nil kalau CartDeleted
}

// CartService memegang seluruh aturan keranjang: merge item, hitung ulang
// total, pembatalan sebagian, dan binding meja.
//
// Store-nya full load/save, jadi dua mutasi yang jalan bersamaan bisa saling
// menimpa hasil Save (lost update) — juga antar pelanggan yang berbeda,
// karena Save menulis seluruh mapping. Satu mutex menserialisasi semua
// siklus load-mutate-save.
type CartService struct {
	store store.OrderStore
	mu    sync.Mutex
}

func NewCartService(st store.OrderStore) *CartService {
	return &CartService{store: st}
}

// AddItems menggabungkan item baru ke keranjang pelanggan, membuat keranjang
// kalau belum ada. Baris dengan nama yang sama di-merge: qty dan subtotal
// baris bertambah memakai harga baris yang sudah tercatat, sedangkan total
// keranjang bertambah memakai harga yang baru masuk. Table hanya diisi kalau
// belum pernah diisi.
func (cs *CartService) AddItems(customerID string, items []IncomingItem, table string) (*models.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	orders, err := cs.store.Load()
	if err != nil {
		return nil, err
	}

	cart, ok := orders[customerID]
	if !ok {
		cart = &models.Cart{
			Order:     []models.CartItem{},
			Status:    models.StatusUnpaid,
			Timestamp: time.Now(),
			Table:     table,
		}
		orders[customerID] = cart
	} else if table != "" && cart.Table == "" {
		cart.Table = table
	}

	for _, in := range items {
		if line := cart.FindItem(in.Name); line != nil {
			line.Qty += in.Qty
			line.Subtotal += in.Qty * line.Price
		} else {
			cart.Order = append(cart.Order, models.CartItem{
				Name:     in.Name,
				Qty:      in.Qty,
				Price:    in.Price,
				Subtotal: in.Qty * in.Price,
			})
		}
		cart.Total += in.Qty * in.Price
	}

	if err := cs.store.Save(orders); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetTable mengikat (atau memindahkan) nomor meja pelanggan. Berbeda dengan
// AddItems, pemanggilan eksplisit ini selalu menimpa nilai lama.
func (cs *CartService) SetTable(customerID, table string) (*models.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	orders, err := cs.store.Load()
	if err != nil {
		return nil, err
	}

	cart, ok := orders[customerID]
	if !ok {
		cart = &models.Cart{
			Order:     []models.CartItem{},
			Status:    models.StatusUnpaid,
			Timestamp: time.Now(),
			Table:     table,
		}
		orders[customerID] = cart
	} else {
		cart.Table = table
	}

	if err := cs.store.Save(orders); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveQuantity mengurangi qty item ke-index (1-based). Qty <= 0 berarti
// hapus seluruh baris; qty >= sisa baris juga menghapus seluruh baris.
// Keranjang yang jadi kosong dihapus dari store, bukan disimpan sebagai
// cangkang kosong.
func (cs *CartService) RemoveQuantity(customerID string, index, qty int) (RemoveResult, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	orders, err := cs.store.Load()
	if err != nil {
		return RemoveResult{}, err
	}

	cart, ok := orders[customerID]
	if !ok || len(cart.Order) == 0 {
		return RemoveResult{}, ErrEmptyCart
	}
	if index < 1 || index > len(cart.Order) {
		return RemoveResult{}, ErrInvalidIndex
	}

	line := &cart.Order[index-1]
	res := RemoveResult{ItemName: line.Name}

	if qty <= 0 || qty >= line.Qty {
		res.RemovedQty = line.Qty
		res.RemovedLine = true
		cart.Total -= line.Subtotal
		cart.Order = append(cart.Order[:index-1], cart.Order[index:]...)
	} else {
		reduce := qty * line.Price
		line.Qty -= qty
		line.Subtotal -= reduce
		cart.Total -= reduce
		res.RemovedQty = qty
	}

	if len(cart.Order) == 0 {
		delete(orders, customerID)
		res.CartDeleted = true
	} else {
		res.Cart = cart
	}

	if err := cs.store.Save(orders); err != nil {
		return RemoveResult{}, err
	}
	return res, nil
}

// Clear menghapus keranjang pelanggan. Mengembalikan false kalau memang
// tidak ada pesanan aktif.
func (cs *CartService) Clear(customerID string) (bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	orders, err := cs.store.Load()
	if err != nil {
		return false, err
	}
	if _, ok := orders[customerID]; !ok {
		return false, nil
	}

	delete(orders, customerID)
	if err := cs.store.Save(orders); err != nil {
		return false, err
	}
	return true, nil
}

// Cart mengambil keranjang pelanggan untuk dibaca.
func (cs *CartService) Cart(customerID string) (*models.Cart, bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	orders, err := cs.store.Load()
	if err != nil {
		return nil, false, err
	}
	cart, ok := orders[customerID]
	return cart, ok, nil
}

// Snapshot membangun view keranjang untuk classifier: index 1-based, tanpa
// harga satuan dan tanpa identitas pelanggan. Kosong kalau belum ada
// keranjang.
func (cs *CartService) Snapshot(customerID string) ([]models.CartEntry, error) {
	cart, ok, err := cs.Cart(customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.CartEntry{}, nil
	}

	entries := make([]models.CartEntry, 0, len(cart.Order))
	for i, item := range cart.Order {
		entries = append(entries, models.CartEntry{
			Index:    i + 1,
			Name:     item.Name,
			Qty:      item.Qty,
			Subtotal: item.Subtotal,
		})
	}
	return entries, nil
}

// RenderSummary merender daftar pesanan bernomor plus total, dipakai sebagai
// konfirmasi setelah order katalog masuk.
func (cs *CartService) RenderSummary(cart *models.Cart) string {
	lines := make([]string, 0, len(cart.Order))
	for i, item := range cart.Order {
		lines = append(lines, fmt.Sprintf("%d. %s x%d = %s IDR",
			i+1, item.Name, item.Qty, utils.FormatThousands(item.Subtotal)))
	}
	return fmt.Sprintf("🧾 Pesanan kamu:\n%s\n\nTotal: %s IDR",
		strings.Join(lines, "\n"), utils.FormatThousands(cart.Total))
}

// RenderReceipt adalah RenderSummary plus petunjuk format pembatalan.
func (cs *CartService) RenderReceipt(cart *models.Cart) string {
	return cs.RenderSummary(cart) +
		"\nUntuk membatalkan, ketik *hapus <nomor_item> <jumlah>*.\nContoh: `hapus 1 2`"
}
