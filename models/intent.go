package models

// Intent yang dikenali classifier. Nilai di luar daftar ini diperlakukan
// sama dengan IntentNone oleh dispatcher.
const (
	IntentShowMenu   = "show_menu"
	IntentShowCart   = "show_cart"
	IntentCancelItem = "cancel_item"
	IntentCancelAll  = "cancel_all"
	IntentPay        = "pay"
	IntentAddItem    = "add_item"
	IntentHelp       = "help"
	IntentNone       = "none"
)

// Action adalah hasil normalisasi output classifier untuk satu pesan teks.
// CancelIndex 1-based terhadap snapshot keranjang saat klasifikasi;
// CancelQty nil atau <= 0 berarti hapus seluruh baris.
type Action struct {
	Intent      string `json:"intent"`
	CancelIndex *int   `json:"cancel_index"`
	CancelQty   *int   `json:"cancel_qty"`
	Reply       string `json:"reply"`
}
