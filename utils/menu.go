package utils

import (
	"encoding/json"
	"os"
)

// Menu memetakan product_retailer_id di katalog WhatsApp ke nama tampilan.
// Dimuat sekali saat startup; katalognya sendiri dikelola di Meta Commerce
// Manager, file ini hanya lookup kode -> nama.
type Menu map[string]string

// LoadMenu membaca file menu. File yang tidak ada menghasilkan menu kosong
// plus error supaya pemanggil bisa mencatat warning.
func LoadMenu(path string) (Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Menu{}, err
	}

	var menu Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return Menu{}, err
	}
	if menu == nil {
		menu = Menu{}
	}
	return menu, nil
}

// Resolve mengembalikan nama tampilan untuk sebuah kode produk.
// Kode yang tidak dikenal dipakai apa adanya.
func (m Menu) Resolve(code string) string {
	if name, ok := m[code]; ok {
		return name
	}
	return code
}
