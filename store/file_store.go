package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/yeremiapane/cafe-order-bot/models"
)

// FileStore menyimpan order log sebagai satu dokumen JSON. Format file ini
// juga kontrak baca untuk dashboard, jadi bentuknya mengikuti models.Cart
// apa adanya.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load membaca seluruh order log. File yang belum ada atau isinya rusak
// diperlakukan sebagai store kosong, bukan error.
func (fs *FileStore) Load() (map[string]*models.Cart, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*models.Cart{}, nil
		}
		return nil, err
	}

	orders := map[string]*models.Cart{}
	if err := json.Unmarshal(data, &orders); err != nil {
		// File rusak dianggap kosong
		return map[string]*models.Cart{}, nil
	}
	if orders == nil {
		orders = map[string]*models.Cart{}
	}
	return orders, nil
}

// Save menimpa seluruh file dengan mapping yang diberikan.
func (fs *FileStore) Save(orders map[string]*models.Cart) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(orders, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0644)
}
