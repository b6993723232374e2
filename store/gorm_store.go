package store

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-order-bot/models"
)

// CartRecord adalah bentuk relasional satu keranjang aktif.
type CartRecord struct {
	ID         uint             `gorm:"primaryKey"`
	CustomerID string           `gorm:"type:varchar(32);uniqueIndex;not null"`
	Status     string           `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Total      int              `gorm:"not null;default:0"`
	TableNo    string           `gorm:"column:table_no;type:varchar(50)"`
	Timestamp  time.Time        `gorm:"not null"`
	Items      []CartItemRecord `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type CartItemRecord struct {
	ID       uint   `gorm:"primaryKey"`
	CartID   uint   `gorm:"index;not null"`
	Position int    `gorm:"not null"` // urutan insertion di keranjang
	Name     string `gorm:"type:varchar(100);not null"`
	Qty      int    `gorm:"not null"`
	Price    int    `gorm:"not null"`
	Subtotal int    `gorm:"not null"`
}

// GormStore memenuhi kontrak OrderStore yang sama dengan FileStore di atas
// database relasional, untuk deployment yang tidak mau bergantung pada satu
// file JSON. Save tetap full overwrite supaya semantiknya identik.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&CartRecord{}, &CartItemRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (gs *GormStore) Load() (map[string]*models.Cart, error) {
	var records []CartRecord
	if err := gs.db.Preload("Items").Find(&records).Error; err != nil {
		return nil, err
	}

	orders := make(map[string]*models.Cart, len(records))
	for _, rec := range records {
		sort.Slice(rec.Items, func(i, j int) bool {
			return rec.Items[i].Position < rec.Items[j].Position
		})

		cart := &models.Cart{
			Total:     rec.Total,
			Status:    rec.Status,
			Table:     rec.TableNo,
			Timestamp: rec.Timestamp,
			Order:     make([]models.CartItem, 0, len(rec.Items)),
		}
		for _, item := range rec.Items {
			cart.Order = append(cart.Order, models.CartItem{
				Name:     item.Name,
				Qty:      item.Qty,
				Price:    item.Price,
				Subtotal: item.Subtotal,
			})
		}
		orders[rec.CustomerID] = cart
	}
	return orders, nil
}

func (gs *GormStore) Save(orders map[string]*models.Cart) error {
	return gs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CartItemRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CartRecord{}).Error; err != nil {
			return err
		}

		for customerID, cart := range orders {
			rec := CartRecord{
				CustomerID: customerID,
				Status:     cart.Status,
				Total:      cart.Total,
				TableNo:    cart.Table,
				Timestamp:  cart.Timestamp,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			for i, item := range cart.Order {
				itemRec := CartItemRecord{
					CartID:   rec.ID,
					Position: i,
					Name:     item.Name,
					Qty:      item.Qty,
					Price:    item.Price,
					Subtotal: item.Subtotal,
				}
				if err := tx.Create(&itemRec).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
