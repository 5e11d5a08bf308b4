package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name     string          `gorm:"size:150;not null" json:"name"`
	Category string          `gorm:"size:100" json:"category"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	// Cost is the latest known unit cost, refreshed by inbound movements.
	Cost decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`

	// TrackStock decides whether fulfillment deducts from the stock ledger.
	TrackStock bool `gorm:"not null;default:false" json:"trackStock"`
	// Stock is the cached balance; the movements table is the source of truth.
	Stock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock"`

	Active bool `gorm:"not null;default:true" json:"active"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Movements []StockMovement `json:"-"`
}
