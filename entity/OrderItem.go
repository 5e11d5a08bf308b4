package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	// Name and UnitPrice are snapshots taken when the item is added; later
	// product edits do not touch existing orders.
	Name      string          `gorm:"size:150;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Qty       int             `gorm:"not null" json:"qty"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	Status ItemStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes  string     `json:"notes"`

	StartedAt *time.Time `json:"startedAt,omitempty"` // stamped on pending→preparing
	ReadyAt   *time.Time `json:"readyAt,omitempty"`   // stamped on →ready

	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `gorm:"not null" json:"productId"`
	Product   Product `json:"-"`
}
