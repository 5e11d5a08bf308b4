package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ChannelCounter  = "counter"
	ChannelTakeaway = "takeaway"
	ChannelDelivery = "delivery"
)

type Order struct {
	gorm.Model
	// Number is the human-readable sequence, e.g. ORD-20260828-003.
	Number  string `gorm:"size:30;uniqueIndex;not null" json:"number"`
	Channel string `gorm:"size:20;not null;default:'counter'" json:"channel"` // counter | takeaway | delivery

	CustomerName string `gorm:"size:150" json:"customerName"`
	Notes        string `json:"notes"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	ServiceCharge decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"serviceCharge"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	// Total = subtotal + service + tax - discount; recomputed on every item
	// mutation, never written directly by callers.
	Total decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	// Rates captured at creation so later config changes don't move totals.
	ServiceRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"serviceRate"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxRate"`

	Status OrderStatus `gorm:"size:20;not null;default:'open'" json:"status"`

	// StockDeducted guards settlement deduction against double approval.
	StockDeducted bool `gorm:"not null;default:false" json:"stockDeducted"`
	// StockDeductionPending marks a paid order whose deduction failed for
	// lack of stock and awaits manual reconciliation or retry.
	StockDeductionPending bool `gorm:"not null;default:false" json:"stockDeductionPending"`

	TableID *uint  `json:"tableId,omitempty"`
	Table   *Table `json:"-"`

	CreatedByID uint `json:"createdById"`
	CreatedBy   User `json:"-"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items    []OrderItem `json:"items,omitempty"`
	Payments []Payment   `json:"-"`
}
