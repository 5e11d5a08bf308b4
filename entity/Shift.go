package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"
)

// Shift is one cash-register session. Totals are computed at close from the
// approved payments whose ApprovedAt falls inside [OpenedAt, ClosedAt];
// payments carry no shift foreign key.
type Shift struct {
	gorm.Model
	OpeningFloat decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"openingFloat"`
	ClosingFloat *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closingFloat,omitempty"`

	OpenedAt time.Time  `gorm:"not null" json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`

	SalesTotal *decimal.Decimal `gorm:"type:decimal(12,2)" json:"salesTotal,omitempty"`
	CashTotal  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cashTotal,omitempty"`
	CardTotal  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cardTotal,omitempty"`
	OtherTotal *decimal.Decimal `gorm:"type:decimal(12,2)" json:"otherTotal,omitempty"`
	// Variance = closing float - opening float - cash total.
	Variance *decimal.Decimal `gorm:"type:decimal(12,2)" json:"variance,omitempty"`

	Status string `gorm:"size:20;not null;default:'open'" json:"status"` // open | closed
	Notes  string `json:"notes"`

	OperatorID uint `gorm:"not null" json:"operatorId"`
	Operator   User `json:"-"`

	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
