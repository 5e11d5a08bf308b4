package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method PaymentMethod   `gorm:"size:20;not null" json:"method"`
	Status PaymentStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	// Reference is a free-form external reference (terminal slip, voucher
	// code); a uuid is generated when the caller leaves it empty.
	Reference string `gorm:"size:150" json:"reference"`

	// ApprovedAt attributes the payment to whatever shift window covers it.
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	ActorID uint `json:"actorId"`
	Actor   User `json:"-"`
}
