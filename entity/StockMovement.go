package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MovementKind string

const (
	MovementInbound    MovementKind = "inbound"
	MovementOutbound   MovementKind = "outbound"
	MovementAdjustment MovementKind = "adjustment"
	MovementTransfer   MovementKind = "transfer"
	MovementLoss       MovementKind = "loss"
)

func (k MovementKind) Valid() bool {
	switch k {
	case MovementInbound, MovementOutbound, MovementAdjustment, MovementTransfer, MovementLoss:
		return true
	}
	return false
}

// Sign returns the direction the kind applies to the balance.
// Adjustments carry their own sign in the quantity.
func (k MovementKind) Sign() int {
	switch k {
	case MovementInbound:
		return 1
	case MovementOutbound, MovementTransfer, MovementLoss:
		return -1
	}
	return 1
}

// StockMovement is one append-only entry of the inventory ledger.
// Entries are never modified or deleted; corrections are new adjustments.
type StockMovement struct {
	gorm.Model
	Kind MovementKind `gorm:"size:20;not null" json:"kind"`
	// Quantity is signed: positive grows the balance, negative shrinks it.
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitValue decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitValue"`
	Reason    string          `gorm:"not null" json:"reason"`
	Reference string          `gorm:"size:150" json:"reference"`

	// BalanceBefore/After snapshot the cached balance around this entry.
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"balanceAfter"`

	// BatchID groups movements written by one operation, e.g. the outbound
	// entries of a single order settlement.
	BatchID uuid.UUID `gorm:"type:uuid;index" json:"batchId"`

	ProductID uint    `gorm:"index;not null" json:"productId"`
	Product   Product `json:"-"`

	ActorID uint `json:"actorId"`
	Actor   User `json:"-"`
}
