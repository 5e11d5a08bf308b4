package repository

import (
	"time"

	"comandero/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) Get(paymentID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, paymentID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByOrder(orderID uint) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error
	return out, err
}

// UpdateStatusGuard swaps the payment status only if it still equals from.
func (r *PaymentRepository) UpdateStatusGuard(tx *gorm.DB, paymentID uint, from, to entity.PaymentStatus, approvedAt *time.Time) (int64, error) {
	updates := map[string]any{"status": to}
	if approvedAt != nil {
		updates["approved_at"] = approvedAt
	}
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteGuard removes a payment unless it is approved.
func (r *PaymentRepository) DeleteGuard(tx *gorm.DB, paymentID uint) (int64, error) {
	res := tx.Where("id = ? AND status <> ?", paymentID, entity.PaymentApproved).
		Delete(&entity.Payment{})
	return res.RowsAffected, res.Error
}

// SumApproved returns the approved total for an order. Pass the enclosing
// tx when the result gates a state change.
func (r *PaymentRepository) SumApproved(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	if tx == nil {
		tx = r.DB
	}
	var raw struct {
		Total decimal.Decimal
	}
	err := tx.Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("order_id = ? AND status = ?", orderID, entity.PaymentApproved).
		Scan(&raw).Error
	return raw.Total, err
}

type MethodTotal struct {
	Method entity.PaymentMethod
	Total  decimal.Decimal
}

// SumApprovedBetween groups a restaurant's approved payments by method over
// an approval-time window. Feeds shift reconciliation.
func (r *PaymentRepository) SumApprovedBetween(restaurantID uint, from, to time.Time) ([]MethodTotal, error) {
	var out []MethodTotal
	err := r.DB.Model(&entity.Payment{}).
		Select("payments.method AS method, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.restaurant_id = ?", restaurantID).
		Where("payments.status = ?", entity.PaymentApproved).
		Where("payments.approved_at >= ? AND payments.approved_at <= ?", from, to).
		Group("payments.method").
		Scan(&out).Error
	return out, err
}
