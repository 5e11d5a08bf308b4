package services

import (
	"fmt"
	"time"

	"comandero/entity"
	"comandero/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService struct {
	DB     *gorm.DB
	Repo   *repository.PaymentRepository
	Orders *OrderService
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, orders *OrderService) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Orders: orders}
}

type ApplyPaymentReq struct {
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Method    entity.PaymentMethod `json:"method" binding:"required"`
	Reference string               `json:"reference"`
}

// Apply records a payment against the order. Cash is approved on the spot
// (the register's policy); every other method starts pending and needs an
// explicit status transition. A cash payment that completes the total
// settles the order immediately; if the settlement deduction then fails for
// lack of stock, the payment stands and ErrDeductionFailed is returned next
// to the created payment.
func (s *PaymentService) Apply(actorID, orderID uint, req ApplyPaymentReq) (*entity.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}

	unlock := s.Orders.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Orders.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderCancelled {
		return nil, fmt.Errorf("%w: order is cancelled", ErrValidation)
	}

	approved, err := s.Repo.SumApproved(nil, order.ID)
	if err != nil {
		return nil, err
	}
	outstanding := order.Total.Sub(approved)
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: outstanding is %s, got %s", ErrOverpayment, outstanding, req.Amount)
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	payment := &entity.Payment{
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    entity.PaymentPending,
		Reference: reference,
		OrderID:   order.ID,
		ActorID:   actorID,
	}
	if req.Method == entity.MethodCash {
		now := time.Now().UTC()
		payment.Status = entity.PaymentApproved
		payment.ApprovedAt = &now
	}

	if err := s.Repo.Create(s.DB, payment); err != nil {
		return nil, err
	}

	if payment.Status == entity.PaymentApproved && approved.Add(req.Amount).Equal(order.Total) {
		if err := s.Orders.settleLocked(actorID, order); err != nil {
			return payment, err
		}
	}
	return payment, nil
}

// SetStatus transitions a payment. Approval re-validates the approved sum
// against the order total under the order lock, so two concurrent approvals
// that each fit the outstanding balance cannot both land.
func (s *PaymentService) SetStatus(actorID, paymentID uint, target entity.PaymentStatus) (*entity.Payment, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, target)
	}

	p, err := s.Repo.Get(paymentID)
	if err != nil {
		return nil, err
	}

	unlock := s.Orders.locks.Acquire(orderKey(p.OrderID))
	defer unlock()

	// reload under the lock; another terminal could have raced us here
	p, err = s.Repo.Get(paymentID)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(target) {
		return nil, invalidTransition(p.Status, target)
	}

	if target != entity.PaymentApproved {
		rows, err := s.Repo.UpdateStatusGuard(s.DB, p.ID, p.Status, target, nil)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, invalidTransition(p.Status, target)
		}
		return s.Repo.Get(paymentID)
	}

	order, err := s.Orders.Repo.GetOrder(p.OrderID)
	if err != nil {
		return nil, err
	}
	approved, err := s.Repo.SumApproved(nil, order.ID)
	if err != nil {
		return nil, err
	}
	if approved.Add(p.Amount).GreaterThan(order.Total) {
		return nil, fmt.Errorf("%w: approving %s would exceed total %s",
			ErrOverpayment, p.Amount, order.Total)
	}

	now := time.Now().UTC()
	rows, err := s.Repo.UpdateStatusGuard(s.DB, p.ID, p.Status, entity.PaymentApproved, &now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, invalidTransition(p.Status, target)
	}

	if approved.Add(p.Amount).Equal(order.Total) {
		if err := s.Orders.settleLocked(actorID, order); err != nil {
			updated, _ := s.Repo.Get(paymentID)
			return updated, err
		}
	}
	return s.Repo.Get(paymentID)
}

// Delete removes a payment unless it has been approved.
func (s *PaymentService) Delete(actorID, paymentID uint) error {
	p, err := s.Repo.Get(paymentID)
	if err != nil {
		return err
	}

	unlock := s.Orders.locks.Acquire(orderKey(p.OrderID))
	defer unlock()

	rows, err := s.Repo.DeleteGuard(s.DB, paymentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: approved payments cannot be deleted", ErrValidation)
	}
	return nil
}

type OutstandingBalance struct {
	OrderID     uint            `json:"orderId"`
	Total       decimal.Decimal `json:"total"`
	Approved    decimal.Decimal `json:"approved"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Outstanding is a pure query; the result is never negative.
func (s *PaymentService) Outstanding(orderID uint) (*OutstandingBalance, error) {
	order, err := s.Orders.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	approved, err := s.Repo.SumApproved(nil, orderID)
	if err != nil {
		return nil, err
	}
	outstanding := order.Total.Sub(approved)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return &OutstandingBalance{
		OrderID:     orderID,
		Total:       order.Total,
		Approved:    approved,
		Outstanding: outstanding,
	}, nil
}

func (s *PaymentService) ListByOrder(orderID uint) ([]entity.Payment, error) {
	return s.Repo.ListByOrder(orderID)
}
