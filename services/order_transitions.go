package services

import (
	"errors"
	"fmt"
	"time"

	"comandero/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// nonTerminal are the order states a settlement or auto-advance may leave.
var nonTerminal = []entity.OrderStatus{
	entity.OrderOpen, entity.OrderSent, entity.OrderPreparing,
	entity.OrderReady, entity.OrderDelivered,
}

// SetStatus drives an operator-initiated order transition. paid is only
// reachable once approved payments cover the total; cancelled is refused as
// soon as money has been approved against the order.
func (s *OrderService) SetStatus(actorID, orderID uint, target entity.OrderStatus) (*entity.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch target {
	case entity.OrderPaid:
		if order.Status == entity.OrderPaid {
			return order, nil // idempotent
		}
		approved, err := s.PaymentRepo.SumApproved(nil, order.ID)
		if err != nil {
			return nil, err
		}
		if approved.LessThan(order.Total) {
			return nil, fmt.Errorf("%w: approved payments %s do not cover total %s",
				ErrValidation, approved, order.Total)
		}
		if err := s.settleLocked(actorID, order); err != nil {
			return nil, err
		}
		return s.Repo.GetOrder(orderID)

	case entity.OrderCancelled:
		if order.Status == entity.OrderPaid {
			return nil, ErrCannotCancelPaidOrder
		}
		if !order.Status.CanTransition(entity.OrderCancelled) {
			return nil, invalidTransition(order.Status, target)
		}
		approved, err := s.PaymentRepo.SumApproved(nil, order.ID)
		if err != nil {
			return nil, err
		}
		if approved.IsPositive() {
			return nil, ErrCannotCancelPaidOrder
		}
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			rows, err := s.Repo.UpdateStatusGuard(tx, order.ID, order.Status, entity.OrderCancelled)
			if err != nil {
				return err
			}
			if rows == 0 {
				return invalidTransition(order.Status, target)
			}
			return s.freeTable(tx, order)
		})
		if err != nil {
			return nil, err
		}
		return s.Repo.GetOrder(orderID)

	default:
		if target == entity.OrderSent {
			items, err := s.Repo.GetOrderItems(order.ID)
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				return nil, fmt.Errorf("%w: cannot send an empty order", ErrValidation)
			}
		}
		if !order.Status.CanTransition(target) {
			return nil, invalidTransition(order.Status, target)
		}
		rows, err := s.Repo.UpdateStatusGuard(s.DB, order.ID, order.Status, target)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			fresh, _ := s.Repo.GetOrder(orderID)
			if fresh != nil {
				return nil, invalidTransition(fresh.Status, target)
			}
			return nil, invalidTransition(order.Status, target)
		}
		return s.Repo.GetOrder(orderID)
	}
}

// SetItemStatus drives the per-item kitchen state machine. Item statuses are
// authoritative for kitchen work; the order status is an upper-bound view.
func (s *OrderService) SetItemStatus(actorID, orderID, itemID uint, target entity.ItemStatus) (*entity.OrderItem, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown item status %q", ErrValidation, target)
	}

	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderNotEditable
	}

	item, err := s.Repo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransition(target) {
		return nil, invalidTransition(item.Status, target)
	}

	now := time.Now().UTC()
	updates := map[string]any{}
	switch {
	case target == entity.ItemPreparing && item.Status == entity.ItemPending:
		updates["started_at"] = &now
	case target == entity.ItemPending && item.Status == entity.ItemPreparing:
		// kitchen send-back restarts preparation timing
		updates["started_at"] = nil
	case target == entity.ItemReady:
		updates["ready_at"] = &now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.Repo.UpdateItemStatus(tx, item.ID, item.Status, target, updates)
		if err != nil {
			return err
		}
		if rows == 0 {
			return invalidTransition(item.Status, target)
		}
		if target == entity.ItemCancelled {
			// cancelled lines are no longer charged
			if err := s.recomputeTotals(tx, order); err != nil {
				return err
			}
			return s.guardApprovedPayments(tx, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetItem(orderID, itemID)
}

// AllItemsDelivered reports whether every non-cancelled item of the order is
// delivered (and at least one exists).
func (s *OrderService) AllItemsDelivered(orderID uint) (bool, error) {
	items, err := s.Repo.GetOrderItems(orderID)
	if err != nil {
		return false, err
	}
	delivered := 0
	for _, it := range items {
		switch it.Status {
		case entity.ItemCancelled:
			continue
		case entity.ItemDelivered:
			delivered++
		default:
			return false, nil
		}
	}
	return delivered > 0, nil
}

// AdvanceToDelivered moves the order to delivered from any working state.
// Used by the dispatch board when the last item is delivered.
func (s *OrderService) AdvanceToDelivered(orderID uint) error {
	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	_, err := s.Repo.UpdateStatusIn(s.DB, orderID, nonTerminal, entity.OrderDelivered)
	return err
}

// settleLocked marks the order paid and deducts tracked stock. The caller
// must hold the order lock.
func (s *OrderService) settleLocked(actorID uint, order *entity.Order) error {
	if order.Status != entity.OrderPaid {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			rows, err := s.Repo.UpdateStatusIn(tx, order.ID, nonTerminal, entity.OrderPaid)
			if err != nil {
				return err
			}
			if rows == 0 {
				return invalidTransition(order.Status, entity.OrderPaid)
			}
			return s.freeTable(tx, order)
		})
		if err != nil {
			return err
		}
	}

	if order.StockDeducted {
		return nil // double-approval must not deduct twice
	}
	return s.deductStock(actorID, order)
}

// deductStock performs the settlement deduction all-or-nothing. On stock
// shortfall the order stays paid and is flagged for reconciliation; the
// completed payment is deliberately not rolled back.
func (s *OrderService) deductStock(actorID uint, order *entity.Order) error {
	items, err := s.Repo.GetOrderItems(order.ID)
	if err != nil {
		return err
	}

	lines := make([]DeductionLine, 0, len(items))
	for _, it := range items {
		if it.Status == entity.ItemCancelled {
			continue
		}
		product, err := s.ProductRepo.Get(it.ProductID)
		if err != nil {
			return err
		}
		if !product.TrackStock {
			continue
		}
		lines = append(lines, DeductionLine{
			ProductID: it.ProductID,
			Quantity:  decimal.NewFromInt(int64(it.Qty)),
		})
	}

	if len(lines) == 0 {
		return s.Repo.SetDeductionFlags(s.DB, order.ID, true, false)
	}

	err = s.Stock.DeductBatch(actorID, order.Number, uuid.New(), lines)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			if flagErr := s.Repo.SetDeductionFlags(s.DB, order.ID, false, true); flagErr != nil {
				return flagErr
			}
			return fmt.Errorf("%w: %v", ErrDeductionFailed, err)
		}
		return err
	}
	return s.Repo.SetDeductionFlags(s.DB, order.ID, true, false)
}

// RetryDeduction re-runs a settlement deduction that previously failed for
// lack of stock.
func (s *OrderService) RetryDeduction(actorID, orderID uint) (*entity.Order, error) {
	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderPaid || order.StockDeducted || !order.StockDeductionPending {
		return nil, fmt.Errorf("%w: order has no pending stock deduction", ErrValidation)
	}
	if err := s.deductStock(actorID, order); err != nil {
		return nil, err
	}
	return s.Repo.GetOrder(orderID)
}

func (s *OrderService) freeTable(tx *gorm.DB, order *entity.Order) error {
	if order.TableID == nil {
		return nil
	}
	return s.TableRepo.SetStatus(tx, *order.TableID, entity.TableFree)
}
