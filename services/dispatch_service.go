package services

import (
	"fmt"
	"time"

	"comandero/entity"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// PriorityFor grades an order by how long it has been waiting.
func PriorityFor(orderCreatedAt, now time.Time) Priority {
	wait := now.Sub(orderCreatedAt)
	switch {
	case wait < 10*time.Minute:
		return PriorityLow
	case wait < 20*time.Minute:
		return PriorityMedium
	case wait < 30*time.Minute:
		return PriorityHigh
	default:
		return PriorityUrgent
	}
}

type DispatchItem struct {
	ItemID         uint              `json:"itemId"`
	OrderID        uint              `json:"orderId"`
	OrderNumber    string            `json:"orderNumber"`
	Channel        string            `json:"channel"`
	TableID        *uint             `json:"tableId,omitempty"`
	Name           string            `json:"name"`
	Qty            int               `json:"qty"`
	Notes          string            `json:"notes,omitempty"`
	Status         entity.ItemStatus `json:"status"`
	Priority       Priority          `json:"priority"`
	WaitMinutes    int               `json:"waitMinutes"`
	OrderCreatedAt time.Time         `json:"orderCreatedAt"`
}

// DispatchBoard is the kitchen-facing projection: items of active orders
// partitioned by status, oldest order first in every column.
type DispatchBoard struct {
	Pending   []DispatchItem `json:"pending"`
	Preparing []DispatchItem `json:"preparing"`
	Ready     []DispatchItem `json:"ready"`
	Delivered []DispatchItem `json:"delivered"`
}

type DispatchEvent struct {
	Type    string `json:"type"` // item_moved | order_delivered | board_changed
	OrderID uint   `json:"orderId,omitempty"`
	ItemID  uint   `json:"itemId,omitempty"`
	Status  string `json:"status,omitempty"`
}

// DispatchNotifier pushes board refresh events to connected stations.
type DispatchNotifier interface {
	Notify(restaurantID uint, event DispatchEvent)
}

// DispatchService derives the board from the order store; it holds no state
// of its own and its reads take no locks.
type DispatchService struct {
	Orders   *OrderService
	notifier DispatchNotifier
}

func NewDispatchService(orders *OrderService) *DispatchService {
	return &DispatchService{Orders: orders}
}

// SetNotifier attaches the push channel (the websocket hub); optional.
func (s *DispatchService) SetNotifier(n DispatchNotifier) {
	s.notifier = n
}

func (s *DispatchService) notify(restaurantID uint, event DispatchEvent) {
	if s.notifier != nil {
		s.notifier.Notify(restaurantID, event)
	}
}

// Columns builds the board snapshot. Priority is recomputed on every read;
// it is advisory and never persisted.
func (s *DispatchService) Columns(restaurantID uint) (*DispatchBoard, error) {
	orders, err := s.Orders.Repo.ActiveOrders(restaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	board := &DispatchBoard{
		Pending:   []DispatchItem{},
		Preparing: []DispatchItem{},
		Ready:     []DispatchItem{},
		Delivered: []DispatchItem{},
	}

	// ActiveOrders comes back oldest first, which keeps every column FIFO.
	for _, order := range orders {
		priority := PriorityFor(order.CreatedAt, now)
		wait := int(now.Sub(order.CreatedAt).Minutes())
		for _, it := range order.Items {
			if it.Status == entity.ItemCancelled {
				continue
			}
			di := DispatchItem{
				ItemID:         it.ID,
				OrderID:        order.ID,
				OrderNumber:    order.Number,
				Channel:        order.Channel,
				TableID:        order.TableID,
				Name:           it.Name,
				Qty:            it.Qty,
				Notes:          it.Notes,
				Status:         it.Status,
				Priority:       priority,
				WaitMinutes:    wait,
				OrderCreatedAt: order.CreatedAt,
			}
			switch it.Status {
			case entity.ItemPending:
				board.Pending = append(board.Pending, di)
			case entity.ItemPreparing:
				board.Preparing = append(board.Preparing, di)
			case entity.ItemReady:
				board.Ready = append(board.Ready, di)
			case entity.ItemDelivered:
				board.Delivered = append(board.Delivered, di)
			}
		}
	}
	return board, nil
}

// MoveItem is the board's only mutation: a reassignment between the four
// working columns, delegated to the order store. Cancellation does not pass
// through here; it has its own explicit operation.
func (s *DispatchService) MoveItem(actorID, orderID, itemID uint, target entity.ItemStatus) (*entity.OrderItem, error) {
	switch target {
	case entity.ItemPending, entity.ItemPreparing, entity.ItemReady, entity.ItemDelivered:
	default:
		return nil, fmt.Errorf("%w: %q is not a dispatch column", ErrValidation, target)
	}

	current, err := s.Orders.Repo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if current.Status == target {
		return nil, fmt.Errorf("%w: item is already %s", ErrValidation, target)
	}
	if current.Status == entity.ItemCancelled {
		return nil, invalidTransition(current.Status, target)
	}

	item, err := s.Orders.SetItemStatus(actorID, orderID, itemID, target)
	if err != nil {
		return nil, err
	}

	order, err := s.Orders.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	event := DispatchEvent{Type: "item_moved", OrderID: orderID, ItemID: itemID, Status: string(target)}
	if target == entity.ItemDelivered {
		done, err := s.Orders.AllItemsDelivered(orderID)
		if err != nil {
			return nil, err
		}
		if done {
			if err := s.Orders.AdvanceToDelivered(orderID); err != nil {
				return nil, err
			}
			event.Type = "order_delivered"
		}
	}
	s.notify(order.RestaurantID, event)
	return item, nil
}
