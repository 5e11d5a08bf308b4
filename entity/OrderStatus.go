package entity

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderSent      OrderStatus = "sent"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the forward edges of the order state machine.
// cancelled is handled separately (reachable from any non-terminal state),
// paid is only reachable through full payment settlement.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderOpen:      {OrderSent},
	OrderSent:      {OrderPreparing, OrderReady, OrderDelivered},
	OrderPreparing: {OrderReady, OrderDelivered},
	OrderReady:     {OrderDelivered},
	OrderDelivered: {},
	OrderPaid:      {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

// CanTransition reports whether an operator-driven move from s to target is
// allowed. Payment settlement bypasses this through the payment ledger.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if target == OrderCancelled {
		return !s.Terminal()
	}
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
