package entity

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemDelivered ItemStatus = "delivered"
	ItemCancelled ItemStatus = "cancelled"
)

// itemTransitions includes the preparing→pending send-back; ready is a
// one-way gate, there is no reverse edge past it.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemPending:   {ItemPreparing, ItemCancelled},
	ItemPreparing: {ItemPending, ItemReady, ItemCancelled},
	ItemReady:     {ItemDelivered},
	ItemDelivered: {},
	ItemCancelled: {},
}

func (s ItemStatus) Valid() bool {
	_, ok := itemTransitions[s]
	return ok
}

func (s ItemStatus) Terminal() bool {
	return s == ItemDelivered || s == ItemCancelled
}

func (s ItemStatus) CanTransition(target ItemStatus) bool {
	for _, t := range itemTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
