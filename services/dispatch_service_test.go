package services

import (
	"testing"
	"time"

	"comandero/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	events []DispatchEvent
}

func (n *recordingNotifier) Notify(restaurantID uint, event DispatchEvent) {
	n.events = append(n.events, event)
}

func TestPriorityFor(t *testing.T) {
	now := time.Now()

	cases := []struct {
		age  time.Duration
		want Priority
	}{
		{0, PriorityLow},
		{9 * time.Minute, PriorityLow},
		{10 * time.Minute, PriorityMedium},
		{19 * time.Minute, PriorityMedium},
		{20 * time.Minute, PriorityHigh},
		{29 * time.Minute, PriorityHigh},
		{30 * time.Minute, PriorityUrgent},
		{2 * time.Hour, PriorityUrgent},
	}
	for _, tc := range cases {
		got := PriorityFor(now.Add(-tc.age), now)
		assert.Equal(t, tc.want, got, "age %s", tc.age)
	}
}

func TestColumnsPartitionByStatusOldestFirst(t *testing.T) {
	env := newTestEnv(t)

	older := env.createOrder(
		OrderItemIn{ProductID: env.Burger.ID, Qty: 1},
		OrderItemIn{ProductID: env.Fries.ID, Qty: 1},
	)
	time.Sleep(5 * time.Millisecond)
	newer := env.createOrder(OrderItemIn{ProductID: env.Soda.ID, Qty: 1})

	// one of the older order's items enters preparation, one is cancelled
	_, err := env.Orders.SetItemStatus(env.OperatorID, older.ID, older.Items[0].ID, entity.ItemPreparing)
	require.NoError(t, err)
	_, err = env.Orders.SetItemStatus(env.OperatorID, older.ID, older.Items[1].ID, entity.ItemCancelled)
	require.NoError(t, err)

	board, err := env.Dispatch.Columns(env.RestaurantID)
	require.NoError(t, err)

	require.Len(t, board.Preparing, 1)
	assert.Equal(t, older.Items[0].ID, board.Preparing[0].ItemID)
	assert.Equal(t, older.Number, board.Preparing[0].OrderNumber)

	// cancelled item is invisible; the newer order's item waits in pending
	require.Len(t, board.Pending, 1)
	assert.Equal(t, newer.Items[0].ID, board.Pending[0].ItemID)
	assert.Empty(t, board.Ready)
	assert.Empty(t, board.Delivered)
}

func TestColumnsHidePaidOrders(t *testing.T) {
	env := newTestEnv(t)

	order := env.createOrder(OrderItemIn{ProductID: env.Soda.ID, Qty: 1}) // 2.90
	env.payCash(order.ID, "2.90")

	board, err := env.Dispatch.Columns(env.RestaurantID)
	require.NoError(t, err)
	assert.Empty(t, board.Pending)
	assert.Empty(t, board.Preparing)
	assert.Empty(t, board.Ready)
	assert.Empty(t, board.Delivered)
}

func TestMoveItemRejectsNonColumnTargets(t *testing.T) {
	env := newTestEnv(t)

	order := env.createOrder(OrderItemIn{ProductID: env.Burger.ID, Qty: 1})
	itemID := order.Items[0].ID

	// cancellation is not a board move
	_, err := env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemCancelled)
	assert.ErrorIs(t, err, ErrValidation)

	// no-op moves are rejected
	_, err = env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemPending)
	assert.ErrorIs(t, err, ErrValidation)

	// skipping preparation is not allowed
	_, err = env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemReady)
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestMoveItemRejectsCancelledItems(t *testing.T) {
	env := newTestEnv(t)

	order := env.createOrder(OrderItemIn{ProductID: env.Burger.ID, Qty: 1})
	itemID := order.Items[0].ID
	_, err := env.Orders.SetItemStatus(env.OperatorID, order.ID, itemID, entity.ItemCancelled)
	require.NoError(t, err)

	_, err = env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemPreparing)
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestMoveItemAdvancesOrderWhenLastItemDelivered(t *testing.T) {
	env := newTestEnv(t)
	notifier := &recordingNotifier{}
	env.Dispatch.SetNotifier(notifier)

	order := env.createOrder(
		OrderItemIn{ProductID: env.Burger.ID, Qty: 1},
		OrderItemIn{ProductID: env.Fries.ID, Qty: 1},
	)
	_, err := env.Orders.SetStatus(env.OperatorID, order.ID, entity.OrderSent)
	require.NoError(t, err)

	deliver := func(itemID uint) {
		for _, target := range []entity.ItemStatus{entity.ItemPreparing, entity.ItemReady, entity.ItemDelivered} {
			_, err := env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, target)
			require.NoError(env.t, err)
		}
	}

	deliver(order.Items[0].ID)
	assert.Equal(t, entity.OrderSent, env.reloadOrder(order.ID).Status)

	deliver(order.Items[1].ID)
	assert.Equal(t, entity.OrderDelivered, env.reloadOrder(order.ID).Status)

	require.NotEmpty(t, notifier.events)
	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, "order_delivered", last.Type)
	assert.Equal(t, order.ID, last.OrderID)

	// every move pushed an event
	assert.Len(t, notifier.events, 6)
}

func TestMoveItemSendBackReturnsToPending(t *testing.T) {
	env := newTestEnv(t)

	order := env.createOrder(OrderItemIn{ProductID: env.Burger.ID, Qty: 1})
	itemID := order.Items[0].ID

	_, err := env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemPreparing)
	require.NoError(t, err)

	item, err := env.Dispatch.MoveItem(env.OperatorID, order.ID, itemID, entity.ItemPending)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemPending, item.Status)
	assert.Nil(t, item.StartedAt)
}
