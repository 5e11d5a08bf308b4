package services

import (
	"testing"

	"comandero/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMovementKeepsLedgerAndCacheInSync(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "10", "4.00")

	_, err := env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementOutbound,
		Quantity:  dec("4"),
		Reason:    "manual sale",
	})
	require.NoError(t, err)

	_, err = env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementLoss,
		Quantity:  dec("1"),
		Reason:    "dropped tray",
	})
	require.NoError(t, err)

	balance, err := env.Stock.CurrentBalance(env.Burger.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(dec("5")), "balance %s", balance.Quantity)
	// valuation = balance x latest unit cost
	assert.True(t, balance.Valuation.Equal(dec("20.00")), "valuation %s", balance.Valuation)

	// the cached balance must equal the signed sum of the ledger
	sum, err := env.Stock.Repo.SumQuantities(env.Burger.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(balance.Quantity))
}

func TestInboundRefreshesUnitCost(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Fries.ID, "10", "1.20")
	env.receiveStock(env.Fries.ID, "10", "1.50")

	balance, err := env.Stock.CurrentBalance(env.Fries.ID)
	require.NoError(t, err)
	assert.True(t, balance.Valuation.Equal(dec("30.00")), "valuation %s", balance.Valuation)
}

func TestOutboundCannotOverdraw(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "3", "4.00")

	_, err := env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementOutbound,
		Quantity:  dec("5"),
		Reason:    "manual sale",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// rejected, not clamped: balance and ledger untouched
	balance, err := env.Stock.CurrentBalance(env.Burger.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(dec("3")))

	history, err := env.Stock.History(env.Burger.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAdjustmentCarriesItsOwnSign(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "10", "4.00")

	// a count correction can shrink the balance
	m, err := env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementAdjustment,
		Quantity:  dec("-3"),
		Reason:    "count correction",
	})
	require.NoError(t, err)
	assert.True(t, m.Quantity.Equal(dec("-3")))
	assert.True(t, m.BalanceAfter.Equal(dec("7")))

	// but never below zero
	_, err = env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementAdjustment,
		Quantity:  dec("-8"),
		Reason:    "count correction",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	_, err = env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementAdjustment,
		Quantity:  dec("0"),
		Reason:    "count correction",
	})
	require.ErrorIs(t, err, ErrValidation)

	balance, err := env.Stock.CurrentBalance(env.Burger.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(dec("7")))
}

func TestRecordMovementValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []RecordMovementReq{
		{ProductID: env.Burger.ID, Kind: "teleport", Quantity: dec("1"), Reason: "x"},
		{ProductID: env.Burger.ID, Kind: entity.MovementInbound, Quantity: dec("1"), Reason: "  "},
		{ProductID: env.Burger.ID, Kind: entity.MovementInbound, Quantity: dec("0"), Reason: "x"},
		{ProductID: env.Burger.ID, Kind: entity.MovementInbound, Quantity: dec("-2"), Reason: "x"},
	}
	for _, req := range cases {
		_, err := env.Stock.RecordMovement(env.OperatorID, req)
		assert.ErrorIs(t, err, ErrValidation, "req %+v", req)
	}
}

func TestDeductBatchIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "5", "4.00")
	env.receiveStock(env.Fries.ID, "1", "1.20")

	err := env.Stock.DeductBatch(env.OperatorID, "ORD-TEST", uuid.New(), []DeductionLine{
		{ProductID: env.Burger.ID, Quantity: dec("2")},
		{ProductID: env.Fries.ID, Quantity: dec("3")}, // short
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	burger, err := env.Stock.CurrentBalance(env.Burger.ID)
	require.NoError(t, err)
	assert.True(t, burger.Quantity.Equal(dec("5")), "burger balance moved: %s", burger.Quantity)

	fries, err := env.Stock.CurrentBalance(env.Fries.ID)
	require.NoError(t, err)
	assert.True(t, fries.Quantity.Equal(dec("1")))
}

func TestDeductBatchSharesOneBatchID(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "5", "4.00")
	env.receiveStock(env.Fries.ID, "5", "1.20")

	batchID := uuid.New()
	err := env.Stock.DeductBatch(env.OperatorID, "ORD-TEST", batchID, []DeductionLine{
		{ProductID: env.Burger.ID, Quantity: dec("2")},
		{ProductID: env.Fries.ID, Quantity: dec("1")},
	})
	require.NoError(t, err)

	var movements []entity.StockMovement
	require.NoError(t, env.db.Where("batch_id = ?", batchID).Find(&movements).Error)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, entity.MovementOutbound, m.Kind)
		assert.Equal(t, "ORD-TEST", m.Reference)
		assert.True(t, m.Quantity.IsNegative())
	}
}

func TestHistoryIsNewestFirstWithBalanceSnapshots(t *testing.T) {
	env := newTestEnv(t)

	env.receiveStock(env.Burger.ID, "10", "4.00")
	_, err := env.Stock.RecordMovement(env.OperatorID, RecordMovementReq{
		ProductID: env.Burger.ID,
		Kind:      entity.MovementOutbound,
		Quantity:  dec("3"),
		Reason:    "manual sale",
	})
	require.NoError(t, err)

	history, err := env.Stock.History(env.Burger.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	latest := history[0]
	assert.Equal(t, entity.MovementOutbound, latest.Kind)
	assert.True(t, latest.BalanceBefore.Equal(dec("10")))
	assert.True(t, latest.BalanceAfter.Equal(dec("7")))
}
