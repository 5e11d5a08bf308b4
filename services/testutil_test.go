package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"comandero/entity"
	"comandero/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type testEnv struct {
	t  *testing.T
	db *gorm.DB

	Orders   *OrderService
	Stock    *StockService
	Payments *PaymentService
	Shifts   *ShiftService
	Dispatch *DispatchService

	RestaurantID uint
	OperatorID   uint
	TableID      uint

	Burger entity.Product // tracked, 10.00
	Fries  entity.Product // tracked, 5.00
	Soda   entity.Product // untracked, 2.50
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Restaurant{},
		&entity.User{},
		&entity.Table{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.StockMovement{},
		&entity.Payment{},
		&entity.Shift{},
	))

	restaurant := entity.Restaurant{Name: "Test Kitchen"}
	require.NoError(t, db.Create(&restaurant).Error)

	operator := entity.User{
		FirstName:    "Casey",
		LastName:     "Ramos",
		Email:        "cashier@test.local",
		Password:     "irrelevant",
		Role:         "cashier",
		RestaurantID: restaurant.ID,
	}
	require.NoError(t, db.Create(&operator).Error)

	table := entity.Table{Number: 1, Seats: 4, Status: entity.TableFree, RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&table).Error)

	burger := entity.Product{
		Name: "House Burger", Category: "mains",
		Price: dec("10.00"), TrackStock: true, Active: true,
		RestaurantID: restaurant.ID,
	}
	fries := entity.Product{
		Name: "Fries", Category: "sides",
		Price: dec("5.00"), TrackStock: true, Active: true,
		RestaurantID: restaurant.ID,
	}
	soda := entity.Product{
		Name: "Soda", Category: "drinks",
		Price: dec("2.50"), TrackStock: false, Active: true,
		RestaurantID: restaurant.ID,
	}
	require.NoError(t, db.Create(&burger).Error)
	require.NoError(t, db.Create(&fries).Error)
	require.NoError(t, db.Create(&soda).Error)

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	stockRepo := repository.NewStockRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	locks := NewLocks()
	stockSvc := NewStockService(db, stockRepo, productRepo, locks)
	orderSvc := NewOrderService(db, orderRepo, productRepo, tableRepo, paymentRepo,
		stockSvc, dec("0"), dec("16"), locks)
	paymentSvc := NewPaymentService(db, paymentRepo, orderSvc)
	shiftSvc := NewShiftService(db, shiftRepo, paymentRepo, locks)
	dispatchSvc := NewDispatchService(orderSvc)

	return &testEnv{
		t:            t,
		db:           db,
		Orders:       orderSvc,
		Stock:        stockSvc,
		Payments:     paymentSvc,
		Shifts:       shiftSvc,
		Dispatch:     dispatchSvc,
		RestaurantID: restaurant.ID,
		OperatorID:   operator.ID,
		TableID:      table.ID,
		Burger:       burger,
		Fries:        fries,
		Soda:         soda,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// receiveStock books an inbound delivery so settlement tests have something
// to deduct.
func (e *testEnv) receiveStock(productID uint, qty, unitValue string) {
	e.t.Helper()
	_, err := e.Stock.RecordMovement(e.OperatorID, RecordMovementReq{
		ProductID: productID,
		Kind:      entity.MovementInbound,
		Quantity:  dec(qty),
		UnitValue: dec(unitValue),
		Reason:    "delivery",
	})
	require.NoError(e.t, err)
}

func (e *testEnv) createOrder(items ...OrderItemIn) *entity.Order {
	e.t.Helper()
	order, err := e.Orders.Create(e.OperatorID, &CreateOrderReq{
		RestaurantID: e.RestaurantID,
		Channel:      entity.ChannelCounter,
		Items:        items,
	})
	require.NoError(e.t, err)
	return order
}

func (e *testEnv) reloadOrder(orderID uint) *entity.Order {
	e.t.Helper()
	order, err := e.Orders.Repo.GetOrderWithItems(orderID)
	require.NoError(e.t, err)
	return order
}

func (e *testEnv) reloadTable(tableID uint) *entity.Table {
	e.t.Helper()
	var table entity.Table
	require.NoError(e.t, e.db.First(&table, tableID).Error)
	return &table
}

// payCash settles the order in full with an auto-approved cash payment.
func (e *testEnv) payCash(orderID uint, amount string) *entity.Payment {
	e.t.Helper()
	p, err := e.Payments.Apply(e.OperatorID, orderID, ApplyPaymentReq{
		Amount: dec(amount),
		Method: entity.MethodCash,
	})
	require.NoError(e.t, err)
	return p
}
