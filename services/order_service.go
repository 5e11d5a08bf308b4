package services

import (
	"errors"
	"fmt"

	"comandero/entity"
	"comandero/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	TableRepo   *repository.TableRepository
	PaymentRepo *repository.PaymentRepository
	Stock       *StockService

	// Default adjustment rates, percent, captured per order at creation.
	ServiceRate decimal.Decimal
	TaxRate     decimal.Decimal

	locks *Locks
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	tableRepo *repository.TableRepository,
	paymentRepo *repository.PaymentRepository,
	stock *StockService,
	serviceRate, taxRate decimal.Decimal,
	locks *Locks,
) *OrderService {
	return &OrderService{
		DB:          db,
		Repo:        repo,
		ProductRepo: productRepo,
		TableRepo:   tableRepo,
		PaymentRepo: paymentRepo,
		Stock:       stock,
		ServiceRate: serviceRate,
		TaxRate:     taxRate,
		locks:       locks,
	}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	ProductID uint   `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

type CreateOrderReq struct {
	RestaurantID uint            `json:"restaurantId" binding:"required"`
	Channel      string          `json:"channel" binding:"required,oneof=counter takeaway delivery"`
	TableID      *uint           `json:"tableId"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
	Discount     decimal.Decimal `json:"discount"`
	Items        []OrderItemIn   `json:"items"`
}

// ----- Create -----

func (s *OrderService) Create(actorID uint, req *CreateOrderReq) (*entity.Order, error) {
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	}

	var table *entity.Table
	if req.TableID != nil {
		t, err := s.TableRepo.Get(*req.TableID)
		if err != nil {
			return nil, fmt.Errorf("%w: table not found", ErrValidation)
		}
		if t.RestaurantID != req.RestaurantID {
			return nil, fmt.Errorf("%w: table belongs to another restaurant", ErrValidation)
		}
		table = t
	}

	// NextNumber counts the day's orders; without this two concurrent
	// creates would draw the same number and hit the unique index.
	unlock := s.locks.Acquire(orderSeqKey(req.RestaurantID))
	defer unlock()

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := s.Repo.NextNumber(tx, req.RestaurantID)
		if err != nil {
			return err
		}

		order := entity.Order{
			Number:       number,
			Channel:      req.Channel,
			CustomerName: req.CustomerName,
			Notes:        req.Notes,
			Discount:     req.Discount,
			ServiceRate:  s.ServiceRate,
			TaxRate:      s.TaxRate,
			Status:       entity.OrderOpen,
			TableID:      req.TableID,
			CreatedByID:  actorID,
			RestaurantID: req.RestaurantID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		orderID = order.ID

		for _, in := range req.Items {
			if _, err := s.addItemTx(tx, &order, in); err != nil {
				return err
			}
		}
		if err := s.recomputeTotals(tx, &order); err != nil {
			return err
		}

		if table != nil {
			if err := s.TableRepo.SetStatus(tx, table.ID, entity.TableOccupied); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// addItemTx snapshots the product name and price onto the item. The product
// must belong to the order's restaurant and be active.
func (s *OrderService) addItemTx(tx *gorm.DB, order *entity.Order, in OrderItemIn) (*entity.OrderItem, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	product, err := s.ProductRepo.Get(in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrValidation)
		}
		return nil, err
	}
	if product.RestaurantID != order.RestaurantID {
		return nil, fmt.Errorf("%w: product belongs to another restaurant", ErrValidation)
	}
	if !product.Active {
		return nil, fmt.Errorf("%w: product %q is inactive", ErrValidation, product.Name)
	}

	qty := decimal.NewFromInt(int64(in.Qty))
	item := &entity.OrderItem{
		Name:      product.Name,
		UnitPrice: product.Price,
		Qty:       in.Qty,
		Total:     product.Price.Mul(qty).Round(2),
		Status:    entity.ItemPending,
		Notes:     in.Notes,
		OrderID:   order.ID,
		ProductID: product.ID,
	}
	if err := s.Repo.CreateItem(tx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ----- Item mutations -----

func (s *OrderService) AddItem(actorID, orderID uint, in OrderItemIn) (*entity.OrderItem, error) {
	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderOpen && order.Status != entity.OrderSent {
		return nil, ErrOrderNotEditable
	}

	var item *entity.OrderItem
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		item, err = s.addItemTx(tx, order, in)
		if err != nil {
			return err
		}
		return s.recomputeTotals(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) RemoveItem(actorID, orderID, itemID uint) error {
	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderOpen && order.Status != entity.OrderSent {
		return ErrOrderNotEditable
	}

	item, err := s.Repo.GetItem(orderID, itemID)
	if err != nil {
		return err
	}
	if item.Status != entity.ItemPending {
		return ErrItemInPreparation
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteItem(tx, item.ID); err != nil {
			return err
		}
		if err := s.recomputeTotals(tx, order); err != nil {
			return err
		}
		return s.guardApprovedPayments(tx, order.ID)
	})
}

func (s *OrderService) SetDiscount(actorID, orderID uint, discount decimal.Decimal) (*entity.Order, error) {
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	}

	unlock := s.locks.Acquire(orderKey(orderID))
	defer unlock()

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderOpen && order.Status != entity.OrderSent {
		return nil, ErrOrderNotEditable
	}

	order.Discount = discount
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.recomputeTotals(tx, order); err != nil {
			return err
		}
		return s.guardApprovedPayments(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// recomputeTotals derives subtotal and total from the order's current items.
// Cancelled items are not charged. Totals are never written by callers.
func (s *OrderService) recomputeTotals(tx *gorm.DB, order *entity.Order) error {
	var items []entity.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}

	subtotal := decimal.Zero
	for _, it := range items {
		if it.Status == entity.ItemCancelled {
			continue
		}
		subtotal = subtotal.Add(it.Total)
	}

	hundred := decimal.NewFromInt(100)
	service := subtotal.Mul(order.ServiceRate).Div(hundred).Round(2)
	tax := subtotal.Mul(order.TaxRate).Div(hundred).Round(2)
	total := subtotal.Add(service).Add(tax).Sub(order.Discount)

	order.Subtotal = subtotal
	order.ServiceCharge = service
	order.Tax = tax
	order.Total = total
	return s.Repo.UpdateTotals(tx, order.ID, subtotal, service, tax, order.Discount, total)
}

// ----- Queries -----

// guardApprovedPayments rejects a totals change that would leave the order
// worth less than the money already approved against it. Runs inside the
// mutating transaction, after recomputeTotals; the caller holds the order
// lock.
func (s *OrderService) guardApprovedPayments(tx *gorm.DB, orderID uint) error {
	approved, err := s.PaymentRepo.SumApproved(tx, orderID)
	if err != nil {
		return err
	}
	if !approved.IsPositive() {
		return nil
	}
	var row struct {
		Total decimal.Decimal
	}
	err = tx.Model(&entity.Order{}).Select("total").
		Where("id = ?", orderID).Scan(&row).Error
	if err != nil {
		return err
	}
	if row.Total.LessThan(approved) {
		return ErrBelowApprovedPayments
	}
	return nil
}

func (s *OrderService) Detail(orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrderWithItems(orderID)
}

func (s *OrderService) ListForRestaurant(restaurantID uint, status entity.OrderStatus, limit int) ([]repository.OrderSummary, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListForRestaurant(restaurantID, status, limit)
}
