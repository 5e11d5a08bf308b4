package repository

import (
	"fmt"
	"time"

	"comandero/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) GetItem(orderID, itemID uint) (*entity.OrderItem, error) {
	var it entity.OrderItem
	if err := r.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, it *entity.OrderItem) error {
	return tx.Create(it).Error
}

func (r *OrderRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	return tx.Delete(&entity.OrderItem{}, itemID).Error
}

// UpdateItemStatus is a compare-and-swap on the item status; extra columns
// (timestamps) ride along in updates. Returns rows affected so the caller
// can detect a concurrent transition.
func (r *OrderRepository) UpdateItemStatus(tx *gorm.DB, itemID uint, from, to entity.ItemStatus, updates map[string]any) (int64, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	res := tx.Model(&entity.OrderItem{}).
		Where("id = ? AND status = ?", itemID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateStatusIn swaps the order status if the current one is in from.
func (r *OrderRepository) UpdateStatusIn(tx *gorm.DB, orderID uint, from []entity.OrderStatus, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateStatusGuard swaps the order status only if it still equals from.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdateTotals(tx *gorm.DB, orderID uint, subtotal, service, tax, discount, total decimal.Decimal) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"subtotal":       subtotal,
		"service_charge": service,
		"tax":            tax,
		"discount":       discount,
		"total":          total,
	}).Error
}

func (r *OrderRepository) SetDeductionFlags(tx *gorm.DB, orderID uint, deducted, pending bool) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"stock_deducted":          deducted,
		"stock_deduction_pending": pending,
	}).Error
}

// NextNumber builds the day's sequential order number for a restaurant,
// e.g. ORD-20260828-003. Must run inside the creating transaction.
func (r *OrderRepository) NextNumber(tx *gorm.DB, restaurantID uint) (string, error) {
	day := time.Now().UTC().Format("20060102")
	var count int64
	err := tx.Model(&entity.Order{}).
		Where("restaurant_id = ? AND number LIKE ?", restaurantID, "ORD-"+day+"-%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", day, count+1), nil
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	Number       string             `json:"number"`
	Channel      string             `json:"channel"`
	Total        decimal.Decimal    `json:"total"`
	Status       entity.OrderStatus `json:"status"`
	TableID      *uint              `json:"tableId,omitempty"`
	CustomerName string             `json:"customerName"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListForRestaurant(restaurantID uint, status entity.OrderStatus, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Model(&entity.Order{}).
		Select("id, number, channel, total, status, table_id, customer_name, created_at").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []OrderSummary
	err := q.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// ActiveOrders returns non-terminal orders with their items, oldest first.
// This is the raw feed of the dispatch board.
func (r *OrderRepository) ActiveOrders(restaurantID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Preload("Items").
		Where("restaurant_id = ? AND status NOT IN ?", restaurantID,
			[]entity.OrderStatus{entity.OrderPaid, entity.OrderCancelled}).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}
