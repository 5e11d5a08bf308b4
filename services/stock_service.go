package services

import (
	"fmt"
	"sort"
	"strings"

	"comandero/entity"
	"comandero/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockService struct {
	DB          *gorm.DB
	Repo        *repository.StockRepository
	ProductRepo *repository.ProductRepository

	locks *Locks
}

func NewStockService(db *gorm.DB, repo *repository.StockRepository, productRepo *repository.ProductRepository, locks *Locks) *StockService {
	return &StockService{DB: db, Repo: repo, ProductRepo: productRepo, locks: locks}
}

type RecordMovementReq struct {
	ProductID uint                `json:"productId" binding:"required"`
	Kind      entity.MovementKind `json:"kind" binding:"required"`
	Quantity  decimal.Decimal     `json:"quantity" binding:"required"`
	UnitValue decimal.Decimal     `json:"unitValue"`
	Reason    string              `json:"reason" binding:"required"`
	Reference string              `json:"reference"`
}

// RecordMovement appends one ledger entry and refreshes the cached balance
// atomically. An outbound or adjustment that would drive the balance
// negative is rejected, not clamped.
func (s *StockService) RecordMovement(actorID uint, req RecordMovementReq) (*entity.StockMovement, error) {
	return s.recordMovement(actorID, req, uuid.New())
}

func (s *StockService) recordMovement(actorID uint, req RecordMovementReq, batchID uuid.UUID) (*entity.StockMovement, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown movement kind %q", ErrValidation, req.Kind)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	// adjustments carry their own sign; every other kind takes a positive
	// magnitude and gets the direction from the kind
	if req.Kind == entity.MovementAdjustment {
		if req.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: quantity must be non-zero", ErrValidation)
		}
	} else if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	unlock := s.locks.Acquire(productKey(req.ProductID))
	defer unlock()

	product, err := s.ProductRepo.Get(req.ProductID)
	if err != nil {
		return nil, err
	}

	signed := req.Quantity
	if req.Kind.Sign() < 0 {
		signed = req.Quantity.Neg()
	}

	newBalance := product.Stock.Add(signed)
	if newBalance.IsNegative() &&
		(req.Kind == entity.MovementOutbound || req.Kind == entity.MovementAdjustment) {
		return nil, fmt.Errorf("%w: product %d has %s, requested %s",
			ErrInsufficientStock, product.ID, product.Stock, req.Quantity)
	}

	movement := &entity.StockMovement{
		Kind:          req.Kind,
		Quantity:      signed,
		UnitValue:     req.UnitValue,
		Reason:        req.Reason,
		Reference:     req.Reference,
		BalanceBefore: product.Stock,
		BalanceAfter:  newBalance,
		BatchID:       batchID,
		ProductID:     product.ID,
		ActorID:       actorID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Append(tx, movement); err != nil {
			return err
		}
		if err := s.ProductRepo.UpdateStock(tx, product.ID, newBalance); err != nil {
			return err
		}
		if req.Kind == entity.MovementInbound && req.UnitValue.IsPositive() {
			if err := s.ProductRepo.UpdateCost(tx, product.ID, req.UnitValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

type DeductionLine struct {
	ProductID uint
	Quantity  decimal.Decimal
}

// DeductBatch writes the outbound movements of one order settlement
// all-or-nothing: either every line fits the current balances and all
// movements land under one batch id, or nothing is written. Product locks
// are taken in id order.
func (s *StockService) DeductBatch(actorID uint, reference string, batchID uuid.UUID, lines []DeductionLine) error {
	sorted := make([]DeductionLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, line := range sorted {
		unlock := s.locks.Acquire(productKey(line.ProductID))
		defer unlock()
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range sorted {
			var product entity.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}

			newBalance := product.Stock.Sub(line.Quantity)
			if newBalance.IsNegative() {
				return fmt.Errorf("%w: product %d has %s, needed %s",
					ErrInsufficientStock, product.ID, product.Stock, line.Quantity)
			}

			movement := &entity.StockMovement{
				Kind:          entity.MovementOutbound,
				Quantity:      line.Quantity.Neg(),
				UnitValue:     product.Cost,
				Reason:        "order settlement",
				Reference:     reference,
				BalanceBefore: product.Stock,
				BalanceAfter:  newBalance,
				BatchID:       batchID,
				ProductID:     product.ID,
				ActorID:       actorID,
			}
			if err := s.Repo.Append(tx, movement); err != nil {
				return err
			}
			if err := s.ProductRepo.UpdateStock(tx, product.ID, newBalance); err != nil {
				return err
			}
		}
		return nil
	})
}

type Balance struct {
	ProductID uint            `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Valuation decimal.Decimal `json:"valuation"`
}

// CurrentBalance reads the cached balance; valuation is balance times the
// latest known unit cost.
func (s *StockService) CurrentBalance(productID uint) (*Balance, error) {
	product, err := s.ProductRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	return &Balance{
		ProductID: product.ID,
		Quantity:  product.Stock,
		Valuation: product.Stock.Mul(product.Cost).Round(2),
	}, nil
}

// History returns the product's movements, newest first.
func (s *StockService) History(productID uint, limit int) ([]entity.StockMovement, error) {
	return s.Repo.History(productID, limit)
}
