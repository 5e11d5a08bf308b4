package services

import (
	"errors"
	"fmt"
	"time"

	"comandero/entity"
	"comandero/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShiftService struct {
	DB          *gorm.DB
	Repo        *repository.ShiftRepository
	PaymentRepo *repository.PaymentRepository

	locks *Locks
}

func NewShiftService(db *gorm.DB, repo *repository.ShiftRepository, paymentRepo *repository.PaymentRepository, locks *Locks) *ShiftService {
	return &ShiftService{DB: db, Repo: repo, PaymentRepo: paymentRepo, locks: locks}
}

type OpenShiftReq struct {
	RestaurantID uint            `json:"restaurantId" binding:"required"`
	OpeningFloat decimal.Decimal `json:"openingFloat"`
	Notes        string          `json:"notes"`
}

// Open starts a cash session. At most one shift may be open per restaurant.
func (s *ShiftService) Open(operatorID uint, req OpenShiftReq) (*entity.Shift, error) {
	if req.OpeningFloat.IsNegative() {
		return nil, fmt.Errorf("%w: opening float cannot be negative", ErrValidation)
	}

	unlock := s.locks.Acquire(shiftKey(req.RestaurantID))
	defer unlock()

	if _, err := s.Repo.Open(req.RestaurantID); err == nil {
		return nil, ErrShiftAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shift := &entity.Shift{
		OpeningFloat: req.OpeningFloat,
		OpenedAt:     time.Now().UTC(),
		Status:       entity.ShiftOpen,
		Notes:        req.Notes,
		OperatorID:   operatorID,
		RestaurantID: req.RestaurantID,
	}
	if err := s.Repo.Create(s.DB, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

type CloseShiftReq struct {
	ClosingFloat decimal.Decimal `json:"closingFloat"`
	Notes        string          `json:"notes"`
}

// Close ends the session and computes the reconciliation summary from the
// approved payments whose approval time falls inside the shift window.
// Attribution is by timestamp, not by a stored foreign key.
func (s *ShiftService) Close(operatorID, shiftID uint, req CloseShiftReq) (*entity.Shift, error) {
	if req.ClosingFloat.IsNegative() {
		return nil, fmt.Errorf("%w: closing float cannot be negative", ErrValidation)
	}

	shift, err := s.Repo.Get(shiftID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Acquire(shiftKey(shift.RestaurantID))
	defer unlock()

	shift, err = s.Repo.Get(shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != entity.ShiftOpen {
		return nil, fmt.Errorf("%w: shift is already closed", ErrValidation)
	}

	closedAt := time.Now().UTC()
	totals, err := s.PaymentRepo.SumApprovedBetween(shift.RestaurantID, shift.OpenedAt, closedAt)
	if err != nil {
		return nil, err
	}

	cash, card, other := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range totals {
		switch t.Method.Bucket() {
		case "cash":
			cash = cash.Add(t.Total)
		case "card":
			card = card.Add(t.Total)
		default:
			other = other.Add(t.Total)
		}
	}
	sales := cash.Add(card).Add(other)
	variance := req.ClosingFloat.Sub(shift.OpeningFloat).Sub(cash)

	updates := map[string]any{
		"closing_float": req.ClosingFloat,
		"closed_at":     closedAt,
		"sales_total":   sales,
		"cash_total":    cash,
		"card_total":    card,
		"other_total":   other,
		"variance":      variance,
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	rows, err := s.Repo.CloseGuard(s.DB, shift.ID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: shift is already closed", ErrValidation)
	}
	return s.Repo.Get(shiftID)
}

// Current returns the restaurant's open shift.
func (s *ShiftService) Current(restaurantID uint) (*entity.Shift, error) {
	shift, err := s.Repo.Open(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenShift
		}
		return nil, err
	}
	return shift, nil
}

func (s *ShiftService) List(restaurantID uint, limit int) ([]entity.Shift, error) {
	return s.Repo.List(restaurantID, limit)
}
