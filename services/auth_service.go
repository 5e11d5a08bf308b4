package services

import (
	"errors"
	"fmt"

	"comandero/configs"
	"comandero/entity"
	"comandero/repository"

	"comandero/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo *repository.UserRepository
	Cfg  *configs.Config
}

func NewAuthService(repo *repository.UserRepository, cfg *configs.Config) *AuthService {
	return &AuthService{Repo: repo, Cfg: cfg}
}

type RegisterReq struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=admin cashier kitchen waiter"`
	RestaurantID uint   `json:"restaurantId" binding:"required"`
}

func (s *AuthService) Register(req *RegisterReq) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hash),
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginRes struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (s *AuthService) Login(email, password string) (*LoginRes, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.Cfg.JWTSecret, s.Cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	return &LoginRes{Token: token, User: user}, nil
}
