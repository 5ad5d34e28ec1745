package service

import (
	"errors"
	"time"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"
	"pahamkode_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users *repository.UserRepository
	JWT   config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{Users: users, JWT: jwtCfg}
}

type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	Nama             string `json:"nama" binding:"required"`
	TingkatKemahiran string `json:"tingkat_kemahiran"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.Users.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	kemahiran := req.TingkatKemahiran
	switch kemahiran {
	case model.KemahiranPemula, model.KemahiranMenengah, model.KemahiranMahir:
	default:
		kemahiran = model.KemahiranPemula
	}

	user := &model.User{
		Email:            req.Email,
		Password:         string(hashed),
		Nama:             req.Nama,
		Role:             model.RoleMahasiswa,
		TingkatKemahiran: kemahiran,
		Status:           model.StatusAktif,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.Users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.Status == model.StatusSuspended {
		return nil, util.ErrAccountSuspended
	}

	if err := s.Users.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Log.Warn("failed to record last login",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}

	return s.issueToken(user)
}

func (s *AuthService) Profile(userID string) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
