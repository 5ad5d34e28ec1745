package service

import (
	"testing"
	"time"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), config.JWTConfig{
		Secret:     "rahasia-uji-yang-cukup-panjang-untuk-jwt",
		ExpireTime: time.Hour,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(RegisterRequest{
		Email:    "daftar@uji.id",
		Password: "rahasia123",
		Nama:     "Mahasiswa Baru",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleMahasiswa, resp.User.Role)
	assert.Equal(t, model.KemahiranPemula, resp.User.TingkatKemahiran)

	login, err := svc.Login(LoginRequest{Email: "daftar@uji.id", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	claims, err := util.ParseJWT(login.Token, "rahasia-uji-yang-cukup-panjang-untuk-jwt")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	req := RegisterRequest{Email: "dobel@uji.id", Password: "rahasia123", Nama: "Pertama"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterRequest{Email: "salah@uji.id", Password: "rahasia123", Nama: "Uji"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "salah@uji.id", Password: "bukan-ini"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "tidakada@uji.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginSuspendedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	users := repository.NewUserRepository(db)

	resp, err := svc.Register(RegisterRequest{Email: "suspend@uji.id", Password: "rahasia123", Nama: "Uji"})
	require.NoError(t, err)
	require.NoError(t, users.UpdateStatus(resp.User.ID, model.StatusSuspended))

	_, err = svc.Login(LoginRequest{Email: "suspend@uji.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, util.ErrAccountSuspended)
}

func TestRegisterInvalidKemahiranFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(RegisterRequest{
		Email:            "mahir@uji.id",
		Password:         "rahasia123",
		Nama:             "Uji",
		TingkatKemahiran: "dewa",
	})
	require.NoError(t, err)
	assert.Equal(t, model.KemahiranPemula, resp.User.TingkatKemahiran)
}
