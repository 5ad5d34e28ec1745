package controller

import (
	"errors"

	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Registrasi mahasiswa baru
// @Description Mendaftarkan akun mahasiswa dengan email dan password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "Data registrasi"
// @Success 201 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response "Parameter tidak valid"
// @Failure 409 {object} util.Response "Email sudah terdaftar"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, resp)
}

// Login godoc
// @Summary Login
// @Description Menukar kredensial dengan token JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Kredensial"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 401 {object} util.Response "Kredensial salah"
// @Failure 403 {object} util.Response "Akun disuspend"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, err.Error())
		case errors.Is(err, util.ErrAccountSuspended):
			util.Error(ctx, 403, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Profile godoc
// @Summary Profil pengguna saat ini
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.Profile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
