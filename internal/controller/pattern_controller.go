package controller

import (
	"strconv"

	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PatternController struct {
	PatternService *service.PatternService
}

func NewPatternController(patternService *service.PatternService) *PatternController {
	return &PatternController{PatternService: patternService}
}

// List godoc
// @Summary Pola error berulang
// @Description Pola kesalahan mahasiswa yang sudah melewati ambang pengulangan, terurut frekuensi menurun
// @Tags Pola
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimum" default(10)
// @Success 200 {object} util.Response{data=[]model.ErrorPattern}
// @Router /api/patterns [get]
func (c *PatternController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	patterns, err := c.PatternService.GetPatterns(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, patterns)
}

// Trend godoc
// @Summary Tren kesalahan mahasiswa
// @Description Ringkasan total submisi, jumlah pola unik, dan kesalahan paling sering
// @Tags Pola
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PatternTrendSummary}
// @Router /api/patterns/tren [get]
func (c *PatternController) Trend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	trend, err := c.PatternService.GetTrend(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trend)
}
