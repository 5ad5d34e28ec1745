package controller

import (
	"errors"
	"strconv"

	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	AnalysisService *service.AnalysisService
}

func NewAnalysisController(analysisService *service.AnalysisService) *AnalysisController {
	return &AnalysisController{AnalysisService: analysisService}
}

// Analyze godoc
// @Summary Analisis error kode
// @Description Mengklasifikasikan error, menyimpan submisi, dan mendeteksi pola berulang
// @Tags Analisis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AnalyzeRequest true "Kode dan pesan error"
// @Success 200 {object} util.Response{data=service.AnalysisResponse}
// @Failure 400 {object} util.Response "Parameter tidak valid"
// @Failure 502 {object} util.Response "Layanan klasifikasi gagal"
// @Router /api/analyze [post]
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AnalysisService.Analyze(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrClassificationFailed) {
			util.BadGateway(ctx, util.ErrClassificationFailed.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// History godoc
// @Summary Riwayat analisis
// @Description Daftar submisi mahasiswa, terbaru dulu
// @Tags Analisis
// @Produce json
// @Security BearerAuth
// @Param page query int false "Halaman" default(1)
// @Param limit query int false "Jumlah per halaman" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/history [get]
func (c *AnalysisController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	subs, total, err := c.AnalysisService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: subs, Total: total, Page: page, Limit: limit})
}

// Detail godoc
// @Summary Detail satu submisi
// @Tags Analisis
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID submisi"
// @Success 200 {object} util.Response{data=model.ErrorSubmission}
// @Failure 404 {object} util.Response
// @Router /api/history/{id} [get]
func (c *AnalysisController) Detail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.AnalysisService.Detail(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sub)
}
