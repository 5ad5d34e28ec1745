package controller

import (
	"errors"
	"strconv"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// Statistik godoc
// @Summary Statistik dashboard admin
// @Description Ringkasan kohort: jumlah mahasiswa, volume analisis, kesalahan teratas
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardStatistik}
// @Router /api/admin/statistik [get]
func (c *AdminController) Statistik(ctx *gin.Context) {
	stat, err := c.AdminService.GetDashboardStatistik(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stat)
}

// PolaGlobal godoc
// @Summary Pola kesalahan lintas mahasiswa
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimum" default(20)
// @Success 200 {object} util.Response{data=[]service.GlobalPattern}
// @Router /api/admin/pola-global [get]
func (c *AdminController) PolaGlobal(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	patterns, err := c.AdminService.GetGlobalPatterns(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, patterns)
}

// Tren godoc
// @Summary Tren aktivitas harian
// @Description Jumlah analisis dan mahasiswa aktif per hari, hari tertua dulu
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param hari query int false "Jumlah hari ke belakang" default(7)
// @Success 200 {object} util.Response{data=[]service.DailyTrend}
// @Router /api/admin/analytics/tren [get]
func (c *AdminController) Tren(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("hari", "7"))

	trend, err := c.AdminService.GetAnalyticsTrend(days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trend)
}

// TopikSulit godoc
// @Summary Topik tersulit kohort
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimum" default(10)
// @Success 200 {object} util.Response{data=[]service.TopikSulit}
// @Router /api/admin/topik-sulit [get]
func (c *AdminController) TopikSulit(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	topics, err := c.AdminService.GetTopikSulit(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// RekomendasiKurikulum godoc
// @Summary Rekomendasi penyesuaian kurikulum
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.RekomendasiKurikulum}
// @Router /api/admin/rekomendasi-kurikulum [get]
func (c *AdminController) RekomendasiKurikulum(ctx *gin.Context) {
	rec, err := c.AdminService.GetRekomendasiKurikulum()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// ListMahasiswa godoc
// @Summary Daftar mahasiswa
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Halaman" default(1)
// @Param limit query int false "Jumlah per halaman" default(20)
// @Param q query string false "Cari nama atau email"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/mahasiswa [get]
func (c *AdminController) ListMahasiswa(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.AdminService.ListMahasiswa(page, limit, ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// DetailMahasiswa godoc
// @Summary Detail satu mahasiswa
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID mahasiswa"
// @Success 200 {object} util.Response{data=service.MahasiswaDetail}
// @Failure 404 {object} util.Response
// @Router /api/admin/mahasiswa/{id} [get]
func (c *AdminController) DetailMahasiswa(ctx *gin.Context) {
	detail, err := c.AdminService.DetailMahasiswa(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatusMahasiswa godoc
// @Summary Ubah status akun mahasiswa
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID mahasiswa"
// @Param body body UpdateStatusRequest true "Status baru: aktif atau suspended"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Status tidak dikenal"
// @Failure 404 {object} util.Response
// @Router /api/admin/mahasiswa/{id}/status [put]
func (c *AdminController) UpdateStatusMahasiswa(ctx *gin.Context) {
	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AdminService.UpdateMahasiswaStatus(ctx.Param("id"), model.UserStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidStatus):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"status": req.Status})
}

type BulkActionRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Action string   `json:"action" binding:"required"`
}

// BulkActionMahasiswa godoc
// @Summary Aksi massal pada mahasiswa
// @Description Aksi yang dikenal: suspend, aktifkan, hapus
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkActionRequest true "Daftar ID dan aksi"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Aksi tidak dikenal"
// @Router /api/admin/mahasiswa/bulk [post]
func (c *AdminController) BulkActionMahasiswa(ctx *gin.Context) {
	var req BulkActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	affected, err := c.AdminService.BulkAction(req.IDs, req.Action)
	if err != nil {
		if errors.Is(err, util.ErrInvalidBulkAction) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"affected": affected})
}

// MetrikAI godoc
// @Summary Ringkasan pemakaian layanan klasifikasi AI
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=repository.AIMetricSummary}
// @Router /api/admin/metrik-ai [get]
func (c *AdminController) MetrikAI(ctx *gin.Context) {
	summary, err := c.AdminService.GetMetrikAI()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// SystemHealth godoc
// @Summary Kesehatan sistem
// @Description Status database, Redis, dan beban API 24 jam terakhir
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.SystemHealth}
// @Router /api/admin/system-health [get]
func (c *AdminController) SystemHealth(ctx *gin.Context) {
	util.Success(ctx, c.AdminService.GetSystemHealth(ctx.Request.Context()))
}
