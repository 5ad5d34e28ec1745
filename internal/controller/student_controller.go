package controller

import (
	"fmt"
	"time"

	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// Dashboard godoc
// @Summary Dashboard mahasiswa
// @Description Ringkasan kemajuan: total analisis, rata-rata penguasaan, tren, dan rekomendasi belajar
// @Tags Mahasiswa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/mahasiswa/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dash, err := c.StudentService.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// Progress godoc
// @Summary Penguasaan per topik
// @Tags Mahasiswa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TopicProgress}
// @Router /api/mahasiswa/progress [get]
func (c *StudentController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.StudentService.GetProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Resources godoc
// @Summary Rekomendasi sumber daya belajar
// @Description Materi untuk topik dengan penguasaan rendah; tanpa topik lemah, materi pemula
// @Tags Mahasiswa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ResourceRecommendation}
// @Router /api/mahasiswa/sumber-daya [get]
func (c *StudentController) Resources(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rec, err := c.StudentService.GetResourceRecommendations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// ExportCSV godoc
// @Summary Export riwayat analisis sebagai CSV
// @Tags Mahasiswa
// @Produce text/csv
// @Security BearerAuth
// @Param periode query string false "minggu_ini, bulan_ini, atau semua" default(semua)
// @Success 200 {string} string "File CSV"
// @Router /api/mahasiswa/export/csv [get]
func (c *StudentController) ExportCSV(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	periode := ctx.DefaultQuery("periode", util.PeriodeSemua)
	switch periode {
	case util.PeriodeMingguIni, util.PeriodeBulanIni, util.PeriodeSemua:
	default:
		util.BadRequest(ctx, "periode tidak dikenal")
		return
	}

	data, err := c.StudentService.ExportCSV(claims.UserID, periode)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("laporan_analisis_%s.csv", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Data(200, "text/csv; charset=utf-8", data)
}
