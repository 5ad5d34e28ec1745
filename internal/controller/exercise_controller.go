package controller

import (
	"errors"
	"strconv"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// List godoc
// @Summary Daftar latihan
// @Tags Latihan
// @Produce json
// @Security BearerAuth
// @Param topik query string false "Filter topik"
// @Param kesulitan query string false "pemula, menengah, atau mahir"
// @Param page query int false "Halaman" default(1)
// @Param limit query int false "Jumlah per halaman" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	exercises, total, err := c.ExerciseService.List(ctx.Query("topik"), ctx.Query("kesulitan"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: exercises, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Detail latihan
// @Tags Latihan
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID latihan"
// @Success 200 {object} util.Response{data=model.Exercise}
// @Failure 404 {object} util.Response
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	ex, err := c.ExerciseService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ex)
}

// Recommended godoc
// @Summary Latihan yang direkomendasikan
// @Description Latihan untuk topik terlemah mahasiswa saat ini
// @Tags Latihan
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimum" default(5)
// @Success 200 {object} util.Response{data=[]model.Exercise}
// @Router /api/exercises/rekomendasi [get]
func (c *ExerciseController) Recommended(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	exercises, err := c.ExerciseService.Recommended(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// Submit godoc
// @Summary Kumpulkan jawaban latihan
// @Tags Latihan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID latihan"
// @Param body body service.ExerciseSubmitRequest true "Kode jawaban"
// @Success 201 {object} util.Response{data=model.ExerciseSubmission}
// @Failure 404 {object} util.Response
// @Router /api/exercises/{id}/submit [post]
func (c *ExerciseController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExerciseSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.ExerciseService.Submit(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, sub)
}

// SubmissionHistory godoc
// @Summary Riwayat jawaban latihan mahasiswa
// @Tags Latihan
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Jumlah maksimum" default(20)
// @Success 200 {object} util.Response{data=[]model.ExerciseSubmission}
// @Router /api/exercises/riwayat [get]
func (c *ExerciseController) SubmissionHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	subs, err := c.ExerciseService.SubmissionHistory(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// Create godoc
// @Summary Buat latihan baru
// @Tags Latihan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Exercise true "Data latihan"
// @Success 201 {object} util.Response{data=model.Exercise}
// @Router /api/admin/exercises [post]
func (c *ExerciseController) Create(ctx *gin.Context) {
	var ex model.Exercise
	if err := ctx.ShouldBindJSON(&ex); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if ex.Judul == "" || ex.Topik == "" {
		util.BadRequest(ctx, "judul dan topik wajib diisi")
		return
	}

	if err := c.ExerciseService.Create(&ex); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, ex)
}

// Update godoc
// @Summary Perbarui latihan
// @Tags Latihan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID latihan"
// @Param body body model.Exercise true "Data latihan"
// @Success 200 {object} util.Response{data=model.Exercise}
// @Failure 404 {object} util.Response
// @Router /api/admin/exercises/{id} [put]
func (c *ExerciseController) Update(ctx *gin.Context) {
	var ex model.Exercise
	if err := ctx.ShouldBindJSON(&ex); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExerciseService.Update(ctx.Param("id"), &ex); err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ex)
}

// Delete godoc
// @Summary Hapus latihan
// @Tags Latihan
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID latihan"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/exercises/{id} [delete]
func (c *ExerciseController) Delete(ctx *gin.Context) {
	if err := c.ExerciseService.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
