package controller

import (
	"errors"
	"strconv"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/service"
	"pahamkode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// List godoc
// @Summary Daftar sumber daya belajar
// @Tags Konten
// @Produce json
// @Security BearerAuth
// @Param page query int false "Halaman" default(1)
// @Param limit query int false "Jumlah per halaman" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/resources [get]
func (c *ContentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	resources, total, err := c.ContentService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: resources, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Detail sumber daya
// @Tags Konten
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID sumber daya"
// @Success 200 {object} util.Response{data=model.LearningResource}
// @Failure 404 {object} util.Response
// @Router /api/resources/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	res, err := c.ContentService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, res)
}

// Create godoc
// @Summary Tambah sumber daya belajar
// @Tags Konten
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.LearningResource true "Data sumber daya"
// @Success 201 {object} util.Response{data=model.LearningResource}
// @Router /api/admin/resources [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var res model.LearningResource
	if err := ctx.ShouldBindJSON(&res); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if res.Judul == "" || res.Tipe == "" {
		util.BadRequest(ctx, "judul dan tipe wajib diisi")
		return
	}

	if err := c.ContentService.Create(&res); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// Update godoc
// @Summary Perbarui sumber daya belajar
// @Tags Konten
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID sumber daya"
// @Param body body model.LearningResource true "Data sumber daya"
// @Success 200 {object} util.Response{data=model.LearningResource}
// @Failure 404 {object} util.Response
// @Router /api/admin/resources/{id} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	var res model.LearningResource
	if err := ctx.ShouldBindJSON(&res); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.Update(ctx.Param("id"), &res); err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, res)
}

// Delete godoc
// @Summary Hapus sumber daya belajar
// @Tags Konten
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID sumber daya"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/resources/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	if err := c.ContentService.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
