package app

import (
	"pahamkode_backend/docs"
	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/middleware"
	"pahamkode_backend/internal/model"
	"pahamkode_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Profile)

	// Analisis error
	rg.POST("/analyze", c.analysis.Analyze)
	rg.GET("/history", c.analysis.History)
	rg.GET("/history/:id", c.analysis.Detail)

	// Pola berulang
	rg.GET("/patterns", c.pattern.List)
	rg.GET("/patterns/tren", c.pattern.Trend)

	// Dashboard dan rekomendasi
	mahasiswa := rg.Group("/mahasiswa")
	{
		mahasiswa.GET("/dashboard", c.student.Dashboard)
		mahasiswa.GET("/progress", c.student.Progress)
		mahasiswa.GET("/sumber-daya", c.student.Resources)
		mahasiswa.GET("/export/csv", c.student.ExportCSV)
	}

	// Latihan
	exercises := rg.Group("/exercises")
	{
		exercises.GET("", c.exercise.List)
		exercises.GET("/rekomendasi", c.exercise.Recommended)
		exercises.GET("/riwayat", c.exercise.SubmissionHistory)
		exercises.GET("/:id", c.exercise.Get)
		exercises.POST("/:id/submit", c.exercise.Submit)
	}

	// Katalog sumber daya
	rg.GET("/resources", c.content.List)
	rg.GET("/resources/:id", c.content.Get)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RolePengajar, model.RoleAdmin))
	{
		admin.GET("/statistik", c.admin.Statistik)
		admin.GET("/pola-global", c.admin.PolaGlobal)
		admin.GET("/analytics/tren", c.admin.Tren)
		admin.GET("/topik-sulit", c.admin.TopikSulit)
		admin.GET("/rekomendasi-kurikulum", c.admin.RekomendasiKurikulum)

		admin.GET("/mahasiswa", c.admin.ListMahasiswa)
		admin.GET("/mahasiswa/:id", c.admin.DetailMahasiswa)
		admin.PUT("/mahasiswa/:id/status", c.admin.UpdateStatusMahasiswa)
		admin.POST("/mahasiswa/bulk", c.admin.BulkActionMahasiswa)

		admin.GET("/metrik-ai", c.admin.MetrikAI)
		admin.GET("/system-health", c.admin.SystemHealth)

		admin.POST("/exercises", c.exercise.Create)
		admin.PUT("/exercises/:id", c.exercise.Update)
		admin.DELETE("/exercises/:id", c.exercise.Delete)

		admin.POST("/resources", c.content.Create)
		admin.PUT("/resources/:id", c.content.Update)
		admin.DELETE("/resources/:id", c.content.Delete)
	}
}
