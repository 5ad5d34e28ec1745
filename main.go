// @title PahamKode API
// @version 1.0
// @description Backend analisis error pemrograman untuk pembelajaran: klasifikasi error, deteksi pola berulang, dan pelacakan penguasaan topik.

// @contact.name Tim PahamKode
// @contact.email support@pahamkode.id

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"pahamkode_backend/internal/app"
	"pahamkode_backend/internal/config"
	"pahamkode_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "jalankan migrasi database lalu keluar")
	migrate := flag.Bool("migrate", false, "paksa migrasi database saat start")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migrasi database selesai, keluar")
		return
	}

	application.Run()
}
