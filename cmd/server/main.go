package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"discovery-space/internal/config"
	"discovery-space/internal/db"
	"discovery-space/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if os.Getenv("ENV") == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.SeedGameModes(conn); err != nil {
		log.Fatalf("seed game modes: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
		log.Fatalf("create upload folder: %v", err)
	}

	srv := server.New(conn, cfg)
	go srv.RunSessionJanitor(context.Background(), 15*time.Minute)

	addr := ":" + cfg.Port
	log.Printf("discovery-space server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
