package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"discovery-space/internal/config"
	"discovery-space/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedGameModes(conn); err != nil {
		t.Fatalf("seed game modes: %v", err)
	}
	return conn
}

// newTestApp starts a server backed by a fresh in-memory database and a
// temporary upload folder.
func newTestApp(t *testing.T) (*Server, *httptest.Server, *gorm.DB) {
	t.Helper()
	conn := setupTestDB(t)
	cfg := config.Default()
	cfg.UploadFolder = t.TempDir()
	srv := New(conn, cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts, conn
}
