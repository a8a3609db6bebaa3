package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmlee/dcalab/pkg/config"
)

func TestNewRequiresURL(t *testing.T) {
	cfg := &config.Config{Env: "development"}

	if _, err := New(cfg); err == nil {
		t.Error("Expected error when DATABASE_URL is empty")
	}
}

func TestNew(t *testing.T) {
	// Skip if DATABASE_URL is not set
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}
}
