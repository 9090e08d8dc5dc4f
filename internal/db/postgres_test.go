package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bruce184/OCMS/internal/config"
)

func defaultTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestNewPoolConfigAppliesQueryTimeout(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Database.QueryTimeout = "2s"

	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		t.Fatalf("newPoolConfig() error = %v", err)
	}

	if got := poolConfig.ConnConfig.RuntimeParams["statement_timeout"]; got != "2000" {
		t.Errorf("statement_timeout = %q, want %q", got, "2000")
	}
	if poolConfig.MaxConns != int32(cfg.Database.MaxOpenConns) {
		t.Errorf("MaxConns = %d, want %d", poolConfig.MaxConns, cfg.Database.MaxOpenConns)
	}
	if poolConfig.MinConns != int32(cfg.Database.MaxIdleConns) {
		t.Errorf("MinConns = %d, want %d", poolConfig.MinConns, cfg.Database.MaxIdleConns)
	}
	if poolConfig.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want %v", poolConfig.MaxConnLifetime, time.Hour)
	}
}

func TestNewPoolConfigRejectsBadLifetime(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Database.ConnMaxLifetime = "forever"

	if _, err := newPoolConfig(cfg); err == nil {
		t.Fatal("newPoolConfig() accepted an unparseable conn_max_lifetime")
	}
}

func TestQueryContextAddsDeadline(t *testing.T) {
	ctx, cancel := QueryContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("QueryContext() returned a context without a deadline")
	}
	remaining := time.Until(deadline)
	if remaining <= 0 || remaining > queryTimeout {
		t.Errorf("deadline in %v, want within (0, %v]", remaining, queryTimeout)
	}
}

func TestQueryContextKeepsCallerDeadline(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer parentCancel()
	want, _ := parent.Deadline()

	ctx, cancel := QueryContext(parent)
	defer cancel()

	got, ok := ctx.Deadline()
	if !ok {
		t.Fatal("QueryContext() dropped the caller's deadline")
	}
	if !got.Equal(want) {
		t.Errorf("deadline = %v, want caller's %v", got, want)
	}
}
