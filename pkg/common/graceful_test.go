package common

import (
	"testing"
	"time"
)

func TestLoadTimeoutConfigDefaults(t *testing.T) {
	defaults := TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       10 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   20 * time.Second,
		Hook:       5 * time.Second,
	}
	cfg := LoadTimeoutConfig(defaults)
	if cfg != defaults {
		t.Errorf("Expected defaults untouched, got %+v", cfg)
	}
}

func TestLoadTimeoutConfigOverrides(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "42")
	t.Setenv("SHUTDOWN_TIMEOUT", "7")
	t.Setenv("WRITE_TIMEOUT", "not-a-number")
	t.Setenv("IDLE_TIMEOUT", "-3")

	cfg := LoadTimeoutConfig(TimeoutConfig{
		Read:     10 * time.Second,
		Write:    30 * time.Second,
		Idle:     60 * time.Second,
		Shutdown: 20 * time.Second,
	})
	if cfg.Read != 42*time.Second {
		t.Errorf("Expected READ_TIMEOUT override, got %v", cfg.Read)
	}
	if cfg.Shutdown != 7*time.Second {
		t.Errorf("Expected SHUTDOWN_TIMEOUT override, got %v", cfg.Shutdown)
	}
	if cfg.Write != 30*time.Second {
		t.Errorf("Expected invalid value to keep the default, got %v", cfg.Write)
	}
	if cfg.Idle != 60*time.Second {
		t.Errorf("Expected non positive value to keep the default, got %v", cfg.Idle)
	}
}

func TestNewServerWithTimeouts(t *testing.T) {
	cfg := TimeoutConfig{
		ReadHeader: time.Second,
		Read:       2 * time.Second,
		Write:      3 * time.Second,
		Idle:       4 * time.Second,
	}
	srv := NewServerWithTimeouts(nil, cfg)
	if srv.ReadHeaderTimeout != time.Second || srv.ReadTimeout != 2*time.Second ||
		srv.WriteTimeout != 3*time.Second || srv.IdleTimeout != 4*time.Second {
		t.Errorf("Timeouts not applied: %+v", srv)
	}
}
