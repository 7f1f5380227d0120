package main

import (
	"testing"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug level", "debug", false},
		{"info level", "info", false},
		{"warn level", "warn", false},
		{"error level", "error", false},
		{"invalid level defaults to info", "invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			logger, err := initLogger(tt.level)

			// Assert
			if tt.wantErr {
				if err == nil {
					t.Error("initLogger() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("initLogger() error = %v", err)
			}
			if logger == nil {
				t.Error("initLogger() returned nil logger")
			}
		})
	}
}

func TestNewItemStore(t *testing.T) {
	tests := []struct {
		name      string
		maxItems  int
		seed      bool
		wantItems int
	}{
		{"seeded", 100, true, 2},
		{"empty", 100, false, 0},
		{"seed limited by capacity", 1, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := config.Default()
			cfg.MaxItems = tt.maxItems
			cfg.SeedFixtures = tt.seed

			// Act
			itemStore := newItemStore(cfg, zap.NewNop())

			// Assert
			if itemStore.Len() != tt.wantItems {
				t.Errorf("Len() = %d, want %d", itemStore.Len(), tt.wantItems)
			}
			if itemStore.Capacity() != tt.maxItems {
				t.Errorf("Capacity() = %d, want %d", itemStore.Capacity(), tt.maxItems)
			}
		})
	}
}

func TestNewEventHub(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		cfg := config.Default()

		if hub := newEventHub(cfg, zap.NewNop()); hub == nil {
			t.Error("newEventHub() = nil, want hub")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.EventsEnabled = false

		if hub := newEventHub(cfg, zap.NewNop()); hub != nil {
			t.Error("newEventHub() should return nil when events are disabled")
		}
	})
}
