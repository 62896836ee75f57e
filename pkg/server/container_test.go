package server

import (
	"context"
	"path/filepath"
	"testing"

	"fitness-api/internal/config"
	"fitness-api/internal/models"
	"fitness-api/internal/repositories/memory"
	"fitness-api/internal/services"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Log:         config.LogConfig{Level: "warn", Format: "text"},
		AI:          config.AIConfig{DefaultProvider: config.ProviderAnthropic, MaxTokens: 16},
		Payments:    config.PaymentsConfig{AsaasBaseURL: "http://127.0.0.1:0", WebhookToken: "secret"},
		Store:       config.StoreConfig{Driver: driver},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(config.StoreDriverMemory))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.Users == nil {
		t.Error("Users repository is nil")
	}
	if container.ChatService == nil {
		t.Error("ChatService is nil")
	}
	if container.PaymentService == nil {
		t.Error("PaymentService is nil")
	}
	if container.InsightsService == nil {
		t.Error("InsightsService is nil")
	}
	if container.SalesService == nil {
		t.Error("SalesService is nil")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

func TestNewContainerSQLite(t *testing.T) {
	cfg := testConfig(config.StoreDriverSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "fitness.db")

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	ctx := context.Background()
	if err := container.Users.UpdatePaymentStatus(ctx, "user-1", models.PaymentStatusUpdate{Status: models.SubscriptionActive}); err != nil {
		t.Fatalf("UpdatePaymentStatus failed: %v", err)
	}
	user, err := container.Users.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if user.SubscriptionStatus != "ACTIVE" {
		t.Errorf("Expected ACTIVE, got %s", user.SubscriptionStatus)
	}
}

func TestNewContainerSQLiteInMemory(t *testing.T) {
	cfg := testConfig(config.StoreDriverSQLite)
	cfg.Store.SQLitePath = ":memory:"

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	ctx := context.Background()
	if err := container.CheckHealth(ctx); err != nil {
		t.Errorf("CheckHealth failed: %v", err)
	}
	if err := container.Users.RecordSubscription(ctx, "user-1", models.SubscriptionUpdate{SubscriptionID: "sub_1", Plan: models.PlanPremium}); err != nil {
		t.Fatalf("RecordSubscription failed: %v", err)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("Failed to close container: %v", err)
	}
}

func TestContainerCheckHealth(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(config.StoreDriverMemory))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	if err := container.CheckHealth(context.Background()); err != nil {
		t.Errorf("Expected healthy memory store, got %v", err)
	}

	if err := (&Container{}).CheckHealth(context.Background()); err == nil {
		t.Error("Expected error without a user store")
	}
}

func TestNewContainerUnsupportedDriver(t *testing.T) {
	if _, err := NewContainer(context.Background(), testConfig("redis")); err == nil {
		t.Error("Expected error for unsupported driver")
	}
	if _, err := NewContainer(context.Background(), nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNewContainerWithServices(t *testing.T) {
	container, err := NewContainerWithServices(testConfig(config.StoreDriverMemory), nil, memory.NewUserRepository(), &services.ServiceConfig{})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	info, err := container.SalesService.Info(context.Background())
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Message != "Sales endpoint" {
		t.Errorf("Expected 'Sales endpoint', got %q", info.Message)
	}
}
