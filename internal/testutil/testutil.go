// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"skinscout/internal/db"
	"skinscout/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	database.Pool.Exec(ctx, "DELETE FROM analyses")

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM analyses")
		database.Close()
	}

	return database, cleanup
}

// CreateTestAnalysis stores an analysis with the given status and returns it.
func CreateTestAnalysis(t *testing.T, database *db.DB, status string, ingredients ...string) *models.Analysis {
	t.Helper()

	a := &models.Analysis{
		Ingredients: ingredients,
		Status:      status,
		Source:      "local",
	}
	if status == "danger" {
		a.RiskScore = 70
		a.MatchCount = 2
		a.Rule = "multiple_actives"
	}
	if err := database.CreateAnalysis(context.Background(), a); err != nil {
		t.Fatalf("failed to create test analysis: %v", err)
	}
	return a
}
