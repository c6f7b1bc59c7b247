// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"attrition/internal/classifier"
	"attrition/internal/db"
	"attrition/internal/encoder"
)

// Schema positions used by the fixture forest.
const (
	monthlyIncomeIndex = 15
	overTimeIndex      = 18
)

// ForestArtifact returns a two-tree forest over the production schema.
//
// Tree 1 splits on OverTime: no overtime gives [0.8, 0.2], overtime [0.3, 0.7].
// Tree 2 splits on MonthlyIncome at 3000: below gives [0.25, 0.75], above [0.75, 0.25].
// So OverTime=No with income 5000 scores [0.775, 0.225] (class 0), and
// OverTime=Yes with income 2000 scores [0.275, 0.725] (class 1).
func ForestArtifact() classifier.Artifact {
	return classifier.Artifact{
		FeatureNames: append([]string(nil), encoder.Schema...),
		Classes:      []int{0, 1},
		Trees: []classifier.TreeArtifact{
			{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{overTimeIndex, -2, -2},
				Threshold:     []float64{0.5, -2, -2},
				Value:         [][]float64{{11, 9}, {8, 2}, {3, 7}},
			},
			{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{monthlyIncomeIndex, -2, -2},
				Threshold:     []float64{3000, -2, -2},
				Value:         [][]float64{{0.5, 0.5}, {0.25, 0.75}, {0.75, 0.25}},
			},
		},
	}
}

// Forest builds the fixture forest.
func Forest(t *testing.T) *classifier.Forest {
	t.Helper()

	f, err := classifier.New(ForestArtifact())
	if err != nil {
		t.Fatalf("failed to build fixture forest: %v", err)
	}
	return f
}

// WriteArtifact writes a as JSON into a temp dir and returns its path.
func WriteArtifact(t *testing.T, a classifier.Artifact) string {
	t.Helper()

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("failed to encode artifact: %v", err)
	}
	return WriteFile(t, "rfc.json", data)
}

// WriteFile writes data into a temp dir and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

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

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	database.Pool.Exec(ctx, "DELETE FROM prediction_outcomes")

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM prediction_outcomes")
		database.Close()
	}

	return database, cleanup
}
