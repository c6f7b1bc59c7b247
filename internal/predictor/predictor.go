// Package predictor adapts a trained classifier to single-record scoring.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attrition/internal/classifier"
	"attrition/internal/encoder"
)

// Scoring errors.
var (
	// ErrModelUnavailable means the model artifact was missing, unreadable or invalid.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrSchemaMismatch means a record does not match the model's feature names.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

// Classifier is a fitted binary classifier over a named feature vector.
type Classifier interface {
	FeatureNames() []string
	Classes() []int
	Predict(x []float64) int
	PredictProba(x []float64) []float64
}

// Prediction is the classifier's answer for one record.
type Prediction struct {
	Class         int        // 1 means the employee is predicted to leave
	Probabilities [2]float64 // p(class 0), p(class 1)
}

// Attrition returns the probability of class 1.
func (p Prediction) Attrition() float64 {
	return p.Probabilities[1]
}

// Adapter scores feature records with a classifier loaded once at startup.
type Adapter struct {
	model   Classifier
	loadErr error
}

// New wraps a loaded classifier.
func New(model Classifier) *Adapter {
	return &Adapter{model: model}
}

// Unavailable returns an adapter whose every call fails with
// ErrModelUnavailable, carrying the load failure as the cause.
func Unavailable(cause error) *Adapter {
	return &Adapter{loadErr: cause}
}

// Load reads the forest artifact at path and checks that it was trained on
// schema. A failed load or a schema mismatch still yields a usable adapter
// that reports ErrModelUnavailable on every call.
func Load(path string, schema []string) *Adapter {
	forest, err := classifier.Load(path)
	if err != nil {
		slog.Error("failed to load model artifact", "path", path, "error", err)
		return Unavailable(err)
	}
	a := New(forest)
	if err := a.CheckSchema(schema); err != nil {
		slog.Error("model artifact rejected", "path", path, "error", err)
		return Unavailable(err)
	}
	slog.Info("model artifact loaded", "path", path, "trees", forest.NumTrees(), "features", len(forest.FeatureNames()))
	return a
}

// Ready returns nil when the model can serve predictions.
func (a *Adapter) Ready() error {
	if a.model == nil {
		if a.loadErr != nil {
			return fmt.Errorf("%w: %w", ErrModelUnavailable, a.loadErr)
		}
		return ErrModelUnavailable
	}
	return nil
}

// CheckSchema verifies that names equal the model's feature names in order.
func (a *Adapter) CheckSchema(names []string) error {
	if err := a.Ready(); err != nil {
		return err
	}
	want := a.model.FeatureNames()
	if len(names) != len(want) {
		return fmt.Errorf("%w: record has %d fields, model expects %d", ErrSchemaMismatch, len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			return fmt.Errorf("%w: field %d is %q, model expects %q", ErrSchemaMismatch, i, names[i], want[i])
		}
	}
	return nil
}

// Predict scores exactly one record.
func (a *Adapter) Predict(ctx context.Context, rec encoder.Record) (Prediction, error) {
	if err := a.CheckSchema(rec.Names()); err != nil {
		return Prediction{}, err
	}

	start := time.Now()
	x := rec.Values()
	class := a.model.Predict(x)
	proba := a.model.PredictProba(x)

	var pred Prediction
	pred.Class = class
	for i, label := range a.model.Classes() {
		if (label == 0 || label == 1) && i < len(proba) {
			pred.Probabilities[label] = proba[i]
		}
	}

	slog.DebugContext(ctx, "scored feature record",
		"class", pred.Class,
		"p_attrition", pred.Attrition(),
		"duration", time.Since(start),
	)
	return pred, nil
}
