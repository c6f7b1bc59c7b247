// Package classifier scores feature vectors with a random forest exported
// from a trained model.
package classifier

// Forest is a fitted random forest for binary classification. It is never
// mutated after Load and is safe for concurrent use.
type Forest struct {
	featureNames []string
	classes      []int
	trees        []*tree
}

type tree struct {
	nodes []node
}

type node struct {
	isLeaf    bool
	feature   int
	threshold float64 // float32(x) <= threshold => left
	left      int
	right     int
	probas    []float64 // leaf class distribution, aligned with Forest.classes
}

// FeatureNames returns the ordered feature names the forest was trained on.
func (f *Forest) FeatureNames() []string {
	return append([]string(nil), f.featureNames...)
}

// Classes returns the class labels, aligned with PredictProba.
func (f *Forest) Classes() []int {
	return append([]int(nil), f.classes...)
}

// NumTrees returns the number of estimators.
func (f *Forest) NumTrees() int {
	return len(f.trees)
}

// PredictProba returns the mean of the trees' leaf distributions for x.
func (f *Forest) PredictProba(x []float64) []float64 {
	out := make([]float64, len(f.classes))
	for _, t := range f.trees {
		for i, p := range t.leaf(x) {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(f.trees))
	}
	return out
}

// Predict returns the class label with the highest mean probability. Ties go
// to the class listed first.
func (f *Forest) Predict(x []float64) int {
	probs := f.PredictProba(x)
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return f.classes[best]
}

// leaf walks t for x. Feature values are narrowed to float32 before each
// comparison, as scikit-learn does when it scores, so values that sit on a
// float32 threshold take the same branch they took in training.
func (t *tree) leaf(x []float64) []float64 {
	n := &t.nodes[0]
	for !n.isLeaf {
		if float64(float32(x[n.feature])) <= n.threshold {
			n = &t.nodes[n.left]
		} else {
			n = &t.nodes[n.right]
		}
	}
	return n.probas
}
