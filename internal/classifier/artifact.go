package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidArtifact is returned when a model artifact cannot be decoded or
// does not describe a usable forest.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// leafMarker is the child index scikit-learn stores for leaf nodes.
const leafMarker = -1

// Artifact is the on-disk form of a fitted random forest. Each tree carries
// the parallel node arrays scikit-learn keeps on a fitted estimator.
// Thresholds are compared against feature values cast to float32, matching
// the precision the trees were trained and scored at.
type Artifact struct {
	FeatureNames []string       `json:"feature_names"`
	Classes      []int          `json:"classes"`
	Trees        []TreeArtifact `json:"trees"`
}

// TreeArtifact holds one decision tree as parallel node arrays.
type TreeArtifact struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"` // per-node class counts or fractions
}

// Load reads and validates the artifact at path.
func Load(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	return New(a)
}

// New validates a and builds the forest it describes.
func New(a Artifact) (*Forest, error) {
	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: no feature names", ErrInvalidArtifact)
	}
	if len(a.Classes) != 2 || !containsClass(a.Classes, 0) || !containsClass(a.Classes, 1) {
		return nil, fmt.Errorf("%w: classes %v, want binary {0,1}", ErrInvalidArtifact, a.Classes)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}

	f := &Forest{
		featureNames: append([]string(nil), a.FeatureNames...),
		classes:      append([]int(nil), a.Classes...),
		trees:        make([]*tree, 0, len(a.Trees)),
	}
	for i, ta := range a.Trees {
		t, err := newTree(ta, len(a.FeatureNames), len(a.Classes))
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
		f.trees = append(f.trees, t)
	}
	return f, nil
}

func newTree(ta TreeArtifact, nFeatures, nClasses int) (*tree, error) {
	n := len(ta.ChildrenLeft)
	if n == 0 {
		return nil, errors.New("empty tree")
	}
	if len(ta.ChildrenRight) != n || len(ta.Feature) != n || len(ta.Threshold) != n || len(ta.Value) != n {
		return nil, errors.New("node arrays differ in length")
	}

	nodes := make([]node, n)
	for i := 0; i < n; i++ {
		left, right := ta.ChildrenLeft[i], ta.ChildrenRight[i]
		if left == leafMarker {
			if right != leafMarker {
				return nil, fmt.Errorf("node %d has only one child", i)
			}
			probas, err := normalize(ta.Value[i], nClasses)
			if err != nil {
				return nil, fmt.Errorf("node %d: %v", i, err)
			}
			nodes[i] = node{isLeaf: true, probas: probas}
			continue
		}

		// Children always come after their parent, so walks terminate.
		if left <= i || left >= n || right <= i || right >= n {
			return nil, fmt.Errorf("node %d has children out of range", i)
		}
		if ta.Feature[i] < 0 || ta.Feature[i] >= nFeatures {
			return nil, fmt.Errorf("node %d splits on unknown feature %d", i, ta.Feature[i])
		}
		nodes[i] = node{
			feature:   ta.Feature[i],
			threshold: ta.Threshold[i],
			left:      left,
			right:     right,
		}
	}
	return &tree{nodes: nodes}, nil
}

// normalize turns a leaf's class counts into a probability distribution.
func normalize(value []float64, nClasses int) ([]float64, error) {
	if len(value) != nClasses {
		return nil, fmt.Errorf("leaf has %d class values, want %d", len(value), nClasses)
	}
	sum := 0.0
	for _, v := range value {
		if v < 0 {
			return nil, errors.New("negative class value")
		}
		sum += v
	}
	p := make([]float64, nClasses)
	if sum == 0 {
		for i := range p {
			p[i] = 1.0 / float64(nClasses)
		}
		return p, nil
	}
	for i, v := range value {
		p[i] = v / sum
	}
	return p, nil
}

func containsClass(classes []int, label int) bool {
	for _, c := range classes {
		if c == label {
			return true
		}
	}
	return false
}
