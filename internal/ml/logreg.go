package ml

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Classifier is a frozen linear logistic model over sparse features.
// A single coefficient row with two classes is the binary form; otherwise there
// is one row per class.
type Classifier struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// FitOptions controls offline classifier fitting.
type FitOptions struct {
	// C is the inverse L2 regularisation strength.
	C            float64
	MaxIter      int
	LearningRate float64
	Tol          float64
}

// DefaultFitOptions mirrors the usual logistic regression defaults.
func DefaultFitOptions() FitOptions {
	return FitOptions{C: 1.0, MaxIter: 1000, LearningRate: 0.5, Tol: 1e-5}
}

// Dimension returns the feature width the model expects.
func (c *Classifier) Dimension() int {
	if len(c.Coef) == 0 {
		return 0
	}
	return len(c.Coef[0])
}

// Labels returns a copy of the class labels.
func (c *Classifier) Labels() []string {
	return append([]string(nil), c.Classes...)
}

// Predict returns the top label for x. Ties go to the lowest class index.
func (c *Classifier) Predict(x Sparse) string {
	if c.binary() {
		if x.DotDense(c.Coef[0])+c.Intercept[0] > 0 {
			return c.Classes[1]
		}
		return c.Classes[0]
	}
	scores := c.scores(x)
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return c.Classes[best]
}

func (c *Classifier) binary() bool {
	return len(c.Coef) == 1 && len(c.Classes) == 2
}

func (c *Classifier) scores(x Sparse) []float64 {
	out := make([]float64, len(c.Coef))
	for k, row := range c.Coef {
		out[k] = x.DotDense(row) + c.Intercept[k]
	}
	return out
}

// Validate checks shape consistency between classes, coefficients and intercepts.
func (c *Classifier) Validate() error {
	if c == nil || len(c.Classes) < 2 {
		return errors.New("classifier needs at least two classes")
	}
	if len(c.Coef) != len(c.Intercept) {
		return fmt.Errorf("classifier: %d coef rows but %d intercepts", len(c.Coef), len(c.Intercept))
	}
	if !c.binary() && len(c.Coef) != len(c.Classes) {
		return fmt.Errorf("classifier: %d coef rows for %d classes", len(c.Coef), len(c.Classes))
	}
	dim := c.Dimension()
	for k, row := range c.Coef {
		if len(row) != dim {
			return fmt.Errorf("classifier: row %d has width %d, want %d", k, len(row), dim)
		}
	}
	return nil
}

// FitClassifier trains a multinomial logistic model with full-batch gradient descent.
// Inputs are processed in order and no randomness is involved, so the result is
// reproducible for identical inputs.
func FitClassifier(xs []Sparse, labels []string, opts FitOptions) (*Classifier, error) {
	if len(xs) == 0 || len(xs) != len(labels) {
		return nil, fmt.Errorf("fit classifier: %d samples for %d labels", len(xs), len(labels))
	}
	if opts.C <= 0 {
		opts.C = 1.0
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 1000
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = 0.5
	}

	classes := uniqueSorted(labels)
	if len(classes) < 2 {
		return nil, errors.New("fit classifier: training data has fewer than two classes")
	}
	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}
	dim := xs[0].Dim
	for i, x := range xs {
		if x.Dim != dim {
			return nil, fmt.Errorf("fit classifier: sample %d has dim %d, want %d", i, x.Dim, dim)
		}
	}

	k := len(classes)
	model := &Classifier{
		Classes:   classes,
		Coef:      make([][]float64, k),
		Intercept: make([]float64, k),
	}
	for c := range model.Coef {
		model.Coef[c] = make([]float64, dim)
	}

	n := float64(len(xs))
	lambda := 1.0 / (opts.C * n)
	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, k)

	for iter := 0; iter < opts.MaxIter; iter++ {
		for c := 0; c < k; c++ {
			for d := range gradW[c] {
				gradW[c][d] = lambda * model.Coef[c][d]
			}
			gradB[c] = 0
		}
		for i, x := range xs {
			probs := softmax(model.scores(x))
			target := classIdx[labels[i]]
			for c := 0; c < k; c++ {
				residual := probs[c]
				if c == target {
					residual -= 1
				}
				residual /= n
				gradB[c] += residual
				for j, idx := range x.Indices {
					gradW[c][idx] += residual * x.Values[j]
				}
			}
		}

		maxGrad := 0.0
		for c := 0; c < k; c++ {
			model.Intercept[c] -= opts.LearningRate * gradB[c]
			maxGrad = math.Max(maxGrad, math.Abs(gradB[c]))
			for d := range gradW[c] {
				model.Coef[c][d] -= opts.LearningRate * gradW[c][d]
				maxGrad = math.Max(maxGrad, math.Abs(gradW[c][d]))
			}
		}
		if maxGrad < opts.Tol {
			break
		}
	}
	return model, nil
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		maxScore = math.Max(maxScore, s)
	}
	out := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
