package ml

import (
	"reflect"
	"testing"
)

func trainingSet(t *testing.T) (*Vectorizer, []Sparse, []string) {
	t.Helper()
	clauses := []string{
		"shall be punishable with imprisonment and fine",
		"imprisonment up to five years for non compliance",
		"failure to file returns attracts a penalty",
		"late payment penalty of interest",
		"the registrar may issue a licence",
		"application form shall be submitted to the office",
	}
	labels := []string{"High", "High", "Medium", "Medium", "Low", "Low"}
	v, err := FitVectorizer(clauses)
	if err != nil {
		t.Fatalf("FitVectorizer: %v", err)
	}
	xs := make([]Sparse, len(clauses))
	for i, c := range clauses {
		xs[i] = v.Transform(c)
	}
	return v, xs, labels
}

func TestFitClassifierSeparatesTrainingData(t *testing.T) {
	v, xs, labels := trainingSet(t)
	model, err := FitClassifier(xs, labels, DefaultFitOptions())
	if err != nil {
		t.Fatalf("FitClassifier: %v", err)
	}
	if err := model.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !reflect.DeepEqual(model.Labels(), []string{"High", "Low", "Medium"}) {
		t.Fatalf("classes = %v", model.Classes)
	}
	if model.Dimension() != v.Dimension() {
		t.Fatalf("dimension = %d, want %d", model.Dimension(), v.Dimension())
	}
	for i, x := range xs {
		if got := model.Predict(x); got != labels[i] {
			t.Fatalf("sample %d predicted %q, want %q", i, got, labels[i])
		}
	}
	if got := model.Predict(v.Transform("punishable with imprisonment")); got != "High" {
		t.Fatalf("unseen clause predicted %q, want High", got)
	}
}

func TestFitClassifierIsDeterministic(t *testing.T) {
	_, xs, labels := trainingSet(t)
	a, err := FitClassifier(xs, labels, DefaultFitOptions())
	if err != nil {
		t.Fatalf("FitClassifier: %v", err)
	}
	b, err := FitClassifier(xs, labels, DefaultFitOptions())
	if err != nil {
		t.Fatalf("FitClassifier: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical models for identical inputs")
	}
}

func TestFitClassifierNeedsTwoClasses(t *testing.T) {
	x := Sparse{Dim: 1, Indices: []int{0}, Values: []float64{1}}
	if _, err := FitClassifier([]Sparse{x, x}, []string{"High", "High"}, DefaultFitOptions()); err == nil {
		t.Fatal("expected error for a single class")
	}
}

func TestPredictBinaryForm(t *testing.T) {
	model := &Classifier{
		Classes:   []string{"Low", "High"},
		Coef:      [][]float64{{2, -1}},
		Intercept: []float64{0},
	}
	if err := model.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	pos := Sparse{Dim: 2, Indices: []int{0}, Values: []float64{1}}
	neg := Sparse{Dim: 2, Indices: []int{1}, Values: []float64{1}}
	if got := model.Predict(pos); got != "High" {
		t.Fatalf("positive score predicted %q", got)
	}
	if got := model.Predict(neg); got != "Low" {
		t.Fatalf("negative score predicted %q", got)
	}
	if got := model.Predict(Sparse{Dim: 2}); got != "Low" {
		t.Fatalf("zero score predicted %q, want Low", got)
	}
}

func TestPredictTieResolvesToFirstClass(t *testing.T) {
	model := &Classifier{
		Classes:   []string{"High", "Low", "Medium"},
		Coef:      [][]float64{{0}, {0}, {0}},
		Intercept: []float64{0, 0, 0},
	}
	if got := model.Predict(Sparse{Dim: 1}); got != "High" {
		t.Fatalf("tie predicted %q, want High", got)
	}
}

func TestClassifierValidateRejectsRaggedRows(t *testing.T) {
	model := &Classifier{
		Classes:   []string{"High", "Low", "Medium"},
		Coef:      [][]float64{{0, 1}, {0}, {0, 1}},
		Intercept: []float64{0, 0, 0},
	}
	if err := model.Validate(); err == nil {
		t.Fatal("expected ragged row error")
	}
}
