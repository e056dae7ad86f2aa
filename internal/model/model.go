// Package model loads the optional pre-trained classifier artifact and
// serves probability predictions from it. The detector treats every error
// from this package as "no backend available".
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/jobtegrity/detector/internal/detector"
)

// DefaultPath is the well-known location of the trained artifact, relative
// to the working directory of the service.
const DefaultPath = "models/fake_job_model.json"

const maxClasses = 2

// ErrNotFound indicates the artifact does not exist. Expected in
// deployments that never ran the training pipeline.
var ErrNotFound = errors.New("model artifact not found")

// Model is a linear text classifier: a bag-of-words logistic scorer with a
// per-token weight table. Produced offline by the training pipeline,
// read-only at runtime.
type Model struct {
	ModelVersion string             `json:"model_version"`
	ClassNames   []string           `json:"classes"`
	Bias         float64            `json:"bias"`
	Weights      map[string]float64 `json:"weights"`
}

// Load reads and validates the artifact at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, errors.New("model artifact has no weights")
	}
	if len(m.ClassNames) > maxClasses {
		return nil, fmt.Errorf("model artifact declares %d classes, want at most %d", len(m.ClassNames), maxClasses)
	}
	if len(m.ClassNames) == 0 {
		m.ClassNames = []string{detector.LabelReal, detector.LabelFake}
	}
	return &m, nil
}

// BackendLoader returns the load function the detector calls once, lazily,
// to obtain its statistical backend.
func BackendLoader(path string) func() (detector.Backend, error) {
	return func() (detector.Backend, error) {
		return Load(path)
	}
}

// Classes returns the class order of the probability distribution.
func (m *Model) Classes() []string {
	return m.ClassNames
}

// PredictProba scores one combined text and returns a probability per
// class, aligned with Classes.
func (m *Model) PredictProba(text string) ([]float64, error) {
	z := m.Bias
	for _, token := range tokenize(text) {
		z += m.Weights[token]
	}
	positive := logistic(z)

	proba := make([]float64, len(m.ClassNames))
	if len(m.ClassNames) == 1 {
		proba[0] = positive
		return proba, nil
	}

	fakeIndex := len(m.ClassNames) - 1
	for i, class := range m.ClassNames {
		if class == detector.LabelFake {
			fakeIndex = i
		}
	}
	proba[fakeIndex] = positive
	proba[1-fakeIndex] = 1.0 - positive
	return proba, nil
}

// tokenize lowercases the text and splits it into alphanumeric words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// logistic is the numerically stable sigmoid.
func logistic(x float64) float64 {
	if x >= 0 {
		z := math.Exp(-x)
		return 1.0 / (1.0 + z)
	}
	z := math.Exp(x)
	return z / (1.0 + z)
}
