package detector

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	proba   []float64
	classes []string
	err     error

	mu       sync.Mutex
	lastText string
}

func (s *stubBackend) PredictProba(text string) ([]float64, error) {
	s.mu.Lock()
	s.lastText = text
	s.mu.Unlock()
	return s.proba, s.err
}

func (s *stubBackend) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastText
}

func (s *stubBackend) Classes() []string { return s.classes }

func backendLoader(b Backend, err error) func() (Backend, error) {
	return func() (Backend, error) { return b, err }
}

var testPostings = []JobPosting{
	{Title: "Software Engineer", Company: "Initech", Description: "Build backend services."},
	{Title: "Remote Data Entry Clerk", Company: "Acme", Description: "Work from home and earn $1000 per day. Contact via WhatsApp."},
	{Title: "Remote Typist", Company: "QuickCash", Description: "urgent hiring, no experience needed, dm me on telegram", Salary: "$500 / week", Link: "https://bit.ly/x"},
	{Title: "Accountant", Company: "Globex", Description: "CPA required.", Location: "Toronto"},
}

func TestPredict_Invariants(t *testing.T) {
	d := New(nil, nil)

	for _, p := range testPostings {
		res := d.Predict(p)

		assert.InDelta(t, 1.0, res.Scores.Fake+res.Scores.Real, 1e-9)
		assert.InDelta(t, math.Max(res.Scores.Fake, res.Scores.Real), res.Confidence, 1e-15)

		wantLabel := LabelReal
		if res.Scores.Fake >= 0.5 {
			wantLabel = LabelFake
		}
		assert.Equal(t, wantLabel, res.Label)
		assert.GreaterOrEqual(t, res.Scores.Fake, 0.0)
		assert.LessOrEqual(t, res.Scores.Fake, 1.0)
	}
}

func TestPredict_DeterministicWithoutBackend(t *testing.T) {
	d := New(nil, nil)

	for _, p := range testPostings {
		first := d.Predict(p)
		second := d.Predict(p)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("prediction not deterministic for %q: %+v vs %+v", p.Title, first, second)
		}
	}
}

func TestPredict_BackendAbsentEqualsHeuristic(t *testing.T) {
	d := New(nil, backendLoader(nil, errors.New("artifact not found")))

	for _, p := range testPostings {
		assert.Equal(t, Heuristic(p), d.Predict(p))
	}
}

func TestPredict_BackendInferenceFailureFallsBack(t *testing.T) {
	backend := &stubBackend{err: errors.New("incompatible format")}
	d := New(nil, backendLoader(backend, nil))

	for _, p := range testPostings {
		assert.Equal(t, Heuristic(p), d.Predict(p))
	}
}

func TestPredict_BackendEmptyDistributionFallsBack(t *testing.T) {
	backend := &stubBackend{proba: []float64{}}
	d := New(nil, backendLoader(backend, nil))

	p := testPostings[0]
	assert.Equal(t, Heuristic(p), d.Predict(p))
}

func TestPredict_BackendUsedWhenAvailable(t *testing.T) {
	backend := &stubBackend{proba: []float64{0.2, 0.8}}
	d := New(nil, backendLoader(backend, nil))

	res := d.Predict(testPostings[0])

	assert.Equal(t, MethodModel, res.Method)
	assert.InDelta(t, 0.8, res.Scores.Fake, 1e-15)
	assert.InDelta(t, 0.2, res.Scores.Real, 1e-15)
	assert.Equal(t, LabelFake, res.Label)
}

func TestPredict_BackendReceivesCombinedText(t *testing.T) {
	backend := &stubBackend{proba: []float64{0.5, 0.5}}
	d := New(nil, backendLoader(backend, nil))

	p := JobPosting{Title: "Engineer", Company: "Initech", Description: "Work", Location: "Remote"}
	d.Predict(p)

	require.Equal(t, CombinedText(p), backend.text())
	// The backend text carries the company line the heuristic text omits.
	assert.True(t, strings.Contains(backend.text(), "company: Initech"))
}

func TestPredict_BackendLoadedOnce(t *testing.T) {
	calls := 0
	backend := &stubBackend{proba: []float64{0.9, 0.1}}
	d := New(nil, func() (Backend, error) {
		calls++
		return backend, nil
	})

	for range 5 {
		d.Predict(testPostings[0])
	}
	assert.Equal(t, 1, calls)
}

func TestFakeProbability_ClassSelection(t *testing.T) {
	tests := []struct {
		name    string
		proba   []float64
		classes []string
		want    float64
	}{
		{"classes name fake first", []float64{0.9, 0.1}, []string{"fake", "real"}, 0.9},
		{"classes name fake second", []float64{0.3, 0.7}, []string{"real", "fake"}, 0.7},
		{"no classes assumes second", []float64{0.3, 0.7}, nil, 0.7},
		{"unknown classes assume second", []float64{0.4, 0.6}, []string{"ham", "spam"}, 0.6},
		{"single probability", []float64{0.65}, nil, 0.65},
		{"class list longer than proba", []float64{0.25}, []string{"real", "fake"}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fakeProbability(tt.proba, tt.classes), 1e-15)
		})
	}
}

func TestHeuristic_Monotonicity(t *testing.T) {
	base := JobPosting{Title: "Assistant", Company: "Acme", Description: "General office duties."}
	grown := base

	additions := []string{" quick money", " contact via whatsapp", " deposit required", " click here"}
	prev := Heuristic(base).Scores.Fake
	for _, add := range additions {
		grown.Description += add
		next := Heuristic(grown).Scores.Fake
		if next < prev {
			t.Errorf("fake score decreased from %v to %v after adding %q", prev, next, add)
		}
		prev = next
	}
}

func TestHeuristic_ScamPosting(t *testing.T) {
	res := Heuristic(JobPosting{
		Title:       "Remote Data Entry Clerk",
		Company:     "Acme",
		Description: "Work from home and earn $1000 per day. Contact via WhatsApp.",
	})

	assert.Equal(t, LabelFake, res.Label)
	assert.GreaterOrEqual(t, res.Scores.Fake, 0.5)
	assert.Equal(t, MethodHeuristic, res.Method)
}

func TestHeuristic_LegitimatePosting(t *testing.T) {
	res := Heuristic(JobPosting{
		Title:       "Senior Backend Engineer",
		Company:     "Initech",
		Description: "We are looking for an experienced backend engineer to join our platform team. Competitive salary, full benefits.",
	})

	assert.Equal(t, LabelReal, res.Label)
	assert.Less(t, res.Scores.Fake, 0.5)
}

func TestHeuristic_EmptyOptionalFields(t *testing.T) {
	res := Heuristic(JobPosting{Title: "Clerk", Company: "Acme", Description: "File paperwork."})

	assert.InDelta(t, 1.0, res.Scores.Fake+res.Scores.Real, 1e-9)
	assert.NotEmpty(t, res.Label)
}

func TestPredict_ConcurrentCallers(t *testing.T) {
	calls := 0
	backend := &stubBackend{proba: []float64{0.2, 0.8}}
	d := New(nil, func() (Backend, error) {
		calls++
		return backend, nil
	})

	done := make(chan Result)
	for range 8 {
		go func() {
			done <- d.Predict(testPostings[0])
		}()
	}
	for range 8 {
		res := <-done
		assert.Equal(t, LabelFake, res.Label)
	}
	assert.Equal(t, 1, calls)
}
