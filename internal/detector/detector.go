package detector

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// Result labels.
const (
	LabelFake = "fake"
	LabelReal = "real"
)

// Scoring methods reported in Result.Method.
const (
	MethodHeuristic = "heuristic"
	MethodModel     = "model"
)

// JobPosting is the input to scoring. Title, Company and Description are
// required by the callers' validation layer; the rest may be empty.
// Location is carried for the backend representation only.
type JobPosting struct {
	Title       string
	Company     string
	Description string
	Salary      string
	Location    string
	Link        string
}

// Scores holds the per-class probabilities. Fake + Real == 1.
type Scores struct {
	Fake float64 `json:"fake"`
	Real float64 `json:"real"`
}

// Result is the prediction returned to every front-end.
// Method and Factors are diagnostic and stay out of the wire format.
type Result struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Scores     Scores   `json:"scores"`
	Method     string   `json:"-"`
	Factors    []string `json:"-"`
}

// Backend is an optional statistical classifier. PredictProba returns one
// probability per class for the combined text; Classes may return the class
// order, or nil when the backend does not expose it.
type Backend interface {
	PredictProba(text string) ([]float64, error)
	Classes() []string
}

// Detector scores job postings, preferring an optional statistical backend
// and falling back to the heuristic catalog on any failure. The backend is
// loaded at most once per Detector; concurrent callers are safe.
type Detector struct {
	loadBackend func() (Backend, error)
	logger      *zap.Logger

	once    sync.Once
	backend Backend
}

// New creates a Detector. loadBackend may be nil for a heuristic-only
// detector; when set it is invoked once, on first prediction, and an error
// simply leaves the detector on the heuristic path.
func New(logger *zap.Logger, loadBackend func() (Backend, error)) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{loadBackend: loadBackend, logger: logger}
}

// Predict scores one posting. It never returns an error: backend load and
// inference failures are absorbed and answered with the heuristic verdict.
func (d *Detector) Predict(p JobPosting) Result {
	d.once.Do(d.initBackend)

	if d.backend != nil {
		if res, ok := d.predictWithBackend(p); ok {
			return res
		}
	}
	return Heuristic(p)
}

func (d *Detector) initBackend() {
	if d.loadBackend == nil {
		return
	}
	backend, err := d.loadBackend()
	if err != nil {
		d.logger.Info("statistical backend unavailable, scoring with heuristics",
			zap.Error(err))
		return
	}
	d.backend = backend
	d.logger.Info("statistical backend loaded")
}

func (d *Detector) predictWithBackend(p JobPosting) (Result, bool) {
	proba, err := d.backend.PredictProba(CombinedText(p))
	if err != nil {
		d.logger.Warn("backend inference failed, falling back to heuristics",
			zap.Error(err))
		return Result{}, false
	}
	if len(proba) == 0 {
		d.logger.Warn("backend returned an empty distribution, falling back to heuristics")
		return Result{}, false
	}
	return resultFrom(fakeProbability(proba, d.backend.Classes()), MethodModel, nil), true
}

// fakeProbability selects the "fake" class probability. A class list naming
// "fake" decides the index; otherwise the second probability is assumed to
// be the positive class, or the only one when a single value is returned.
func fakeProbability(proba []float64, classes []string) float64 {
	for i, class := range classes {
		if class == LabelFake && i < len(proba) {
			return proba[i]
		}
	}
	if len(proba) > 1 {
		return proba[1]
	}
	return proba[0]
}

// Heuristic scores a posting with the pattern catalog only. This is the
// offline/local contract: pure, deterministic, no backend, never fails.
func Heuristic(p JobPosting) Result {
	score, factors := HeuristicScore(p)
	return resultFrom(probabilityFromScore(score), MethodHeuristic, factors)
}

func resultFrom(probFake float64, method string, factors []string) Result {
	probReal := 1.0 - probFake
	label := LabelReal
	if probFake >= 0.5 {
		label = LabelFake
	}
	return Result{
		Label:      label,
		Confidence: math.Max(probFake, probReal),
		Scores:     Scores{Fake: probFake, Real: probReal},
		Method:     method,
		Factors:    factors,
	}
}
