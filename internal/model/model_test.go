package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_job_model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validArtifact = `{
	"model_version": "2024-05-01",
	"classes": ["real", "fake"],
	"bias": -1.0,
	"weights": {"whatsapp": 2.5, "benefits": -0.75}
}`

func TestLoad_Valid(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))

	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", m.ModelVersion)
	assert.Equal(t, []string{"real", "fake"}, m.Classes())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_InvalidArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt json", `{"classes": ["real", "fa`},
		{"no weights", `{"classes": ["real", "fake"], "bias": 0.0}`},
		{"empty weights", `{"classes": ["real", "fake"], "bias": 0.0, "weights": {}}`},
		{"too many classes", `{"classes": ["a", "b", "c"], "bias": 0.0, "weights": {"x": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeArtifact(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DefaultsClassesWhenOmitted(t *testing.T) {
	m, err := Load(writeArtifact(t, `{"bias": 0.0, "weights": {"x": 1}}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"real", "fake"}, m.Classes())
}

func TestPredictProba_SumsToOne(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))
	require.NoError(t, err)

	proba, err := m.PredictProba("title: Assistant\ncompany: Acme\ndescription: contact whatsapp")
	require.NoError(t, err)
	require.Len(t, proba, 2)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-12)
}

func TestPredictProba_WeightsShiftProbability(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))
	require.NoError(t, err)

	scam, err := m.PredictProba("contact whatsapp now")
	require.NoError(t, err)
	clean, err := m.PredictProba("competitive salary and benefits")
	require.NoError(t, err)

	// "fake" is the second class in this artifact.
	assert.Greater(t, scam[1], clean[1])
	// bias -1.0 + whatsapp 2.5 puts the scam text over 0.5
	assert.Greater(t, scam[1], 0.5)
	assert.Less(t, clean[1], 0.5)
}

func TestPredictProba_TokenCountedPerOccurrence(t *testing.T) {
	m, err := Load(writeArtifact(t, validArtifact))
	require.NoError(t, err)

	once, err := m.PredictProba("whatsapp")
	require.NoError(t, err)
	twice, err := m.PredictProba("whatsapp whatsapp")
	require.NoError(t, err)

	assert.Greater(t, twice[1], once[1])
}

func TestPredictProba_ClassOrderRespected(t *testing.T) {
	reversed := `{
		"classes": ["fake", "real"],
		"bias": 5.0,
		"weights": {"x": 1}
	}`
	m, err := Load(writeArtifact(t, reversed))
	require.NoError(t, err)

	proba, err := m.PredictProba("anything")
	require.NoError(t, err)

	// High bias drives the positive ("fake") probability up; it must land at
	// index 0 for this class order.
	assert.Greater(t, proba[0], 0.9)
	assert.Less(t, proba[1], 0.1)
}

func TestBackendLoader_PropagatesLoadErrors(t *testing.T) {
	load := BackendLoader(filepath.Join(t.TempDir(), "absent.json"))

	backend, err := load()
	assert.Error(t, err)
	assert.Nil(t, backend)
}

func TestTokenize(t *testing.T) {
	got := tokenize("Title: Remote Clerk, earn $1000/day!")
	assert.Equal(t, []string{"title", "remote", "clerk", "earn", "1000", "day"}, got)
}
