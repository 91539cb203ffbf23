package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirementSpec(t *testing.T) {
	data := []byte(`{
		"id": "backend-1",
		"required_skills": [{"name": "Python", "weight": 1.0}, {"name": "Rust", "weight": 1.0}],
		"preferred_skills": [{"name": "Docker", "weight": 0.5}],
		"min_experience_months": 24,
		"min_education": "bachelor",
		"strategy": "weighted_linear",
		"normalize_weights": true
	}`)

	spec, err := ParseRequirementSpec(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "backend-1", spec.ID)
	assert.Len(t, spec.RequiredSkills, 2)
	assert.Equal(t, EducationBachelor, spec.MinEducation)
	assert.Equal(t, 24, spec.MinExperienceMonths)
	assert.True(t, spec.NormalizeWeights)
}

func TestParseRequirementSpec_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown field", `{"required_skills": [], "salary": 10}`},
		{"unknown strategy", `{"strategy": "vibes"}`},
		{"negative weight", `{"required_skills": [{"name": "Go", "weight": -1}]}`},
		{"negative experience", `{"min_experience_months": -3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequirementSpec([]byte(tt.data), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequirement)
		})
	}
}

func TestLoadRequirementSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"required_skills": [{"name": "Go", "weight": 2}]}`), 0o600))

	spec, err := LoadRequirementSpec(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go", spec.RequiredSkills[0].Name)

	_, err = LoadRequirementSpec(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
