//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-screener/internal/schemas"
	embedded "github.com/jonathan/resume-screener/schemas"
)

// ParseRequirementSpec decodes a requirement document, checking it against
// requirement_spec.schema.json before decoding and Validate after.
func ParseRequirementSpec(data []byte, canon SkillCanonicalizer) (*RequirementSpec, error) {
	if err := schemas.ValidateEmbedded(embedded.RequirementSpec, data); err != nil {
		return nil, &InvalidRequirementError{Message: err.Error()}
	}

	var spec RequirementSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, &InvalidRequirementError{Message: fmt.Sprintf("failed to decode: %v", err)}
	}

	if err := spec.Validate(canon); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadRequirementSpec reads and parses a requirement file
func LoadRequirementSpec(path string, canon SkillCanonicalizer) (*RequirementSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirement file %s: %w", path, err)
	}
	return ParseRequirementSpec(data, canon)
}
