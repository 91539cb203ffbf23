// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EducationLevel is an ordinal degree level.
// none < high_school < associate < bachelor < master < doctorate
type EducationLevel int

// Education levels in ascending order
const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

var educationLevelNames = map[EducationLevel]string{
	EducationNone:       "none",
	EducationHighSchool: "high_school",
	EducationAssociate:  "associate",
	EducationBachelor:   "bachelor",
	EducationMaster:     "master",
	EducationDoctorate:  "doctorate",
}

// ParseEducationLevel parses a level name such as "bachelor" or "high-school".
func ParseEducationLevel(s string) (EducationLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "" {
		return EducationNone, nil
	}
	for level, name := range educationLevelNames {
		if name == key {
			return level, nil
		}
	}
	return EducationNone, fmt.Errorf("unknown education level %q", s)
}

// Ordinal returns the numeric rank of the level
func (l EducationLevel) Ordinal() int {
	return int(l)
}

// Valid reports whether l is one of the defined levels
func (l EducationLevel) Valid() bool {
	_, ok := educationLevelNames[l]
	return ok
}

func (l EducationLevel) String() string {
	if name, ok := educationLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("EducationLevel(%d)", int(l))
}

// MarshalJSON encodes the level by name
func (l EducationLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts a level name
func (l *EducationLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("education level must be a string: %w", err)
	}
	level, err := ParseEducationLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}
