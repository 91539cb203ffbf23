// Package schemas embeds the JSON Schema documents for the screener's external data formats.
package schemas

import "embed"

// Files holds every *.schema.json in this directory
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	Vocabulary      = "vocabulary.schema.json"
	RequirementSpec = "requirement_spec.schema.json"
	MatchResult     = "match_result.schema.json"
)
