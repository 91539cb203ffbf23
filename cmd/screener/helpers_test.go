package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const alexResume = "Alex Kim\nalex@example.com\n\nSkills: Python, Go\n"

const backendRequirement = `{
	"id": "backend",
	"required_skills": [{"name": "Python", "weight": 1.0}, {"name": "Rust", "weight": 1.0}],
	"min_experience_months": 0,
	"min_education": "none",
	"strategy": "weighted_linear"
}`

// resetFlags restores every package-level flag variable, since cobra keeps values between Execute calls
func resetFlags() {
	configFile, flagVocabulary, flagEvalDate, flagOutput = "", "", "2024-06", ""
	flagDatabase, flagActorID = "", ""
	flagWorkers = 0
	flagCache, flagVerbose, flagDebug, flagJSONLog = false, false, false, false
	matchRequirements = nil
	screenRequirement, screenPassedOnly = "", false
	resultsLimit = 0
	app = nil
}

// execute runs the root command in-process and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--evaluation-date", "2024-06"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
