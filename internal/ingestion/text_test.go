package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeBulletLists(t *testing.T) {
	input := "- Item 1\n• Item 2\n* Item 3\n▪   Item 4"
	result := CleanLines(input)

	assert.Equal(t, []string{"- Item 1", "- Item 2", "- Item 3", "- Item 4"}, result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with  \t  multiple    spaces"
	result := CleanText(input)

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_CollapseBlankLines(t *testing.T) {
	input := "\n\nLine 1\n\n\n   \n\nLine 2\n\n"
	result := CleanLines(input)

	assert.Equal(t, []string{"Line 1", "", "Line 2"}, result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\fLine 4"
	result := CleanText(input)

	assert.NotContains(t, result, "\r")
	assert.Equal(t, []string{"Line 1", "Line 2", "Line 3", "Line 4"}, strings.Split(result, "\n"))
}

func TestCleanText_StripsControlCharacters(t *testing.T) {
	input := "Jane\x00 Doe\x07\n\uFEFFSkills\u200B"
	result := CleanLines(input)

	assert.Equal(t, []string{"Jane Doe", "Skills"}, result)
}

func TestCleanText_EmptyBullet(t *testing.T) {
	assert.Empty(t, CleanLines("•   \n  "))
	assert.Empty(t, CleanLines("•\n●\n-"))
}

func TestCleanText_DashNotFollowedBySpaceIsText(t *testing.T) {
	assert.Equal(t, []string{"-5 years on call", "- Item"}, CleanLines("-5 years on call\n•  Item"))
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"

	result1 := CleanText(input)
	result2 := CleanText(input)

	assert.Equal(t, result1, result2)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Nil(t, CleanLines(""))
	assert.Equal(t, "", CleanText("   \n\t\n"))
}
