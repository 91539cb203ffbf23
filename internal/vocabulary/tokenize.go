package vocabulary

import (
	"strings"
	"unicode"
)

// Token is a word-like run of text with its byte offsets in the source string
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text into skill tokens. Letters, digits and the characters
// '+', '#' and '.' are word characters so "C++", "C#" and "Node.js" survive;
// trailing dots are dropped so "Python." tokenizes as "Python".
func Tokenize(text string) []Token {
	tokens := make([]Token, 0)
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		trimmed := strings.TrimRight(word, ".")
		if trimmed != "" && trimmed != "+" && trimmed != "#" {
			tokens = append(tokens, Token{Text: trimmed, Start: start, End: start + len(trimmed)})
		}
		start = -1
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

// PhraseKey joins token texts with single spaces, lowercased unless exact is set
func PhraseKey(tokens []Token, exact bool) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if exact {
			parts[i] = t.Text
		} else {
			parts[i] = strings.ToLower(t.Text)
		}
	}
	return strings.Join(parts, " ")
}
