package aggregation

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-screener/internal/types"
)

// Masked replaces the value of a sensitive key
const Masked = "***MASKED***"

// sensitiveKeys are matched as substrings of lowercased metadata keys
var sensitiveKeys = []string{"password", "token", "secret", "api_key", "private_key", "email", "phone"}

// MaskSensitive returns a copy of data with sensitive keys masked, recursing into
// nested maps and slices. A nil map stays nil.
func MaskSensitive(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	masked := make(map[string]any, len(data))
	for key, value := range data {
		if isSensitiveKey(key) {
			masked[key] = Masked
			continue
		}
		masked[key] = maskValue(value)
	}
	return masked
}

func maskValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return MaskSensitive(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = maskValue(item)
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// MaskContact keeps enough of each contact field to recognize it in an audit trail:
// initials of the name, the first letter and domain of the email, the last four phone digits.
func MaskContact(c types.Contact) map[string]string {
	out := make(map[string]string)
	if c.Name != nil {
		out["name"] = maskName(*c.Name)
	}
	if c.Email != nil {
		out["email"] = maskEmail(*c.Email)
	}
	if c.Phone != nil {
		out["phone"] = maskPhone(*c.Phone)
	}
	return out
}

func maskName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		words[i] = string(r) + "***"
	}
	return strings.Join(words, " ")
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return Masked
	}
	r, _ := utf8.DecodeRuneInString(email)
	return string(r) + "***" + email[at:]
}

func maskPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return "***"
	}
	return "***" + string(digits[len(digits)-4:])
}
