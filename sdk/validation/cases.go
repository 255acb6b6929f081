package validation

import (
	"strings"
	"unicode"
)

// FieldLabel turns a field name into a human readable label. Underscores
// separate words and camelCase boundaries start a new word.
//
//	"user_status_id"       -> "User status id"
//	"userStatusName"       -> "User status name"
//	"PasswordConfirmation" -> "Password confirmation"
func FieldLabel(s string) string {
	words := strings.Fields(strings.ReplaceAll(CamelCaseToTitleCase(s), "_", " "))
	for i, w := range words {
		if i == 0 {
			words[i] = upperFirst(w)
			continue
		}
		if !isAcronym(w) {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

// CamelCaseToTitleCase converts a camelCase string to Title Case with spaces
// Example: "caseStudy" -> "Case Study"
// Example: "XMLParser" -> "XML Parser"
func CamelCaseToTitleCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if i == 0 {
			result.WriteRune(unicode.ToUpper(r))
			continue
		}

		if unicode.IsUpper(r) {
			// camelCase boundary, or the end of an acronym as in "XMLParser"
			prevIsLower := unicode.IsLower(runes[i-1])
			prevIsUpper := unicode.IsUpper(runes[i-1])
			nextIsLower := i < len(runes)-1 && unicode.IsLower(runes[i+1])

			if prevIsLower || (prevIsUpper && nextIsLower) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return result.String()
}

func upperFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func isAcronym(w string) bool {
	runes := []rune(w)
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
