package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dangerousChars    = regexp.MustCompile(`[;'"\\()\s]`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	likeEscaper       = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// QuoteIdentifier validates and quotes a column or table identifier. A
// single qualifier is allowed (table.column or schema.table); each segment
// is quoted separately.
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("identifier is empty")
	}
	if dangerousChars.MatchString(name) {
		return "", fmt.Errorf("identifier contains dangerous characters: %s", name)
	}

	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %s", name)
	}

	quoted := make([]string, len(segments))
	for i, segment := range segments {
		if !identifierPattern.MatchString(segment) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %s", i, segment)
		}
		quoted[i] = `"` + segment + `"`
	}

	return strings.Join(quoted, "."), nil
}

// QuoteAlias quotes name as a single output column label. The label may
// contain a dot, it is never split.
func QuoteAlias(name string) (string, error) {
	if _, err := QuoteIdentifier(name); err != nil {
		return "", err
	}
	return `"` + name + `"`, nil
}

// EscapeLike escapes LIKE wildcards so term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
