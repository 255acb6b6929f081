package fop

import "strings"

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// By represents a field used to order by and direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a new By value with no checks.
func NewBy(field string, direction string) By {
	return By{
		Field:     field,
		Direction: direction,
	}
}

// ParseDirection maps caller input to ASC or DESC. Anything that is not
// a recognizable descending marker orders ascending.
func ParseDirection(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case DESC, "DESCENDING", "-1":
		return DESC
	default:
		return ASC
	}
}
