package pipeline

import (
	"strings"

	"qc/internal/models"
	"qc/internal/result"
)

// ValidateRequired is the single path producing "missing input" failures.
func ValidateRequired[T any](v *T, onMissing models.Kind) result.Result[T] {
	if v == nil {
		return result.Fail[T](&models.Error{Kind: onMissing})
	}
	return result.Ok(*v)
}

// Optional treats an empty or blank string as absent.
func Optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return Optional(s)
}
