package core

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/smartystreets/sourcecheck/contracts"
)

// MaskMatches reports whether name fits mask. The masks "*" and "*.*" match
// everything (even names without a dot). Otherwise matching is anchored,
// case-insensitive and '*' is the only wildcard.
func MaskMatches(mask, name string) bool {
	if mask == "*" || mask == "*.*" {
		return true
	}
	matched, err := doublestar.Match(compileMask(mask), flattenSeparators(strings.ToLower(name)))
	return err == nil && matched
}

// LookupExpectation returns the label of the first rule whose mask matches
// name, or "" when none does.
func LookupExpectation(rules []contracts.ExpectationRule, name string) string {
	for _, rule := range rules {
		if MaskMatches(rule.Mask, name) {
			return rule.Label
		}
	}
	return ""
}

func compileMask(mask string) string {
	var pattern strings.Builder
	for _, character := range flattenSeparators(strings.ToLower(mask)) {
		if strings.ContainsRune(patternMetaCharacters, character) {
			pattern.WriteRune('\\')
		}
		pattern.WriteRune(character)
	}
	return pattern.String()
}

// flattenSeparators hides '/' from the glob engine so that '*' spans it.
func flattenSeparators(value string) string {
	return strings.ReplaceAll(value, "/", separatorStandIn)
}

const (
	patternMetaCharacters = `\?[]{}!^`
	separatorStandIn      = "\x00"
)
