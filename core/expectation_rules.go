package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smartystreets/sourcecheck/contracts"
)

const DefaultMaxExpectationRules = 4096

// ParseExpectationRules reads one "mask label" pair per line. The first space
// separates mask from label and both are lower-cased. Blank lines and comment
// lines are skipped.
func ParseExpectationRules(reader io.Reader, maxRules int) (rules []contracts.ExpectationRule, err error) {
	scanner := bufio.NewScanner(reader)
	for number := 1; scanner.Scan(); number++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, contracts.CommentMarker) {
			continue
		}
		mask, label, found := strings.Cut(line, " ")
		label = strings.TrimSpace(label)
		if !found || label == "" {
			return nil, fmt.Errorf("%w (line %d): %q", malformedRuleErr, number, line)
		}
		if maxRules > 0 && len(rules) >= maxRules {
			return nil, fmt.Errorf("%w: at most %d rules are supported", tooManyRulesErr, maxRules)
		}
		rules = append(rules, contracts.ExpectationRule{
			Mask:  strings.ToLower(mask),
			Label: strings.ToLower(label),
		})
	}
	return rules, scanner.Err()
}

var (
	malformedRuleErr = errors.New("unparsable expectation rule")
	tooManyRulesErr  = errors.New("too many expectation rules")
)
