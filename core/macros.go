package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smartystreets/clock"
)

// MacroResolver expands the path template macros [target], [YYYY], [MM],
// [DD], [HH], [TT] (minutes) and [SS]. Macro names are case-insensitive.
type MacroResolver struct {
	clock *clock.Clock
}

func NewMacroResolver() *MacroResolver {
	return &MacroResolver{}
}

func (this *MacroResolver) Resolve(template, target string) string {
	now := this.clock.UTCNow().Local()
	return macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		switch strings.ToUpper(macro) {
		case "[TARGET]":
			return TargetSlug(target)
		case "[YYYY]":
			return fmt.Sprintf("%04d", now.Year())
		case "[MM]":
			return fmt.Sprintf("%02d", int(now.Month()))
		case "[DD]":
			return fmt.Sprintf("%02d", now.Day())
		case "[HH]":
			return fmt.Sprintf("%02d", now.Hour())
		case "[TT]":
			return fmt.Sprintf("%02d", now.Minute())
		default:
			return fmt.Sprintf("%02d", now.Second())
		}
	})
}

// TargetSlug renders a target URL as a file-name friendly value such as
// "www-acme-com+folder1+folder2".
func TargetSlug(target string) string {
	slug := strings.ToLower(target)
	slug = strings.ReplaceAll(slug, "http://", "")
	slug = strings.ReplaceAll(slug, "https://", "")
	slug = strings.TrimSuffix(slug, "/")
	slug = strings.ReplaceAll(slug, ".", "-")
	slug = strings.ReplaceAll(slug, "/", "+")
	return slugDisallowed.ReplaceAllString(slug, "")
}

var (
	macroPattern   = regexp.MustCompile(`(?i)\[(target|yyyy|mm|dd|hh|tt|ss)\]`)
	slugDisallowed = regexp.MustCompile(`[^a-z0-9+-]`)
)
