// Package dateutil resolves the deck date field: literal text, "auto", or
// "auto:FORMAT" with user-friendly tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

const (
	// MaxDateFormatLength limits format string length.
	MaxDateFormatLength = 50

	// DefaultDateFormat is used for a bare "auto".
	DefaultDateFormat = "YYYY-MM-DD"

	autoKeyword = "auto"
)

// tokenLayouts rewrites date tokens to Go layout components. Longer tokens
// are listed first and the replacer tries them in order, so "MMMM" wins
// over "MM" at the same position.
var tokenLayouts = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"dddd", "Monday",
	"MMM", "Jan",
	"ddd", "Mon",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// DatePresets are named formats accepted after "auto:".
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"month":    "MMMM YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// ParseDateFormat converts a token format to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd.
// Text in brackets is copied literally: "[Week of] MMM D".
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest := format
	for rest != "" {
		tokens, literal, hasLiteral := strings.Cut(rest, "[")
		layout.WriteString(tokenLayouts.Replace(tokens))
		if !hasLiteral {
			break
		}
		text, after, closed := strings.Cut(literal, "]")
		if !closed {
			pos := len(format) - len(literal) - 1
			return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
		}
		layout.WriteString(text)
		rest = after
	}
	return layout.String(), nil
}

// ResolveDate expands "auto" (DefaultDateFormat), "auto:FORMAT" and
// "auto:PRESET" against t. Any other value is returned unchanged.
// The keyword and preset names are case-insensitive.
func ResolveDate(value string, t time.Time) (string, error) {
	format, ok, err := autoFormat(value)
	if err != nil {
		return "", err
	}
	if !ok {
		return value, nil
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// autoFormat extracts the token format of an auto value. ok is false for
// literal values.
func autoFormat(value string) (format string, ok bool, err error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoKeyword) {
		return "", false, nil
	}
	if lower == autoKeyword {
		return DefaultDateFormat, true, nil
	}

	rest, found := strings.CutPrefix(value[len(autoKeyword):], ":")
	if !found {
		return "", false, fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}
	if rest == "" {
		return "", false, fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, isPreset := DatePresets[strings.ToLower(rest)]; isPreset {
		return preset, true, nil
	}
	return rest, true, nil
}
