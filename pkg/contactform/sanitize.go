package contactform

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     = bluemonday.StrictPolicy()
	scriptURIPattern = regexp.MustCompile(`(?i)javascript\s*:`)
	eventAttrPattern = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
	delimiterStrip   = strings.NewReplacer("<", "", ">", "")
)

// Sanitize strips markup from free text: tags (dropping script and style
// contents), javascript: prefixes and inline event handler attributes. Entities
// are decoded back to literal characters and the result is trimmed.
//
// The output never contains '<' or '>' and Sanitize(Sanitize(s)) == Sanitize(s).
// Values embedded into HTML must still be escaped on output.
func Sanitize(input string) string {
	current := strings.ToValidUTF8(input, "\uFFFD")
	// Every pass that changes the string shortens it, so the loop reaches a
	// fixed point well before the bound.
	for pass := 0; pass <= len(current); pass++ {
		next := sanitizePass(current)
		if next == current {
			// Decoded entities may have produced stray delimiters that are not
			// part of any tag; drop them and settle again.
			next = strings.TrimSpace(delimiterStrip.Replace(current))
			if next == current {
				return current
			}
		}
		current = next
	}
	return strings.TrimSpace(delimiterStrip.Replace(current))
}

func sanitizePass(input string) string {
	clean := unescapeAll(strictPolicy.Sanitize(input))
	clean = scriptURIPattern.ReplaceAllString(clean, "")
	clean = eventAttrPattern.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// unescapeAll decodes nested entity encodings such as "&amp;amp;lt;" in one go
// so the policy sees any markup they were hiding on the next pass.
func unescapeAll(s string) string {
	for {
		next := html.UnescapeString(s)
		if next == s {
			return s
		}
		s = next
	}
}
