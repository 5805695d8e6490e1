// Package textfilter keeps the wizard's replies fit for a family village by
// swapping profanity for milder words.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps each filtered word to its family-friendly alternative.
// Longer words are listed before words they contain.
var replacements = []struct {
	word        string
	replacement string
}{
	{"motherfucker", "mother-trucker"},
	{"bullshit", "baloney"},
	{"horseshit", "nonsense"},
	{"goddamn", "gosh-dang"},
	{"asshole", "jerk"},
	{"dumbass", "dummy"},
	{"jackass", "donkey"},
	{"bastard", "scoundrel"},
	{"bitch", "jerk"},
	{"fuck", "fudge"},
	{"shit", "shoot"},
	{"damn", "dang"},
	{"hell", "heck"},
	{"crap", "crud"},
	{"piss", "ticked"},
	{"ass", "donkey"},
}

// ProfanityFilter handles filtering and replacement of profanity
type ProfanityFilter struct {
	regexes []*regexp.Regexp
}

// NewProfanityFilter creates a new profanity filter
func NewProfanityFilter() *ProfanityFilter {
	pf := &ProfanityFilter{regexes: make([]*regexp.Regexp, len(replacements))}
	for i, r := range replacements {
		// Whole words only, with an optional plural "s" kept on the replacement
		pf.regexes[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.word) + `(s?)\b`)
	}
	return pf
}

// FilterText replaces profanity in the input text with family-friendly alternatives
func (pf *ProfanityFilter) FilterText(text string) string {
	result := text
	for i, r := range replacements {
		replacement := r.replacement
		result = pf.regexes[i].ReplaceAllStringFunc(result, func(match string) string {
			base, plural := match, ""
			if len(match) > len(r.word) {
				base, plural = match[:len(r.word)], match[len(r.word):]
			}
			return preserveCase(base, replacement) + plural
		})
	}
	return result
}

// ContainsProfanity checks if the text contains any profanity
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	for _, re := range pf.regexes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the replacement
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	// All uppercase
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}

	// All lowercase
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	// Title case (first letter uppercase, rest lowercase)
	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case - copy the pattern character by character
	result := make([]rune, 0, len(replacement))
	originalRunes := []rune(original)
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}

// ShouldFilterContent determines if content should be filtered based on rating
func ShouldFilterContent(rating string) bool {
	rating = strings.ToUpper(strings.TrimSpace(rating))
	switch rating {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}
