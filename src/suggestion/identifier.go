package suggestion

import (
	"regexp"
	"strconv"
	"strings"
)

// Identifier is the textual reference to a suggestion: a sequence number,
// optionally followed by an extension letter ("42", "42b"). Either field
// may be absent after parsing arbitrary input.
type Identifier struct {
	Number    *int64
	Extension string
}

var (
	identifierLead   = regexp.MustCompile(`^\*{0,2}#?`)
	identifierTrail  = regexp.MustCompile(`:?\*{0,2}:?$`)
	identifierDigits = regexp.MustCompile(`\d+`)
	identifierLetter = regexp.MustCompile(`(?i)[b-z]$`)
)

// ParseIdentifier extracts a sequence number and an extension letter from
// free-form text. Emphasis markers, a leading "#" and trailing punctuation
// are stripped first, so "**#42b:**" parses the same as "42b". The number
// (first run of digits) and the trailing letter are extracted independently
// from the stripped text; either may be absent. The letter is normalized to
// lowercase. Never fails: unparseable input yields absent fields.
func ParseIdentifier(input string) Identifier {
	input = strings.TrimSpace(input)
	input = identifierLead.ReplaceAllString(input, "")
	input = identifierTrail.ReplaceAllString(input, "")

	var ident Identifier
	if digits := identifierDigits.FindString(input); digits != "" {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			ident.Number = &n
		}
	}
	if letter := identifierLetter.FindString(input); letter != "" {
		ident.Extension = strings.ToLower(letter)
	}
	return ident
}

// IsExtensionIdentifier reports whether input names an extension record:
// both a number and a letter must parse. A bare number is not an extension
// identifier even though it may name a valid top-level suggestion; callers
// wanting "names anything at all" should check ParseIdentifier themselves.
func IsExtensionIdentifier(input string) bool {
	ident := ParseIdentifier(input)
	return ident.Number != nil && ident.Extension != ""
}

// FormatIdentifier renders the canonical form: the number immediately
// followed by the lowercase extension letter, no separator ("50c"). With no
// extension the bare number is returned.
func FormatIdentifier(number int64, extension string) string {
	return strconv.FormatInt(number, 10) + strings.ToLower(extension)
}

// String renders the canonical text of a parsed identifier, or "" when no
// number was extracted.
func (i Identifier) String() string {
	if i.Number == nil {
		return ""
	}
	return FormatIdentifier(*i.Number, i.Extension)
}
