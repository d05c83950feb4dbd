package track

import "regexp"

var uuidPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
)

// IsUUID reports whether s is a canonical hyphenated UUID. Anything
// else (including braced, URN or unhyphenated forms) is treated as a
// shortid.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// Selector identifies a single email record either by canonical id or
// by shortid.
type Selector struct {
	ByID  bool
	Value string
}

// ParseSlug classifies a path slug into a record selector.
func ParseSlug(slug string) Selector {
	return Selector{ByID: IsUUID(slug), Value: slug}
}
