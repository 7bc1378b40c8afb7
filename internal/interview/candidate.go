package interview

import (
	"regexp"
	"strings"
)

var leadingAlpha = regexp.MustCompile(`^[a-zA-Z]+`)

// Candidate identifies the person being interviewed. The ID is an opaque key
// supplied by the caller.
type Candidate struct {
	ID string
}

// DisplayName derives a friendly name from the candidate ID: the leading
// alphabetic run, capitalized. Falls back to "User" when the ID does not
// start with a letter.
func (c Candidate) DisplayName() string {
	match := leadingAlpha.FindString(strings.TrimSpace(c.ID))
	if match == "" {
		return "User"
	}
	return strings.ToUpper(match[:1]) + strings.ToLower(match[1:])
}
