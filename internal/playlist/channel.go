package playlist

import (
	"regexp"
	"strings"
)

// Category names one of the two independent channel lists.
type Category string

const (
	TV    Category = "tv"
	Radio Category = "radio"
)

// Badge is the uppercase label shown on channel cards and tabs.
func (c Category) Badge() string { return strings.ToUpper(string(c)) }

// Channel is one parsed playlist entry. Immutable once produced by Parse.
type Channel struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Slug     string   `json:"slug"`
	Category Category `json:"type"`
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonSlugRE    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRE  = regexp.MustCompile(`-+`)
)

// Slugify derives the stable identifier used for share links, history
// matching and highlight comparison. Idempotent: slugs pass through
// unchanged.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = whitespaceRE.ReplaceAllString(s, "-")
	s = nonSlugRE.ReplaceAllString(s, "")
	s = hyphenRunRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
