package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used in the persisted file and the API.
const DateLayout = "2006-01-02"

// Edition represents one published or draft newsletter edition
type Edition struct {
	EditionID string     `json:"edition_id"`
	Date      *time.Time `json:"date,omitempty"`
	Language  string     `json:"language"`
	Title     string     `json:"title"`
	ContentMD string     `json:"content_md"`
	Published bool       `json:"published"`
}

// SupportedLanguages defines the language codes the authoring surface accepts
var SupportedLanguages = map[string]bool{
	"en": true,
	"fr": true,
}

// truthyTokens are the accepted spellings of "published" on disk
var truthyTokens = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"y":    true,
	"oui":  true,
}

// ParsePublished normalizes a free-form published flag. Tokens are matched
// case-insensitively; everything outside the truthy set is false.
func ParsePublished(s string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(s))]
}

// FormatPublished renders a published flag in the on-disk form
func FormatPublished(published bool) string {
	if published {
		return "TRUE"
	}
	return "FALSE"
}

// ParseDate parses a calendar date. Unparseable input yields nil, never an
// error: a row with a bad date is kept and sorted last.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{DateLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// FormatDate renders a date in the on-disk form; nil renders empty
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// NewEditionID builds an edition identifier from the publish date, the
// language code and a unix-timestamp suffix. The suffix exists solely to
// keep IDs unique when several editions share a date and language.
func NewEditionID(date time.Time, language string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", date.Format("20060102"), language, now.Unix())
}

// Collection is the ordered sequence of editions backing the newsletter
type Collection []Edition

// Clone returns a shallow copy safe to hand out from a shared cache
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Prepend returns a new collection with e first. It never deduplicates:
// authoring the same content twice yields two rows.
func (c Collection) Prepend(e Edition) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, e)
	out = append(out, c...)
	return out
}

// Sorted returns a copy in display order: date descending with nil dates
// last, ties broken by edition_id descending.
func (c Collection) Sorted() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a == nil && b == nil:
			return out[i].EditionID > out[j].EditionID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return out[i].EditionID > out[j].EditionID
		default:
			return a.After(*b)
		}
	})
	return out
}

// Filter returns the editions whose title or body contains q,
// case-insensitively. An empty query returns the collection unchanged.
func (c Collection) Filter(q string) Collection {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c
	}
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.ContentMD), q) {
			out = append(out, e)
		}
	}
	return out
}

// FilterLanguage returns the editions tagged with the given language code,
// compared case-insensitively. An empty code returns the collection unchanged.
func (c Collection) FilterLanguage(language string) Collection {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return c
	}
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if strings.ToLower(e.Language) == language {
			out = append(out, e)
		}
	}
	return out
}

// FindByID returns the edition with the given ID, or false when absent
func (c Collection) FindByID(id string) (Edition, bool) {
	for _, e := range c {
		if e.EditionID == id {
			return e, true
		}
	}
	return Edition{}, false
}

// LatestPublished returns the most recent published edition for a language,
// or false when no such edition exists.
func (c Collection) LatestPublished(language string) (Edition, bool) {
	for _, e := range c.Sorted() {
		if e.Published && strings.EqualFold(e.Language, language) {
			return e, true
		}
	}
	return Edition{}, false
}

// EditionInput is the authoring payload accepted by the admin surface.
// ContentHTML, when set, is converted to markdown before storage.
type EditionInput struct {
	Date        string `json:"date"`
	Language    string `json:"language"`
	Title       string `json:"title"`
	ContentMD   string `json:"content_md"`
	ContentHTML string `json:"content_html,omitempty"`
	Published   bool   `json:"published"`
}
