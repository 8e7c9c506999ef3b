package models_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/newsletter-press/internal/models"
)

func date(s string) *time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"y", true},
		{"oui", true},
		{"OUI", true},
		{"  oui  ", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"non", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := models.ParsePublished(tt.token); got != tt.want {
				t.Errorf("ParsePublished(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestPublishedNormalizationIdempotent(t *testing.T) {
	// Normalizing a value already in the on-disk form is a no-op
	for _, b := range []bool{true, false} {
		if got := models.ParsePublished(models.FormatPublished(b)); got != b {
			t.Errorf("round trip of %v yielded %v", b, got)
		}
	}
	if models.FormatPublished(true) != "TRUE" || models.FormatPublished(false) != "FALSE" {
		t.Errorf("FormatPublished produced %q/%q, want TRUE/FALSE",
			models.FormatPublished(true), models.FormatPublished(false))
	}
}

func TestParseDate(t *testing.T) {
	if d := models.ParseDate("2024-05-01"); d == nil || d.Format(models.DateLayout) != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %v", d)
	}
	if d := models.ParseDate("2024-05-01 10:30:00"); d == nil {
		t.Error("expected datetime form to parse")
	}
	for _, bad := range []string{"", "not-a-date", "05/01/2024"} {
		if d := models.ParseDate(bad); d != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", bad, d)
		}
	}
}

func TestNewEditionID(t *testing.T) {
	d, _ := time.Parse(models.DateLayout, "2024-05-01")
	now := time.Unix(1714560000, 0)

	id := models.NewEditionID(d, "fr", now)
	if id != "20240501-fr-1714560000" {
		t.Errorf("unexpected edition ID %q", id)
	}
	if !regexp.MustCompile(`^20240501-fr-\d+$`).MatchString(id) {
		t.Errorf("edition ID %q does not match the expected pattern", id)
	}
}

func TestSortedOrder(t *testing.T) {
	c := models.Collection{
		{EditionID: "a", Date: date("2024-01-01")},
		{EditionID: "b", Date: nil},
		{EditionID: "c", Date: date("2024-03-01")},
	}

	sorted := c.Sorted()
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if sorted[i].EditionID != id {
			t.Fatalf("position %d: got %q, want %q", i, sorted[i].EditionID, id)
		}
	}

	// Input order must be untouched
	if c[0].EditionID != "a" {
		t.Error("Sorted mutated the input collection")
	}
}

func TestSortedTieBreak(t *testing.T) {
	c := models.Collection{
		{EditionID: "20240101-en-100", Date: date("2024-01-01")},
		{EditionID: "20240101-en-200", Date: date("2024-01-01")},
	}

	sorted := c.Sorted()
	if sorted[0].EditionID != "20240101-en-200" {
		t.Errorf("equal dates should break ties by descending ID, got %q first", sorted[0].EditionID)
	}
}

func TestPrepend(t *testing.T) {
	c := models.Collection{{EditionID: "old"}}
	e := models.Edition{EditionID: "new"}

	out := c.Prepend(e)
	if len(out) != 2 || out[0].EditionID != "new" || out[1].EditionID != "old" {
		t.Fatalf("unexpected prepend result: %+v", out)
	}
	if len(c) != 1 {
		t.Error("Prepend mutated the input collection")
	}

	// No deduplication: prepending the same edition twice yields two rows
	again := out.Prepend(e)
	if len(again) != 3 {
		t.Errorf("expected 3 rows after duplicate prepend, got %d", len(again))
	}
}

func TestLatestPublished(t *testing.T) {
	c := models.Collection{
		{EditionID: "1", Date: date("2024-01-01"), Language: "fr", Published: true},
		{EditionID: "2", Date: date("2024-02-01"), Language: "FR", Published: true},
		{EditionID: "3", Date: date("2024-03-01"), Language: "fr", Published: false},
		{EditionID: "4", Date: date("2024-02-15"), Language: "en", Published: true},
	}

	latest, ok := c.LatestPublished("fr")
	if !ok {
		t.Fatal("expected a latest fr edition")
	}
	// Draft 3 is newer but unpublished; language compare is case-insensitive
	if latest.EditionID != "2" {
		t.Errorf("expected edition 2, got %q", latest.EditionID)
	}

	if _, ok := c.LatestPublished("de"); ok {
		t.Error("expected no edition for an unknown language")
	}
}

func TestFilter(t *testing.T) {
	c := models.Collection{
		{EditionID: "1", Title: "Semaine 1", ContentMD: "**bold** tips"},
		{EditionID: "2", Title: "Week 2", ContentMD: "plain"},
	}

	if got := c.Filter("semaine"); len(got) != 1 || got[0].EditionID != "1" {
		t.Errorf("title search failed: %+v", got)
	}
	if got := c.Filter("BOLD"); len(got) != 1 || got[0].EditionID != "1" {
		t.Errorf("content search failed: %+v", got)
	}
	if got := c.Filter(""); len(got) != 2 {
		t.Errorf("empty query should return everything, got %d", len(got))
	}
	if got := c.Filter("absent"); len(got) != 0 {
		t.Errorf("expected no match, got %d", len(got))
	}
}
