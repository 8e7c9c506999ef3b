package benchmark

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/newsletter-press/internal/models"
	"github.com/newsletter-press/internal/repository"
)

func sampleCollection(n int) models.Collection {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := make(models.Collection, n)
	for i := 0; i < n; i++ {
		d := base.AddDate(0, 0, i%365)
		c[i] = models.Edition{
			EditionID: models.NewEditionID(d, "fr", base.Add(time.Duration(i)*time.Second)),
			Date:      &d,
			Language:  "fr",
			Title:     fmt.Sprintf("Semaine %d, édition spéciale", i),
			ContentMD: "Some **markdown** body with a comma, quotes \"here\" and\na second line.",
			Published: i%3 != 0,
		}
	}
	return c
}

// BenchmarkEncodeCollection benchmarks the whole-file CSV rewrite on save
func BenchmarkEncodeCollection(b *testing.B) {
	c := sampleCollection(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := repository.EncodeCollection(&buf, c); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkDecodeCollection benchmarks parsing plus column normalization
func BenchmarkDecodeCollection(b *testing.B) {
	var buf bytes.Buffer
	if err := repository.EncodeCollection(&buf, sampleCollection(1000)); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if _, err := repository.DecodeCollection(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkSorted benchmarks the display ordering of a full record
func BenchmarkSorted(b *testing.B) {
	c := sampleCollection(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = c.Sorted()
	}
}

// BenchmarkFilter benchmarks the title/content search path
func BenchmarkFilter(b *testing.B) {
	c := sampleCollection(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = c.Filter("spéciale")
	}
}

// BenchmarkParsePublished benchmarks the truthy-token normalization
func BenchmarkParsePublished(b *testing.B) {
	tokens := []string{"TRUE", "false", "oui", "1", "maybe"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = models.ParsePublished(tokens[i%len(tokens)])
	}
}
