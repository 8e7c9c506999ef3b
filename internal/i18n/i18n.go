// Package i18n carries the localized reader-facing labels.
package i18n

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

// DefaultLanguage is used when a requested language has no catalog
const DefaultLanguage = "en"

var catalogs map[string]map[string]string

func init() {
	if err := yaml.Unmarshal(labelsYAML, &catalogs); err != nil {
		// The catalog is embedded; a parse failure is a build defect
		panic("i18n: parsing embedded labels: " + err.Error())
	}
}

// T returns the label for key in the given language, falling back to the
// default language and finally to the key itself.
func T(language, key string) string {
	if labels, ok := catalogs[language]; ok {
		if msg, ok := labels[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// Languages returns the language codes with a catalog
func Languages() []string {
	out := make([]string, 0, len(catalogs))
	for lang := range catalogs {
		out = append(out, lang)
	}
	return out
}
