package subtitle

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// DetectLanguage returns the most frequent language detected across entry
// texts, or language.Und when there is nothing to detect.
func DetectLanguage(entries []Entry) language.Tag {
	langMap := make(map[string]int)
	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}
		lang := whatlanggo.DetectLang(entry.Text).Iso6391()
		if lang == "" {
			continue
		}
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount || (count == topCount && lang < topLang) {
			topLang = lang
			topCount = count
		}
	}
	if topLang == "" {
		return language.Und
	}

	tag, err := language.Parse(topLang)
	if err != nil {
		return language.Und
	}
	return tag
}
