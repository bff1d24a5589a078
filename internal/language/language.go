package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Default is the target language preselected for a new session.
const Default = "Spanish"

// Language is a selectable translation target.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var tags = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Russian,
	language.Japanese,
	language.Korean,
	language.Chinese,
	language.Arabic,
	language.Hindi,
	language.Dutch,
	language.Polish,
	language.Swedish,
	language.Turkish,
	language.Vietnamese,
	language.Indonesian,
	language.Greek,
	language.Hebrew,
}

var (
	catalog []Language
	byName  map[string]Language
	byCode  map[string]Language
)

func init() {
	namer := display.English.Languages()
	catalog = make([]Language, 0, len(tags))
	byName = make(map[string]Language, len(tags))
	byCode = make(map[string]Language, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		l := Language{Name: namer.Name(tag), Code: base.String()}
		catalog = append(catalog, l)
		byName[strings.ToLower(l.Name)] = l
		byCode[l.Code] = l
	}
}

// All returns the catalog in display order.
func All() []Language {
	ret := make([]Language, len(catalog))
	copy(ret, catalog)
	return ret
}

// Lookup finds a language by display name or short code, case-insensitively.
func Lookup(nameOrCode string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	if l, ok := byName[key]; ok {
		return l, true
	}
	l, ok := byCode[key]
	return l, ok
}

// CodeFor returns the short code for a display name, or "" when unknown.
func CodeFor(name string) string {
	if l, ok := Lookup(name); ok {
		return l.Code
	}
	return ""
}

// NameOf returns the English display name of tag, or "" for language.Und.
func NameOf(tag language.Tag) string {
	if tag == language.Und {
		return ""
	}
	return display.English.Languages().Name(tag)
}
