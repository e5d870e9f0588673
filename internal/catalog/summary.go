package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the language catalog summaries are rendered in.
var DefaultLocale = language.Russian

var (
	supportedLocales = []language.Tag{language.Russian, language.English}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

// MatchLocale returns the supported summary language closest to tag.
func MatchLocale(tag language.Tag) language.Tag {
	_, i, _ := localeMatcher.Match(tag)
	return supportedLocales[i]
}

const (
	keyInfo     = "catalog.info"
	keyFullInfo = "catalog.full_info"
)

func init() {
	ru := language.Russian
	message.SetString(ru, keyInfo, "Каталог: %d услуг в %d категориях")
	message.SetString(ru, keyFullInfo, "=== КАТАЛОГ ===\nУслуг: %d\nКатегорий: %d\nИстория поиска: %d")

	en := language.English
	message.SetString(en, keyInfo, "Catalog: %d services in %d categories")
	message.SetString(en, keyFullInfo, "=== CATALOG ===\nServices: %d\nCategories: %d\nSearch history: %d")
}

// Info returns a one-line summary of the catalog.
func (c *Catalog) Info() string {
	return c.printer().Sprintf(keyInfo, len(c.services), len(c.categories))
}

// FullInfo returns a multi-line summary of the catalog.
func (c *Catalog) FullInfo() string {
	return c.printer().Sprintf(keyFullInfo, len(c.services), len(c.categories), len(c.searchHistory))
}

func (c *Catalog) printer() *message.Printer {
	tag := c.locale
	if tag == language.Und {
		tag = DefaultLocale
	}
	return message.NewPrinter(tag)
}
