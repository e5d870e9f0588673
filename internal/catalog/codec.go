package catalog

import (
	"encoding/json"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
)

type document struct {
	Services      json.RawMessage `json:"services"`
	Categories    []string        `json:"categories"`
	SearchHistory []string        `json:"searchHistory"`
}

// MarshalJSON writes the catalog as a single document holding the services,
// the categories and the search history.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	services, err := json.Marshal(c.Services())
	if err != nil {
		return nil, err
	}
	return json.Marshal(document{
		Services:      services,
		Categories:    c.Categories(),
		SearchHistory: c.SearchHistory(),
	})
}

// UnmarshalJSON replaces the catalog contents with the document in data.
// Missing lists decode as empty; configured options are preserved.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var services []domain.Service
	if len(doc.Services) > 0 && string(doc.Services) != "null" {
		decoded, _, err := domain.DecodeList[domain.Service](doc.Services)
		if err != nil {
			return err
		}
		services = decoded
	}

	if c.historyLimit <= 0 {
		c.historyLimit = DefaultSearchHistoryLimit
	}
	c.services = nil
	c.categories = nil
	c.searchHistory = nil

	for _, cat := range doc.Categories {
		c.addCategory(cat)
	}
	for _, s := range services {
		c.Add(s)
	}
	for i := len(doc.SearchHistory) - 1; i >= 0; i-- {
		c.AddSearchHistory(doc.SearchHistory[i])
	}
	return nil
}

// Decode builds a catalog from a stored document.
func Decode(data []byte, opts ...Option) (*Catalog, error) {
	c := newEmpty(opts...)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
