package phases

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var catalog = mustLoadCatalog(catalogYAML)

type Info struct {
	ID          ID       `yaml:"id" json:"id"`
	Indicator   string   `yaml:"indicator" json:"-"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Emoji       string   `yaml:"emoji" json:"emoji"`
	Color       string   `yaml:"color" json:"color"`
	Tips        []string `yaml:"tips" json:"tips"`
	Foods       []string `yaml:"foods" json:"foods"`
	Exercises   []string `yaml:"exercises" json:"exercises"`
}

// FoodHighlights returns up to limit foods with any ": details" suffix removed.
func (info Info) FoodHighlights(limit int) []string {
	if limit <= 0 || limit > len(info.Foods) {
		limit = len(info.Foods)
	}
	highlights := make([]string, 0, limit)
	for _, food := range info.Foods[:limit] {
		name, _, _ := strings.Cut(food, ":")
		highlights = append(highlights, strings.TrimSpace(name))
	}
	return highlights
}

type Slot struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
}

func loadCatalog(raw []byte) ([]Info, error) {
	entries := make([]Info, 0, len(all))
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse phase catalog: %w", err)
	}

	seen := make(map[ID]bool, len(entries))
	for _, entry := range entries {
		if _, ok := ParseID(string(entry.ID)); !ok {
			return nil, fmt.Errorf("phase catalog: unknown phase %q", entry.ID)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("phase catalog: duplicate phase %q", entry.ID)
		}
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("phase catalog: phase %q has no name", entry.ID)
		}
		seen[entry.ID] = true
	}
	for _, id := range all {
		if !seen[id] {
			return nil, fmt.Errorf("phase catalog: missing phase %q", id)
		}
	}
	return entries, nil
}

func mustLoadCatalog(raw []byte) []Info {
	entries, err := loadCatalog(raw)
	if err != nil {
		panic(err)
	}
	return entries
}
