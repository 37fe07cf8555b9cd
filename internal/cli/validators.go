package cli

import (
	"fmt"
	"strings"

	"github.com/pluqqy/prefpanel/pkg/catalog"
	"github.com/pluqqy/prefpanel/pkg/models"
)

// ValidateThemeMode parses a --mode flag value
func ValidateThemeMode(s string) (models.ThemeMode, error) {
	def, _ := models.Lookup(models.KeyTheme)
	normalized := strings.ToLower(strings.TrimSpace(s))
	if !def.Allows(normalized) {
		return "", fmt.Errorf("invalid theme mode: %s (must be: light, dark, or system)", s)
	}
	return models.ThemeMode(normalized), nil
}

// ValidateCategory checks a --category flag value
func ValidateCategory(id string) error {
	if catalog.HasCategory(id) {
		return nil
	}

	ids := make([]string, 0)
	for _, c := range catalog.Categories() {
		ids = append(ids, c.ID)
	}
	return fmt.Errorf("unknown category: %s (valid categories: %s)", id, strings.Join(ids, ", "))
}
