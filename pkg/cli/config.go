package cli

import (
	"fmt"
	"strings"

	"reels-dash-go/pkg/config"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	a.printf("%s\n", data)
	return nil
}

// SetConfig sets a configuration value and saves the file.
// Format: section.key=value (e.g., "api.base_url=http://scraper:3001")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	if err := a.cfg.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
		return err
	}
	return config.Save(a.cfg)
}
