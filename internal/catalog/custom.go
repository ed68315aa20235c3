package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// customSpec mirrors one [[custom]] table in the user config file.
type customSpec struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Desc     string `mapstructure:"description"`
	Path     string `mapstructure:"path"`
	Risk     string `mapstructure:"risk"`
	Confirm  bool   `mapstructure:"confirm"`
	SizeHint string `mapstructure:"size_hint"`
}

// DefaultConfigPath returns the default user config file location,
// %APPDATA%\winbroom\config.toml. Empty when APPDATA is unset.
func DefaultConfigPath() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, "winbroom", "config.toml")
}

// LoadCustomItems reads user-defined Custom-category items from a TOML
// config file. A missing file is not an error. Malformed entries are
// skipped with a warning; a single bad rule never blocks startup.
func LoadCustomItems(path string, log zerolog.Logger) []Item {
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		log.Warn().Err(err).Str("path", path).Msg("cannot read config file")
		return nil
	}

	var specs []customSpec
	if err := v.UnmarshalKey("custom", &specs); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("malformed custom rules")
		return nil
	}

	var items []Item
	for i, spec := range specs {
		item, err := spec.toItem()
		if err != nil {
			log.Warn().Err(err).Int("rule", i+1).Msg("skipping custom rule")
			continue
		}
		items = append(items, item)
	}

	if len(items) > 0 {
		log.Debug().Int("count", len(items)).Msg("loaded custom cleanup rules")
	}
	return items
}

func (s customSpec) toItem() (Item, error) {
	if s.ID == "" {
		return Item{}, errors.New("custom rule missing id")
	}
	if s.Path == "" {
		return Item{}, fmt.Errorf("custom rule %q missing path", s.ID)
	}

	risk := RiskLow
	switch strings.ToLower(s.Risk) {
	case "", "low":
	case "elevated":
		risk = RiskElevated
	default:
		return Item{}, fmt.Errorf("custom rule %q has unknown risk %q", s.ID, s.Risk)
	}

	name := s.Name
	if name == "" {
		name = s.ID
	}

	return Item{
		ID:              s.ID,
		DisplayName:     name,
		Description:     s.Desc,
		Category:        Custom,
		Risk:            risk,
		ConfirmOverride: s.Confirm,
		SizeHint:        s.SizeHint,
		Location:        LocationSpec{PathTemplate: s.Path},
	}, nil
}
