package brandpdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/alnah/go-brandpdf/internal/fileutil"
	"github.com/alnah/go-brandpdf/internal/yamlutil"
)

// Default brand values. Every BrandConfig field has one so that a partial
// (or absent) brand file still yields a fully populated configuration.
const (
	DefaultName            = "Document"
	DefaultPrimary         = "#1a365d"
	DefaultAccent          = "#2b6cb0"
	DefaultSecondary       = "#4a5568"
	DefaultWarning         = "#c53030"
	DefaultLightBackground = "#f7fafc"
	DefaultBorderColor     = "#cbd5e0"
	DefaultFontFamily      = "Helvetica, Arial, sans-serif"
)

// DefaultBrandFile is the conventional brand file name searched in the
// working directory and in the user config directory.
const DefaultBrandFile = "brand.yaml"

// BrandConfig is the user-facing style descriptor.
type BrandConfig struct {
	Name   string     `yaml:"name"`
	Header string     `yaml:"header"`
	Footer string     `yaml:"footer"`
	Colors ColorSet   `yaml:"colors"`
	Font   FontConfig `yaml:"font"`
}

// ColorSet holds the six brand colors everything else derives from.
type ColorSet struct {
	Primary         string `yaml:"primary"`
	Accent          string `yaml:"accent"`
	Secondary       string `yaml:"secondary"`
	Warning         string `yaml:"warning"`
	LightBackground string `yaml:"lightBackground"`
	BorderColor     string `yaml:"borderColor"`
}

// FontConfig holds the font family list and an optional remote font sheet.
type FontConfig struct {
	Family string `yaml:"family"`
	URL    string `yaml:"url"`
}

// DefaultBrand returns the built-in brand used when no user config exists.
func DefaultBrand() BrandConfig {
	return BrandConfig{
		Name:   DefaultName,
		Header: "",
		Footer: "",
		Colors: ColorSet{
			Primary:         DefaultPrimary,
			Accent:          DefaultAccent,
			Secondary:       DefaultSecondary,
			Warning:         DefaultWarning,
			LightBackground: DefaultLightBackground,
			BorderColor:     DefaultBorderColor,
		},
		Font: FontConfig{Family: DefaultFontFamily},
	}
}

// ResolveBrand loads the brand config from path, merging it field-by-field
// over DefaultBrand. An empty path searches the conventional locations
// (./brand.yaml, then $XDG_CONFIG_HOME/brandpdf/brand.yaml). A missing file
// is not an error; a malformed file logs a warning and yields pure defaults.
func ResolveBrand(path string, logger zerolog.Logger) BrandConfig {
	brand := DefaultBrand()

	if path == "" {
		path = findBrandFile()
		if path == "" {
			return brand
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- brand path is user-provided
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("cannot read brand config, using defaults")
		}
		return brand
	}
	// An empty file is a degenerate but valid config: pure defaults.
	if len(data) == 0 {
		return brand
	}

	var user BrandConfig
	if err := yamlutil.Unmarshal(data, &user); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("invalid brand config, using defaults")
		return brand
	}

	return mergeBrand(brand, user)
}

// LoadBrand is the strict variant of ResolveBrand: the file at path must
// exist, parse, and contain only known keys, so a typoed color name fails
// instead of silently keeping the default. Library callers that want to
// surface a bad brand file use this.
func LoadBrand(path string) (BrandConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- brand path is caller-provided
	if err != nil {
		return BrandConfig{}, fmt.Errorf("%w: %v", ErrBrandParse, err)
	}

	var user BrandConfig
	if err := yamlutil.UnmarshalStrict(data, &user); err != nil {
		return BrandConfig{}, fmt.Errorf("%w: %v", ErrBrandParse, err)
	}

	return mergeBrand(DefaultBrand(), user), nil
}

// mergeBrand overlays user values onto base. Scalars replace only when
// non-empty; colors merge key-by-key so omitting one color keeps the
// defaults for the others. Header and footer are taken as-is: empty is a
// meaningful value for both (header falls back to name at template time).
func mergeBrand(base, user BrandConfig) BrandConfig {
	out := base

	if user.Name != "" {
		out.Name = user.Name
	}
	out.Header = user.Header
	out.Footer = user.Footer

	out.Colors = mergeColors(base.Colors, user.Colors)

	if user.Font.Family != "" {
		out.Font.Family = user.Font.Family
	}
	if user.Font.URL != "" {
		out.Font.URL = user.Font.URL
	}

	return out
}

// mergeColors overlays non-empty user colors onto the defaults, one key at
// a time.
func mergeColors(base, user ColorSet) ColorSet {
	out := base
	if user.Primary != "" {
		out.Primary = user.Primary
	}
	if user.Accent != "" {
		out.Accent = user.Accent
	}
	if user.Secondary != "" {
		out.Secondary = user.Secondary
	}
	if user.Warning != "" {
		out.Warning = user.Warning
	}
	if user.LightBackground != "" {
		out.LightBackground = user.LightBackground
	}
	if user.BorderColor != "" {
		out.BorderColor = user.BorderColor
	}
	return out
}

// findBrandFile searches the conventional brand file locations.
// Tries the working directory first, then the user config directory.
func findBrandFile() string {
	if fileutil.FileExists(DefaultBrandFile) {
		return DefaultBrandFile
	}
	userPath := filepath.Join(xdg.ConfigHome, "brandpdf", DefaultBrandFile)
	if fileutil.FileExists(userPath) {
		return userPath
	}
	return ""
}
