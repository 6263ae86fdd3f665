package templates

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidBranding indicates the branding file could not be read or parsed.
var ErrInvalidBranding = errors.New("invalid branding configuration")

// SocialLink is a labelled link rendered in the email footer.
type SocialLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Branding holds the chrome every rendered email shares: company identity,
// the base URL used for generated links, and footer content.
//
// FooterYear is injected rather than read from the clock so rendering stays
// pure and deterministic. Embed this in your app config for env parsing with
// caarlos0/env, or load it from a YAML file with LoadBranding.
type Branding struct {
	CompanyName    string       `env:"BRANDING_COMPANY_NAME" yaml:"company_name"`
	CompanyAddress string       `env:"BRANDING_COMPANY_ADDRESS" yaml:"company_address"`
	BaseURL        string       `env:"BRANDING_BASE_URL" yaml:"base_url"`
	SupportEmail   string       `env:"BRANDING_SUPPORT_EMAIL" yaml:"support_email"`
	FooterYear     int          `env:"BRANDING_FOOTER_YEAR" yaml:"footer_year"`
	SocialLinks    []SocialLink `yaml:"social_links"`
}

// LoadBranding reads branding configuration from a YAML file.
func LoadBranding(path string) (Branding, error) {
	var b Branding

	raw, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrInvalidBranding, err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("%w: %v", ErrInvalidBranding, err)
	}
	return b, nil
}

// company returns the display name used in subjects and the footer, falling
// back to the per-template company name when branding has none.
func (b Branding) company(override string) string {
	if override != "" {
		return override
	}
	return b.CompanyName
}
