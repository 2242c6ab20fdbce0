package cms

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultAPIVersion pins the query API version used when none is configured.
const DefaultAPIVersion = "2023-05-03"

var (
	reIdentifier = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	reAPIVersion = regexp.MustCompile(`^(1|X|\d{4}-\d{2}-\d{2})$`)
)

// Config identifies the CMS project and dataset to query.
// A Config is immutable once passed to NewClient.
type Config struct {
	ProjectID  string        `yaml:"project_id"`
	Dataset    string        `yaml:"dataset"`
	APIVersion string        `yaml:"api_version"`
	UseCDN     bool          `yaml:"use_cdn"` // false forces fresh reads
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
}

// SetDefaults fills zero values with their defaults.
func (c *Config) SetDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// Validate validates the CMS configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ProjectID, validation.Required, validation.Match(reIdentifier)),
		validation.Field(&c.Dataset, validation.Required, validation.Match(reIdentifier)),
		validation.Field(&c.APIVersion, validation.Required, validation.Match(reAPIVersion)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}
