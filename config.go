package compuclinic

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/eringen/compuclinic/cms"
	"github.com/eringen/compuclinic/content"
)

// Log levels accepted by SiteConfig.LogLevel.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelOff   = "off"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "CompuClinic")
	URL         string `yaml:"url"`         // Canonical URL, listed as "Base URL" in llms.txt
	Description string `yaml:"description"` // Site description for llms.txt, RSS and meta tags

	Addr      string `yaml:"addr"`       // Listen address (default ":3000")
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error or off (default "info")
	StaticDir string `yaml:"static_dir"` // Directory served under /public (default "public")

	DateLayout string `yaml:"date_layout"` // Go time layout for publish dates (default "1/2/2006")
	TimeZone   string `yaml:"time_zone"`   // IANA zone publish dates are shown in (default "UTC")

	CMS cms.Config `yaml:"cms"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "CompuClinic"
	}
	if c.URL == "" {
		c.URL = "https://my-ai-blog.vercel.app"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Description == "" {
		c.Description = "This is a technical blog about computer repair and IT support."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DateLayout == "" {
		c.DateLayout = "1/2/2006"
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
	c.CMS.SetDefaults()
}

// Validate validates the site settings. The CMS section is validated by
// cms.NewClient when the client is built.
func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.LogLevel, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelOff)),
		validation.Field(&c.TimeZone, validation.By(knownZone)),
	)
}

// DateFormat returns the formatter for publish dates.
func (c SiteConfig) DateFormat() content.DateFormat {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	return content.DateFormat{Layout: c.DateLayout, Location: loc}
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}

func knownZone(value interface{}) error {
	s, _ := value.(string)
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown time zone %q", s)
	}
	return nil
}

// ConfigFromEnv builds a SiteConfig from environment variables. The CMS
// project and dataset also honour the NEXT_PUBLIC_ prefixed names used by
// the previous deployment.
func ConfigFromEnv() SiteConfig {
	return SiteConfig{
		Name:        os.Getenv("SITE_NAME"),
		URL:         os.Getenv("SITE_URL"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Addr:        os.Getenv("ADDR"),
		LogLevel:    strings.ToLower(os.Getenv("LOG_LEVEL")),
		StaticDir:   os.Getenv("STATIC_DIR"),
		DateLayout:  os.Getenv("DATE_LAYOUT"),
		TimeZone:    os.Getenv("TIME_ZONE"),
		CMS: cms.Config{
			ProjectID:  EnvOr("SANITY_PROJECT_ID", os.Getenv("NEXT_PUBLIC_SANITY_PROJECT_ID")),
			Dataset:    EnvOr("SANITY_DATASET", os.Getenv("NEXT_PUBLIC_SANITY_DATASET")),
			APIVersion: os.Getenv("SANITY_API_VERSION"),
			UseCDN:     envBool("SANITY_USE_CDN"),
			Token:      os.Getenv("SANITY_TOKEN"),
			Timeout:    envDuration("SANITY_TIMEOUT"),
		},
	}
}

// LoadConfigFile reads a YAML config file. ${VAR} references are expanded
// from the environment before parsing.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envDuration(key string) time.Duration {
	d, _ := time.ParseDuration(os.Getenv(key))
	return d
}

// Option configures additional App behavior.
type Option func(*App)

// WithQuerier makes the App query q instead of building a CMS client from
// the configuration.
func WithQuerier(q cms.Querier) Option {
	return func(a *App) {
		a.querier = q
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
