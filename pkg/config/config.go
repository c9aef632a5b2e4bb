// Package config loads the connector configuration from a YAML file,
// optionally bootstrapped from a .env file. Environment variables override
// the file for the settings an operator usually injects at deploy time.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"gopkg.in/yaml.v3"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/errs"
)

var (
	ErrReadConfig      = errors.New("failed to read config file")
	ErrParseConfig     = errors.New("failed to parse config file")
	ErrMissingBaseURL  = errors.New("nextcloud base URL is required")
	ErrMissingUsername = errors.New("nextcloud username is required")
	ErrMissingSecret   = errors.New("nextcloud secret is required")
	ErrMissingToken    = errors.New("scim token is required")
)

const (
	defaultListenAddr = ":8000"
	defaultBasePath   = "/scim/v2"
)

// Nextcloud describes how to reach the backing OCS provisioning API.
type Nextcloud struct {
	// BaseURL is the host part only, e.g. "cloud.example.com".
	BaseURL  string              `yaml:"baseURL"`
	HTTPS    bool                `yaml:"https"`
	Username commoncfg.SourceRef `yaml:"username"`
	Secret   commoncfg.SourceRef `yaml:"secret"`
	// CAFile optionally points at a PEM bundle to trust for self-hosted
	// instances with a private CA.
	CAFile string `yaml:"caFile"`
}

// SCIM holds settings for the inbound SCIM surface.
type SCIM struct {
	Token commoncfg.SourceRef `yaml:"token"`
}

type Config struct {
	ListenAddr string    `yaml:"listenAddr"`
	BasePath   string    `yaml:"basePath"`
	Nextcloud  Nextcloud `yaml:"nextcloud"`
	SCIM       SCIM      `yaml:"scim"`
}

// Load reads the configuration from path. A missing .env file is not an
// error; a missing config file is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(ErrReadConfig, err)
	}

	cfg := Config{}

	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return nil, errs.Wrap(ErrParseConfig, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, cfg.validate()
}

// applyEnv lets the environment override the file. The variable names match
// the ones the connector has always used.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("NEXTCLOUD_BASEURL"); ok {
		c.Nextcloud.BaseURL = v
	}

	if v, ok := os.LookupEnv("NEXTCLOUD_HTTPS"); ok {
		c.Nextcloud.HTTPS = parseBool(v)
	}

	if v, ok := os.LookupEnv("NEXTCLOUD_USERNAME"); ok {
		c.Nextcloud.Username = embeddedRef(v)
	}

	if v, ok := os.LookupEnv("NEXTCLOUD_SECRET"); ok {
		c.Nextcloud.Secret = embeddedRef(v)
	}

	if v, ok := os.LookupEnv("SCIM_TOKEN"); ok {
		c.SCIM.Token = embeddedRef(v)
	}

	if v, ok := os.LookupEnv("CONNECTOR_LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.BasePath == "" {
		c.BasePath = defaultBasePath
	}

	c.BasePath = strings.TrimRight(c.BasePath, "/")
}

func (c *Config) validate() error {
	if c.Nextcloud.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if isZeroRef(c.Nextcloud.Username) {
		return ErrMissingUsername
	}

	if isZeroRef(c.Nextcloud.Secret) {
		return ErrMissingSecret
	}

	if isZeroRef(c.SCIM.Token) {
		return ErrMissingToken
	}

	return nil
}

// SCIMToken resolves the bearer token the connector expects from identity
// providers.
func (c *Config) SCIMToken() (string, error) {
	v, err := commoncfg.LoadValueFromSourceRef(c.SCIM.Token)
	if err != nil {
		return "", errs.Wrap(ErrMissingToken, err)
	}

	return string(v), nil
}

func embeddedRef(v string) commoncfg.SourceRef {
	return commoncfg.SourceRef{
		Source: commoncfg.EmbeddedSourceValue,
		Value:  v,
	}
}

func isZeroRef(ref commoncfg.SourceRef) bool {
	return ref.Source == "" && ref.Value == ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
