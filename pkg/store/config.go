package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath            = "~/.innervoice.db"
	DefaultTimezone        = "UTC"
	DefaultRange           = "30d"
	DefaultClassifierModel = "gpt-4o-mini"
	DefaultClassifierURL   = "https://api.openai.com/v1"
	DefaultTimeout         = 30 * time.Second
)

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
	// Location is the calendar day keys and exported dates are computed in.
	Location() *time.Location
	DefaultRange() string
	Classifier() ClassifierConfig
}

// ClassifierConfig configures the remote emotion classifier.
type ClassifierConfig struct {
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"-"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
	// Proxy is an optional http(s):// or socks5:// proxy for classifier calls.
	Proxy string `json:"proxy,omitempty"`
}

// Enabled reports whether an API key is configured.
func (c ClassifierConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func LoadConfig() (Config, error) {
	LoadDotEnv()

	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("range", DefaultRange)
	v.SetDefault("classifier.base_url", DefaultClassifierURL)
	v.SetDefault("classifier.model", DefaultClassifierModel)
	v.SetDefault("classifier.timeout", DefaultTimeout)
	v.SetConfigName(".innervoice") // .yaml is implicit
	v.SetEnvPrefix("INNERVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("INNERVOICE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return newFileConfig(v)
}

func newFileConfig(v *viper.Viper) (*fileConfig, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	tz := strings.TrimSpace(v.GetString("timezone"))
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("store: invalid timezone %q: %w", tz, err)
	}

	apiKey := v.GetString("classifier.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return &fileConfig{
		Path:  path,
		TZ:    tz,
		Range: v.GetString("range"),
		Class: ClassifierConfig{
			BaseURL: v.GetString("classifier.base_url"),
			APIKey:  apiKey,
			Model:   v.GetString("classifier.model"),
			Timeout: v.GetDuration("classifier.timeout"),
			Proxy:   strings.TrimSpace(v.GetString("classifier.proxy")),
		},
		loc: loc,
	}, nil
}

type fileConfig struct {
	Path  string           `json:"path"`
	TZ    string           `json:"timezone"`
	Range string           `json:"range"`
	Class ClassifierConfig `json:"classifier"`

	loc *time.Location
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

func (f *fileConfig) DefaultRange() string {
	return f.Range
}

func (f *fileConfig) Classifier() ClassifierConfig {
	return f.Class
}

// LoadDotEnv loads .env.local and .env from the working directory. Variables
// that are already set win. INNERVOICE_DOTENV=off disables loading.
func LoadDotEnv() {
	if dotEnvDisabled() {
		return
	}
	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Printf("innervoice: failed to load %s: %v", p, err)
		}
	}
}

func dotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("INNERVOICE_DOTENV"))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
