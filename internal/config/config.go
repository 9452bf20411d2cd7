package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/catload/pkg/catload"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override the config file.
const (
	EnvRelation  = "CATLOAD_TABLE"
	EnvSeparator = "CATLOAD_SEPARATOR"
	EnvLogFormat = "CATLOAD_LOG_FORMAT"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type FilterConfig struct {
	Column string `yaml:"column"`
	Value  *int64 `yaml:"value,omitempty"`
}

// ProjectConfig is the content of catload.yaml.
// Every field is optional; unset fields keep their defaults.
type ProjectConfig struct {
	Relation         string       `yaml:"table"`
	IDColumn         string       `yaml:"id_column"`
	CategoriesColumn string       `yaml:"categories_column"`
	Separator        string       `yaml:"separator"`
	Filter           FilterConfig `yaml:"filter"`
	LogFormat        string       `yaml:"log_format"`
}

// Settings is the fully merged configuration of one run.
type Settings struct {
	Relation         string `validate:"required,max=63"`
	IDColumn         string `validate:"required"`
	CategoriesColumn string `validate:"required,nefield=IDColumn"`
	Separator        string `validate:"required"`
	FilterColumn     string
	FilterValue      int64
	LogFormat        string `validate:"oneof=text json"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	opts := catload.DefaultCleanOptions()
	return Settings{
		Relation:         catload.DefaultRelation,
		IDColumn:         opts.IDColumn,
		CategoriesColumn: opts.CategoriesColumn,
		Separator:        opts.Separator,
		FilterColumn:     opts.FilterColumn,
		FilterValue:      opts.FilterValue,
		LogFormat:        LogFormatText,
	}
}

// Load reads a catload.yaml file.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, catload.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Apply overlays the non-empty fields of the file onto s.
func (c *ProjectConfig) Apply(s *Settings) {
	if c == nil {
		return
	}
	setIf(&s.Relation, c.Relation)
	setIf(&s.IDColumn, c.IDColumn)
	setIf(&s.CategoriesColumn, c.CategoriesColumn)
	setIf(&s.Separator, c.Separator)
	setIf(&s.FilterColumn, c.Filter.Column)
	if c.Filter.Value != nil {
		s.FilterValue = *c.Filter.Value
	}
	setIf(&s.LogFormat, c.LogFormat)
}

// ApplyEnv overlays CATLOAD_* variables read through lookup onto s.
func ApplyEnv(s *Settings, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRelation); ok {
		setIf(&s.Relation, v)
	}
	if v, ok := lookup(EnvSeparator); ok {
		setIf(&s.Separator, v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		setIf(&s.LogFormat, strings.ToLower(v))
	}
}

var validate = validator.New()

// Validate checks the merged settings. All problems are reported together.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%v: %w", err, catload.ErrInvalidConfig)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: %s: %w", fe.Field(), describe(fe), catload.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// CleanOptions converts the settings for the loader and cleaner.
func (s Settings) CleanOptions() catload.CleanOptions {
	return catload.CleanOptions{
		IDColumn:         s.IDColumn,
		CategoriesColumn: s.CategoriesColumn,
		Separator:        s.Separator,
		FilterColumn:     s.FilterColumn,
		FilterValue:      s.FilterValue,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
