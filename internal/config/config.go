package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultAPIURL = "http://localhost:8000/api"

// Config holds everything the client reads from the environment.
type Config struct {
	APIURL string `env:"TODO_API_URL" validate:"required,url"`
	Theme  string `env:"TODO_THEME" validate:"oneof=classic neon mono"`
	Logger LoggerConfig
}

type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Encoding string `env:"LOG_ENCODING" validate:"oneof=console json"`
	File     string `env:"LOG_FILE"`
}

// Load reads configuration from environment variables (optionally .env).
// A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		APIURL: strings.TrimRight(envOrDefault("TODO_API_URL", DefaultAPIURL), "/"),
		Theme:  strings.ToLower(envOrDefault("TODO_THEME", "classic")),
		Logger: LoggerConfig{
			Level:    strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
			Encoding: strings.ToLower(envOrDefault("LOG_ENCODING", "console")),
			File:     os.Getenv("LOG_FILE"),
		},
	}
}

var validate = newValidator()

// newValidator reports fields by their environment variable names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return v
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	ve := valErrs[0]
	name := ve.Field()
	switch ve.Tag() {
	case "oneof":
		return fmt.Errorf("invalid %s %q: must be one of %s", name, ve.Value(), strings.ReplaceAll(ve.Param(), " ", ", "))
	case "url":
		return fmt.Errorf("invalid %s %q: must be an absolute URL", name, ve.Value())
	default:
		return fmt.Errorf("%s is required", name)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
