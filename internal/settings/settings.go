// Package settings assembles the c2rust-config tool's own settings from
// defaults, an optional settings file, environment variables and command-line
// overrides, in that order of increasing precedence.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EnvPrefix is prepended to environment variable names ("log.level" -> C2RUST_LOG_LEVEL).
const EnvPrefix = "C2RUST_"

var (
	// ErrSettingsNotFound indicates an explicitly requested settings file does not exist
	ErrSettingsNotFound = errors.New("settings file not found")

	// ErrInvalidSettings indicates a settings value failed validation
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings holds the tool's own configuration, distinct from the project's config.toml.
type Settings struct {
	// ProjectRoot overrides the working directory as the project root.
	ProjectRoot string `toml:"project_root" yaml:"project_root"`
	// Revision selects the validator profile: bare, cmd or files.
	Revision string `toml:"revision" yaml:"revision" validate:"omitempty,oneof=bare cmd files"`
	// Log configures diagnostic logging on stderr.
	Log LogSettings `toml:"log" yaml:"log"`
}

// LogSettings configures the zerolog output.
type LogSettings struct {
	Level  string `toml:"level" yaml:"level" validate:"required,oneof=trace debug info warn error disabled"`
	Format string `toml:"format" yaml:"format" validate:"required,oneof=console json"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Revision: "files",
		Log: LogSettings{
			Level:  "warn",
			Format: "console",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not one of [%s]", fe.Namespace(), fe.Value(), fe.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: is required", fe.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}
