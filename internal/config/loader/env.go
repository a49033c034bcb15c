package loader

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvLoader applies prefixed environment variables onto a struct.
//
// Field names are split on word boundaries, so with prefix "hecto" a field
// LogLevel is read from HECTO_LOG_LEVEL when tagged split_words:"true".
// Unset variables leave the field untouched; set but empty variables are
// applied as empty values.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader creates an environment loader for the given prefix, without
// the trailing underscore (e.g. "hecto").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: strings.TrimSuffix(prefix, "_")}
}

// Prefix returns the variable prefix.
func (l *EnvLoader) Prefix() string {
	return l.prefix
}

// LoadInto applies the environment onto spec, which must be a pointer to a
// struct.
func (l *EnvLoader) LoadInto(spec any) error {
	if err := envconfig.Process(l.prefix, spec); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}
