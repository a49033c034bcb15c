package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envSample struct {
	Backend  string `split_words:"true"`
	LogLevel string `split_words:"true"`
}

func TestEnvLoader_LoadInto(t *testing.T) {
	t.Setenv("TESTAPP_LOG_LEVEL", "debug")

	s := envSample{Backend: "ansi", LogLevel: "info"}
	require.NoError(t, NewEnvLoader("testapp").LoadInto(&s))

	assert.Equal(t, "ansi", s.Backend, "unset variables keep the prior value")
	assert.Equal(t, "debug", s.LogLevel)
}

func TestEnvLoader_EmptyValueApplies(t *testing.T) {
	t.Setenv("TESTAPP_BACKEND", "")

	s := envSample{Backend: "ansi"}
	require.NoError(t, NewEnvLoader("testapp").LoadInto(&s))

	assert.Empty(t, s.Backend)
}

func TestEnvLoader_UnprefixedIgnored(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	s := envSample{LogLevel: "info"}
	require.NoError(t, NewEnvLoader("testapp_").LoadInto(&s))

	assert.Equal(t, "testapp", NewEnvLoader("testapp_").Prefix())
	assert.Equal(t, "info", s.LogLevel)
}

func TestEnvLoader_InvalidSpec(t *testing.T) {
	var notStruct string
	err := NewEnvLoader("testapp").LoadInto(&notStruct)
	assert.Error(t, err)
}
