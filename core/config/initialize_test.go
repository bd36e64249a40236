package config

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := InitializeFs(fsys, "state", log.New(io.Discard, "", 0))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Run("WritesDefaultConfig", func(t *testing.T) {
		exists, err := afero.Exists(fsys, "state/"+ConfigurationName)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("LoadsValidConfig", func(t *testing.T) {
		loaded, err := LoadFs(fsys, "state")
		assert.NoError(t, err)
		assert.Equal(t, cfg.Prompt, loaded.Prompt)
	})

	t.Run("CreateSessionLog", func(t *testing.T) {
		fd, err := cfg.CreateSessionLog("session.log")
		require.NoError(t, err)

		_, err = fd.WriteString("hello\n")
		assert.NoError(t, err)
		assert.NoError(t, fd.Close())
	})

	t.Run("RerunKeepsExistingConfig", func(t *testing.T) {
		custom := []byte("prompt: \"$ \"\nmax_line_length: 99\nmax_tokens: 10\n")
		require.NoError(t, afero.WriteFile(fsys, "state/"+ConfigurationName, custom, 0644))

		again, err := InitializeFs(fsys, "state", log.New(io.Discard, "", 0))
		require.NoError(t, err)
		assert.Equal(t, "$ ", again.Prompt)
	})
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadFs(afero.NewMemMapFs(), "nowhere")
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fsys := afero.NewMemMapFs()
	raw := []byte("prompt: \"$ \"\nmax_line_length: 99\nmax_tokens: 10\nbogus_field: true\n")
	require.NoError(t, afero.WriteFile(fsys, ConfigurationName, raw, 0644))

	_, err := LoadFs(fsys, ".")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	fsys := afero.NewMemMapFs()
	raw := []byte("prompt: \"$ \"\nmax_line_length: 0\nmax_tokens: 10\n")
	require.NoError(t, afero.WriteFile(fsys, ConfigurationName, raw, 0644))

	_, err := LoadFs(fsys, ".")
	assert.Error(t, err)
}
