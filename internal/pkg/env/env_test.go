package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv_PrefersLoadedFile(t *testing.T) {
	Env = map[string]string{"APP_PORT": "9000"}
	t.Cleanup(func() { Env = nil })
	t.Setenv("APP_PORT", "8000")

	assert.Equal(t, "9000", GetEnv("APP_PORT", "5000"))
}

func TestGetEnv_FallsBackToOSAndDefault(t *testing.T) {
	Env = map[string]string{}
	t.Cleanup(func() { Env = nil })
	t.Setenv("JWT_SECRET", "from-os")

	assert.Equal(t, "from-os", GetEnv("JWT_SECRET", ""))
	assert.Equal(t, "fallback", GetEnv("SOME_UNSET_KEY_FOR_TEST", "fallback"))
}

func TestSetupEnvFile_MissingFileIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Env = nil
	})

	assert.NotPanics(t, func() {
		assert.Equal(t, "", SetupEnvFile())
	})
	assert.NotNil(t, Env)
}

func TestSetupEnvFile_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=dev\nAPP_PORT=5055\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Env = nil
	})

	assert.Equal(t, ".env", SetupEnvFile())
	assert.Equal(t, "5055", GetEnv("APP_PORT", ""))
	assert.Equal(t, "dev", GetEnv("APP_ENV", ""))
}
