package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/envchecker/pkg/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Lookup(t *testing.T) {
	m := env.Map{"PORT": "3000", "EMPTY": ""}

	v, ok := m.Lookup("PORT")
	assert.True(t, ok)
	assert.Equal(t, "3000", v)

	v, ok = m.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = m.Lookup("MISSING")
	assert.False(t, ok)

	assert.Equal(t, []string{"EMPTY", "PORT"}, m.Keys())
}

func TestFromEnviron(t *testing.T) {
	m := env.FromEnviron([]string{
		"PORT=3000",
		"DATABASE_URL=postgres://u:p@h/db?sslmode=disable&x=1",
		"EMPTY=",
		"MALFORMED",
	})

	assert.Equal(t, env.Map{
		"PORT":         "3000",
		"DATABASE_URL": "postgres://u:p@h/db?sslmode=disable&x=1",
		"EMPTY":        "",
	}, m)
}

func TestFromOS(t *testing.T) {
	t.Setenv("ENVCHECKER_TEST_VAR", "hello")

	v, ok := env.FromOS().Lookup("ENVCHECKER_TEST_VAR")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")

	require.NoError(t, os.WriteFile(base, []byte("# base\nPORT=3000\nNODE_ENV=development\nQUOTED=\"a b\"\nENVCHECKER_FILE_ONLY=1\n"), 0644))
	require.NoError(t, os.WriteFile(local, []byte("PORT=4000\n"), 0644))

	m, err := env.ReadFiles(base, local)
	require.NoError(t, err)
	assert.Equal(t, "4000", m["PORT"])
	assert.Equal(t, "development", m["NODE_ENV"])
	assert.Equal(t, "a b", m["QUOTED"])

	_, ok := os.LookupEnv("ENVCHECKER_FILE_ONLY")
	assert.False(t, ok, "ReadFiles must not touch the process environment")
}

func TestReadFiles_Missing(t *testing.T) {
	_, err := env.ReadFiles(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorContains(t, err, "failed to read env files")
}

func TestReadFiles_None(t *testing.T) {
	m, err := env.ReadFiles()
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLayer(t *testing.T) {
	file := env.Map{"PORT": "3000", "DEBUG": "false"}
	process := env.Map{"PORT": "8080"}

	merged := env.Layer(file, process)
	assert.Equal(t, env.Map{"PORT": "8080", "DEBUG": "false"}, merged)

	// Inputs are untouched.
	assert.Equal(t, "3000", file["PORT"])
	assert.Empty(t, env.Layer())
}
