package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "postgres://json/db",
	})
	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json/db", cfg.DatabaseDSN)
}

func Test_parseJson_PartialFileKeepsExisting(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{"database_dsn": "postgres://json/db"})
	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":5000", cfg.EndpointAddrHTTP, "missing keys keep prior values")
	assert.Equal(t, "postgres://json/db", cfg.DatabaseDSN)
}

func Test_parseJson_NoFlagIsNoOp(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":5000", cfg.EndpointAddrHTTP)
}

func Test_parseJson_BadFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "missing.json")}

	assert.Panics(t, func() { parseJson(&Config{}) })
}
