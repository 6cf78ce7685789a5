package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validTable = `# Name,   Type, SubType, Offset,  Size, Flags
nvs,      data, nvs,     0x9000,  0x6000,
otadata,  data, ota,     0xf000,  0x2000,
phy_init, data, phy,     0x11000, 0x1000,
ota_0,    app,  ota_0,   0x20000, 0x600000,
ota_1,    app,  ota_1,   0x620000, 0x600000,
spiffs,   data, spiffs,  0xc20000, 0x3e0000,
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partitions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"--quiet", "--no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Check(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		contains []string
		excludes []string
	}{
		{
			name:     "valid table",
			content:  validTable,
			wantCode: 0,
			contains: []string{"Partition Details", "ota_1", "0x00c20000", "no partition overlaps", "check complete!"},
		},
		{
			name:     "findings are advisory",
			content:  "A, data, nvs, 0x0, 0x1000\nB, data, nvs, 0x800, 0x1000\n",
			wantCode: 0,
			contains: []string{"overlap detected: A and B", "insufficient OTA partitions", "utilization is low"},
		},
		{
			name:     "malformed line skipped",
			content:  "broken, app, ota_0\n" + validTable,
			wantCode: 0,
			contains: []string{"line 1 parse error"},
			excludes: []string{"broken "},
		},
		{
			name:     "no valid partitions",
			content:  "# nothing here\n\nbad, row\n",
			wantCode: 1,
			contains: []string{"no valid partition configuration found", "check failed!"},
			excludes: []string{"Partition Details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := run(writeTable(t, tt.content))
			assert.Equal(t, tt.wantCode, code)
			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, stdout, s)
			}
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	code, stdout, stderr := run(filepath.Join(t.TempDir(), "missing.csv"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "does not exist")
	assert.NotContains(t, stdout, "Partition Details")
	assert.Contains(t, stderr, "Error:")
}

func TestRun_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partitions.csv"), []byte(validTable), 0o644))
	t.Chdir(dir)

	code, stdout, _ := run()
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Partition table partitions.csv check complete!")
}

func TestRun_JSONOutput(t *testing.T) {
	code, stdout, _ := run(writeTable(t, validTable), "-o", "json")
	require.Equal(t, 0, code)

	var decoded struct {
		ReportID string `json:"report_id"`
		Entries  []struct {
			Name string `json:"name"`
		} `json:"entries"`
		Result struct {
			OTA struct {
				Sufficient bool `json:"sufficient"`
			} `json:"ota"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.NotEmpty(t, decoded.ReportID)
	assert.Len(t, decoded.Entries, 6)
	assert.True(t, decoded.Result.OTA.Sufficient)
}

func TestRun_InvalidFlags(t *testing.T) {
	path := writeTable(t, validTable)

	code, _, stderr := run(path, "-o", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unsupported output format")

	code, _, stderr = run(path, "--flash-size", "lots")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --flash-size")

	code, _, _ = run(path, "extra-arg")
	assert.Equal(t, 1, code)
}

func TestRun_FlashSizeOverride(t *testing.T) {
	code, stdout, _ := run(writeTable(t, validTable), "--flash-size", "8MB")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Total flash:  8.0MB")
	assert.Contains(t, stdout, "partitions exceed available flash")
}

func TestRun_List(t *testing.T) {
	path := writeTable(t, validTable)

	code, stdout, _ := run("list", path, "--type", "app")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "ota_0")
	assert.Contains(t, stdout, "ota_1")
	assert.NotContains(t, stdout, "spiffs")

	code, stdout, _ = run("list", path, "--by-offset", "-o", "json")
	require.Equal(t, 0, code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 6)
	assert.Equal(t, "nvs", entries[0]["name"])

	code, _, _ = run("list", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, 1, code)
}

func TestRun_Profile(t *testing.T) {
	code, stdout, _ := run("profile")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "esp32s3-16mb")
	assert.Contains(t, stdout, "16.0MB (0x1000000)")

	code, stdout, _ = run("profile", "-o", "yaml", "--flash-size", "0x800000")
	require.Equal(t, 0, code)
	var profile map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &profile))
	assert.Equal(t, 8388608, profile["flash_size"])
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "partcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("profile:\n  name: custom\n  flash_size: 32MB\n"), 0o644))

	code, stdout, _ := run("profile", "--config", cfgPath)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "custom")
	assert.Contains(t, stdout, "32.0MB")

	code, _, stderr := run("profile", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to load configuration")
}

func TestNewAppContext_RendersToCommandOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)

	ctx, _, cleanup, err := newAppContext(rootCmd, &globalOptions{quiet: true})
	require.NoError(t, err)
	defer cleanup()
	assert.Same(t, &stdout, ctx.Out)
}
