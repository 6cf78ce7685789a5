package check

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-partcheck/pkg/app"
)

func render(t *testing.T, content, format string) (string, *Response) {
	t.Helper()
	resp, _ := Handle(quietContext(), &Request{Path: writeTable(t, content)})
	require.NotNil(t, resp)

	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, resp, FormatOptions{Format: format, NoColor: true}))
	return buf.String(), resp
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		format   string
		validate func(*testing.T, string, *Response)
	}{
		{
			name:    "table format",
			content: validTable,
			format:  app.FormatTable,
			validate: func(t *testing.T, output string, _ *Response) {
				assert.Contains(t, output, "📋 Partition Details:")
				assert.Contains(t, output, "0x00020000")
				assert.Contains(t, output, "0x00620000")
				assert.Contains(t, output, "6.0MB")
				assert.Contains(t, output, "Total flash:  16.0MB")
				assert.Contains(t, output, "✅ OTA partitions configured correctly")
				assert.Contains(t, output, "   ota_0: 6.0MB")
				assert.Contains(t, output, "✅ no partition overlaps")
				assert.Contains(t, output, "APP partition size is ample")
				assert.Contains(t, output, "Flash utilization is very high")
				assert.Contains(t, output, "check complete!")
			},
		},
		{
			name:    "table format with findings",
			content: "A, data, nvs, 0x0, 0x1000\nB, data, nvs, 0x800, 0x1000\nshort, line\n",
			format:  app.FormatTable,
			validate: func(t *testing.T, output string, _ *Response) {
				assert.Contains(t, output, "⚠️  line 3 parse error")
				assert.Contains(t, output, "❌ overlap detected: A and B")
				assert.Contains(t, output, "❌ insufficient OTA partitions")
				assert.NotContains(t, output, "short ")
				assert.Contains(t, output, "check complete!")
			},
		},
		{
			name:    "table format without partitions",
			content: "bad, line\n",
			format:  app.FormatTable,
			validate: func(t *testing.T, output string, _ *Response) {
				assert.Contains(t, output, "no valid partition configuration found")
				assert.NotContains(t, output, "Partition Details")
				assert.Contains(t, output, "check failed!")
			},
		},
		{
			name:    "json format",
			content: validTable,
			format:  app.FormatJSON,
			validate: func(t *testing.T, output string, resp *Response) {
				var decoded map[string]any
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, resp.ReportID, decoded["report_id"])
				assert.Len(t, decoded["entries"], 6)
			},
		},
		{
			name:    "yaml format",
			content: validTable,
			format:  app.FormatYAML,
			validate: func(t *testing.T, output string, resp *Response) {
				var decoded map[string]any
				require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, resp.ReportID, decoded["report_id"])
				assert.Contains(t, output, "subtype: spiffs")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, resp := render(t, tt.content, tt.format)
			tt.validate(t, output, resp)
		})
	}
}

func TestFormatOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := FormatOutput(&buf, &Response{}, FormatOptions{Format: "xml"})
	assert.Error(t, err)
}

func TestFormatMissing(t *testing.T) {
	var buf bytes.Buffer
	FormatMissing(&buf, "missing.csv", FormatOptions{Format: app.FormatTable, NoColor: true})

	output := buf.String()
	assert.Contains(t, output, "❌ file missing.csv does not exist")
	assert.NotContains(t, output, "Partition Details")

	buf.Reset()
	FormatMissing(&buf, "missing.csv", FormatOptions{Format: app.FormatJSON})
	assert.Empty(t, buf.String())
}

func TestFormatSummary(t *testing.T) {
	_, resp := render(t, validTable, app.FormatTable)
	assert.Contains(t, FormatSummary(resp), "6 partitions")

	_, empty := render(t, "bad, line\n", app.FormatTable)
	assert.Contains(t, FormatSummary(empty), "no valid partitions")
}

func TestFormatEntries(t *testing.T) {
	_, resp := render(t, validTable, app.FormatTable)

	var buf bytes.Buffer
	require.NoError(t, FormatEntries(&buf, resp.Entries[:2], FormatOptions{Format: app.FormatTable}))
	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "otadata")
	assert.NotContains(t, output, "spiffs")

	buf.Reset()
	require.NoError(t, FormatEntries(&buf, nil, FormatOptions{Format: app.FormatTable}))
	assert.Contains(t, buf.String(), "No partitions matched.")

	buf.Reset()
	require.NoError(t, FormatEntries(&buf, resp.Entries, FormatOptions{Format: app.FormatJSON}))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 6)
	assert.Equal(t, "ota_0", decoded[3]["name"])
}
