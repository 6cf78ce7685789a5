package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "0x1000", want: 4096},
		{input: "4096", want: 4096},
		{input: "0X1F", want: 31},
		{input: " 0x9000 ", want: 0x9000},
		{input: "0", want: 0},
		{input: "", wantErr: true},
		{input: "0x", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1M", wantErr: true},
		{input: "0xZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size uint64
		want string
	}{
		{size: 0, want: "0B"},
		{size: 512, want: "512B"},
		{size: 1024, want: "1.0KB"},
		{size: 0x6000, want: "24.0KB"},
		{size: 1536, want: "1.5KB"},
		{size: MiB, want: "1.0MB"},
		{size: 0x600000, want: "6.0MB"},
		{size: 16 * MiB, want: "16.0MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.size))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "-1.0MB", FormatSigned(-int64(MiB)))
	assert.Equal(t, "2.0KB", FormatSigned(2048))
}
