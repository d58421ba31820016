package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTagWrite,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpTagWrite,
			err:      errors.New("file not found"),
			expected: "Failed to write tags: file not found",
		},
		{
			name:     "tree scan operation",
			op:       OpTreeScan,
			err:      errors.New("permission denied"),
			expected: "Failed to scan songs tree: permission denied",
		},
		{
			name:     "similarity operation",
			op:       OpSimilarityQuery,
			err:      errors.New("connection refused"),
			expected: "Failed to retrieve similarities: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTagWrite,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpTagWrite,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to write tags 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpTagWrite,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to write tags: permission denied",
		},
		{
			name:     "simfile read with path context",
			op:       OpSimfileRead,
			context:  "/songs/Pack/Song/song.ssc",
			err:      errors.New("read error"),
			expected: "Failed to read simfile '/songs/Pack/Song/song.ssc': read error",
		},
		{
			name:     "similarity query with title context",
			op:       OpSimilarityQuery,
			context:  "Some Song",
			err:      errors.New("timeout"),
			expected: "Failed to retrieve similarities 'Some Song': timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
