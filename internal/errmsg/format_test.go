//nolint:goconst // test cases intentionally repeat strings for readability
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
			op:       OpResolveAsset,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpResolveAsset,
			err:      errors.New("file not found"),
			expected: "Failed to resolve media asset: file not found",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "progress operation",
			op:       OpProgressSave,
			err:      errors.New("disk full"),
			expected: "Failed to save playback progress: disk full",
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
			op:       OpPlaybackStart,
			context:  "sermon.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackStart,
			context:  "sermon.mp3",
			err:      errors.New("decoder gave up"),
			expected: "Failed to start playback 'sermon.mp3': decoder gave up",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackSeek,
			context:  "",
			err:      errors.New("item not ready"),
			expected: "Failed to seek: item not ready",
		},
		{
			name:     "remote command with context",
			op:       OpRemoteCommand,
			context:  "skip-forward",
			err:      errors.New("duration unknown"),
			expected: "Failed to handle remote command 'skip-forward': duration unknown",
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

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpResolveAsset,
		OpPlaybackStart, OpPlaybackPause, OpPlaybackStop, OpPlaybackSeek,
		OpProgressLoad, OpProgressSave, OpProgressRemove,
		OpRemoteBind, OpRemoteCommand,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			result := Format(op, testErr)
			expected := "Failed to " + string(op) + ": test error"
			if result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
