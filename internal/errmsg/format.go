// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Asset operations
	OpResolveAsset Op = "resolve media asset"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"

	// Progress operations
	OpProgressLoad   Op = "load playback progress"
	OpProgressSave   Op = "save playback progress"
	OpProgressRemove Op = "clear playback progress"

	// Remote control operations
	OpRemoteBind    Op = "bind remote controls"
	OpRemoteCommand Op = "handle remote command"

	// Initialization
	OpInitialize Op = "initialize playback engine"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
