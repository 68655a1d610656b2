// internal/session/state_test.go
package session

import "testing"

func TestTransportState_String(t *testing.T) {
	tests := []struct {
		state TransportState
		want  string
	}{
		{TransportStopped, "Stopped"},
		{TransportPlaying, "Playing"},
		{TransportPaused, "Paused"},
		{TransportFailed, "Failed"},
		{TransportState(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestTransportState_IsActive(t *testing.T) {
	if TransportStopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !TransportPlaying.IsActive() {
		t.Error("Playing should be active")
	}
	if !TransportPaused.IsActive() {
		t.Error("Paused should be active")
	}
	if TransportFailed.IsActive() {
		t.Error("Failed should not be active")
	}
}

func TestBufferingState_String(t *testing.T) {
	tests := []struct {
		state BufferingState
		want  string
	}{
		{BufferingUnknown, "Unknown"},
		{BufferingReady, "Ready"},
		{BufferingDelayed, "Delayed"},
		{BufferingState(99), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("BufferingState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{FailureNotPlayable, "AssetNotPlayable"},
		{FailurePropertyResolution, "PropertyResolutionFailed"},
		{FailureEnginePlayback, "EnginePlaybackFailed"},
		{FailureStalledAtEnd, "PlaybackStalledAtEndOfStream"},
		{FailureUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FailureKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
