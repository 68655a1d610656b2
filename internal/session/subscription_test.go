package session

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendReady(ReadyEvent{Duration: time.Minute})
		sub.sendTransport(TransportChange{Previous: TransportStopped, Current: TransportPlaying})
		sub.sendBuffering(BufferingChange{Current: BufferingDelayed, Rebuffering: true})
		sub.sendPosition(PositionChange{Position: 30 * time.Second, Duration: time.Minute})
		sub.sendScrub(ScrubMove{Fraction: 0.5, Committed: true})

		if e := <-sub.Ready; e.Duration != time.Minute {
			t.Errorf("Ready.Duration = %v, want 1m", e.Duration)
		}
		if e := <-sub.TransportChanged; e.Current != TransportPlaying {
			t.Errorf("TransportChanged.Current = %v, want Playing", e.Current)
		}
		if e := <-sub.BufferingChanged; !e.Rebuffering {
			t.Errorf("BufferingChanged = %+v, want rebuffering", e)
		}
		if e := <-sub.PositionChanged; e.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", e.Position)
		}
		if e := <-sub.ScrubMoved; e.Fraction != 0.5 || !e.Committed {
			t.Errorf("ScrubMoved = %+v, want committed 0.5", e)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	// Fill the buffer and keep sending; sends must never block.
	for range eventBufferSize * 2 {
		sub.sendPosition(PositionChange{Position: time.Second})
	}

	if got := len(sub.PositionChanged); got != eventBufferSize {
		t.Errorf("buffered events = %d, want %d", got, eventBufferSize)
	}
}

func TestSession_UnsubscribeClosesDone(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _, _ := newTestSession(t, Options{})
		defer s.Close()

		sub := s.Subscribe()
		s.Unsubscribe(sub)
		<-sub.Done

		// Unsubscribing twice is harmless.
		s.Unsubscribe(sub)
	})
}
