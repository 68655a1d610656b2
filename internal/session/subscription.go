package session

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends are
// non-blocking; a slow subscriber loses intermediate events, never the
// session's progress.
type Subscription struct {
	Ready            <-chan ReadyEvent
	TransportChanged <-chan TransportChange
	BufferingChanged <-chan BufferingChange
	PositionChanged  <-chan PositionChange
	BufferedChanged  <-chan BufferedRangeChange
	ScrubMoved       <-chan ScrubMove
	Failed           <-chan FailureEvent
	Done             <-chan struct{}

	// Internal write channels
	readyCh     chan ReadyEvent
	transportCh chan TransportChange
	bufferingCh chan BufferingChange
	positionCh  chan PositionChange
	bufferedCh  chan BufferedRangeChange
	scrubCh     chan ScrubMove
	failedCh    chan FailureEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		readyCh:     make(chan ReadyEvent, eventBufferSize),
		transportCh: make(chan TransportChange, eventBufferSize),
		bufferingCh: make(chan BufferingChange, eventBufferSize),
		positionCh:  make(chan PositionChange, eventBufferSize),
		bufferedCh:  make(chan BufferedRangeChange, eventBufferSize),
		scrubCh:     make(chan ScrubMove, eventBufferSize),
		failedCh:    make(chan FailureEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.Ready = s.readyCh
	s.TransportChanged = s.transportCh
	s.BufferingChanged = s.bufferingCh
	s.PositionChanged = s.positionCh
	s.BufferedChanged = s.bufferedCh
	s.ScrubMoved = s.scrubCh
	s.Failed = s.failedCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendReady(e ReadyEvent) {
	select {
	case s.readyCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTransport(e TransportChange) {
	select {
	case s.transportCh <- e:
	default:
	}
}

func (s *Subscription) sendBuffering(e BufferingChange) {
	select {
	case s.bufferingCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendBuffered(e BufferedRangeChange) {
	select {
	case s.bufferedCh <- e:
	default:
	}
}

func (s *Subscription) sendScrub(e ScrubMove) {
	select {
	case s.scrubCh <- e:
	default:
	}
}

func (s *Subscription) sendFailed(e FailureEvent) {
	select {
	case s.failedCh <- e:
	default:
	}
}
