package renderer

import "context"

// StopSender is the sending end of the one-shot stop signal.
type StopSender struct {
	cancel context.CancelFunc
}

// StopReceiver is the receiving end of the one-shot stop signal.
type StopReceiver struct {
	ctx context.Context
}

// NewStopChannel returns both ends of a stop signal. The signal also fires
// when parent is done.
func NewStopChannel(parent context.Context) (StopSender, StopReceiver) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return StopSender{cancel: cancel}, StopReceiver{ctx: ctx}
}

// Send records a stop request. It never blocks and repeated sends, or
// sends after the receiver is gone, are no-ops.
func (s StopSender) Send() {
	if s.cancel != nil {
		s.cancel()
	}
}

// TryReceive reports whether a stop has been sent, without blocking.
func (r StopReceiver) TryReceive() bool {
	if r.ctx == nil {
		return false
	}
	select {
	case <-r.ctx.Done():
		return true
	default:
		return false
	}
}

// Done is closed once a stop has been sent.
func (r StopReceiver) Done() <-chan struct{} {
	if r.ctx == nil {
		return nil
	}
	return r.ctx.Done()
}
