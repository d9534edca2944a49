package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopChannelNotYet(t *testing.T) {
	_, recv := NewStopChannel(context.Background())
	assert.False(t, recv.TryReceive())
	assert.False(t, recv.TryReceive())
}

func TestStopChannelSendIsIdempotent(t *testing.T) {
	once, onceRecv := NewStopChannel(context.Background())
	twice, twiceRecv := NewStopChannel(context.Background())

	once.Send()
	twice.Send()
	twice.Send()

	assert.Equal(t, onceRecv.TryReceive(), twiceRecv.TryReceive())
	assert.True(t, twiceRecv.TryReceive())
	// The signal stays observable.
	assert.True(t, twiceRecv.TryReceive())
}

func TestStopChannelSendWithoutReceiver(t *testing.T) {
	send, _ := NewStopChannel(context.Background())
	assert.NotPanics(t, func() {
		send.Send()
		send.Send()
	})
}

func TestStopChannelParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	_, recv := NewStopChannel(parent)
	assert.False(t, recv.TryReceive())
	cancel()
	<-recv.Done()
	assert.True(t, recv.TryReceive())
}

func TestStopChannelZeroValue(t *testing.T) {
	var send StopSender
	var recv StopReceiver
	assert.NotPanics(t, send.Send)
	assert.False(t, recv.TryReceive())
	assert.Nil(t, recv.Done())
}
