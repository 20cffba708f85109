package workflow

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalModalMapsInterruptToEscape(t *testing.T) {
	escaped := make(chan struct{}, 1)
	after := make(chan struct{}, 1)
	modal := SignalModal{After: func() { after <- struct{}{} }}

	release := modal.Acquire(func() { escaped <- struct{}{} })
	defer release()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-escaped:
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt was not delivered as escape")
	}
	select {
	case <-after:
	case <-time.After(2 * time.Second):
		t.Fatal("after hook did not run")
	}
}

func TestSignalModalReleaseIsIdempotent(t *testing.T) {
	release := SignalModal{}.Acquire(func() {})
	assert.NotPanics(t, func() {
		release()
		release()
	})
}
