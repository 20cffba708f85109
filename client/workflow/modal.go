package workflow

import (
	"os"
	"os/signal"
	"sync"
)

// Modal is the "modal open" resource. Acquire is called when the vendor form or the
// password prompt opens; the returned release func runs exactly once when it closes,
// however it closes.
type Modal interface {
	Acquire(onEscape func()) (release func())
}

type noModal struct{}

func (noModal) Acquire(func()) func() { return func() {} }

// SignalModal treats an interrupt (Ctrl-C) as Escape while a modal is open. After, if
// set, runs after the escape has been handled.
type SignalModal struct {
	After func()
}

func (m SignalModal) Acquire(onEscape func()) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				onEscape()
				if m.After != nil {
					m.After()
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
