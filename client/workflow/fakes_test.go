package workflow

import (
	"context"
	"errors"
	"sync"

	"procurement/client/gateway"
	"procurement/models"
)

type notification struct {
	Level   Level
	Message string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notification
}

func (n *recordingNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, notification{level, message})
}

func (n *recordingNotifier) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.notes...)
}

type countingModal struct {
	mu       sync.Mutex
	acquired int
	released int
	escape   func()
}

func (m *countingModal) Acquire(onEscape func()) func() {
	m.mu.Lock()
	m.acquired++
	m.escape = onEscape
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.released++
			m.mu.Unlock()
		})
	}
}

func (m *countingModal) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquired, m.released
}

type fakeGateway struct {
	mu        sync.Mutex
	lists     []gateway.Query
	updates   []string
	registers []models.VendorRegistration
	deletes   []string

	vendors     []models.Vendor
	listErr     error
	updateErr   error
	registerErr error
	deleteErr   error

	// when set, UpdateVendor and RegisterVendor signal started and wait for release
	started chan struct{}
	release chan struct{}
}

func (g *fakeGateway) ListVendors(_ context.Context, q gateway.Query) (*models.VendorPage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lists = append(g.lists, q)
	if g.listErr != nil {
		return nil, g.listErr
	}
	return &models.VendorPage{Vendors: append([]models.Vendor(nil), g.vendors...), TotalPages: 1}, nil
}

func (g *fakeGateway) wait() {
	if g.started != nil {
		g.started <- struct{}{}
		<-g.release
	}
}

func (g *fakeGateway) UpdateVendor(_ context.Context, id string, _ models.Vendor) error {
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates = append(g.updates, id)
	return g.updateErr
}

func (g *fakeGateway) RegisterVendor(_ context.Context, reg models.VendorRegistration) error {
	g.wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registers = append(g.registers, reg)
	return g.registerErr
}

func (g *fakeGateway) DeleteVendor(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletes = append(g.deletes, id)
	return g.deleteErr
}

func (g *fakeGateway) listCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.lists)
}

func (g *fakeGateway) registerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.registers)
}

var errBoom = errors.New("boom")

func newTestWorkflow(gw *fakeGateway) (*Workflow, *recordingNotifier, *countingModal) {
	notes := &recordingNotifier{}
	modal := &countingModal{}
	list := NewList(gw, notes, nil, DefaultPageSize)
	wf := New(gw, list, Options{Notifier: notes, Modal: modal})
	return wf, notes, modal
}
