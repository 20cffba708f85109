// Package workflow drives the vendor administration screen: the vendor list, the
// create/edit form, the password step of a registration and deletes.
package workflow

import (
	"context"
	"log/slog"
	"sync"

	"procurement/client/gateway"
	"procurement/models"
	"procurement/validation"
)

// State is where the create/edit workflow is.
type State string

const (
	Closed          State = "closed"
	FormOpen        State = "form-open"
	PasswordPending State = "password-pending"
	Submitting      State = "submitting"
)

// VendorGateway is the part of the remote gateway the workflow calls.
type VendorGateway interface {
	Lister
	UpdateVendor(ctx context.Context, id string, vendor models.Vendor) error
	RegisterVendor(ctx context.Context, reg models.VendorRegistration) error
	DeleteVendor(ctx context.Context, id string) error
}

type passwordDraft struct {
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// Snapshot is a copy of the workflow state safe to render.
type Snapshot struct {
	State State
	// Editing is set while the form edits an existing vendor; Form holds its values.
	Editing     bool
	Form        models.Vendor
	Pending     *models.Vendor
	Err         string
	PasswordErr string
}

// Options are the collaborators of a Workflow. Nil fields get no-op defaults, except
// a nil Confirmer, which declines every delete.
type Options struct {
	Notifier  Notifier
	Confirmer Confirmer
	Modal     Modal
	Logger    *slog.Logger
}

// Workflow is the create/edit/delete state machine layered on a List. A request
// still in flight when its form is cancelled is not aborted; when it finishes it only
// refreshes the list.
type Workflow struct {
	gw      VendorGateway
	list    *List
	notify  Notifier
	confirm Confirmer
	modal   Modal
	logger  *slog.Logger

	mu          sync.Mutex
	state       State
	resume      State
	editing     *models.Vendor
	form        models.Vendor
	pending     *models.Vendor
	err         string
	passwordErr string
	gen         uint64
	release     func()
	deleting    int
}

// New returns a closed Workflow that refreshes list after every change.
func New(gw VendorGateway, list *List, opts Options) *Workflow {
	w := &Workflow{
		gw:      gw,
		list:    list,
		notify:  opts.Notifier,
		confirm: opts.Confirmer,
		modal:   opts.Modal,
		logger:  opts.Logger,
		state:   Closed,
	}
	if w.notify == nil {
		w.notify = discardNotifier{}
	}
	if w.modal == nil {
		w.modal = noModal{}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}
	return w
}

// List returns the list the workflow refreshes.
func (w *Workflow) List() *List { return w.list }

// Create opens an empty vendor form.
func (w *Workflow) Create() error {
	return w.open(nil)
}

// Edit opens the form pre-populated with vendor.
func (w *Workflow) Edit(vendor models.Vendor) error {
	return w.open(&vendor)
}

func (w *Workflow) open(target *models.Vendor) error {
	w.mu.Lock()
	if w.state == Submitting {
		w.mu.Unlock()
		return ErrBusy
	}
	release := w.release
	w.reset()
	w.editing = target
	if target != nil {
		w.form = *target
	}
	w.state = FormOpen
	w.release = w.modal.Acquire(w.Escape)
	w.mu.Unlock()

	if release != nil {
		release()
	}
	return nil
}

// reset drops every draft and error. Callers hold w.mu.
func (w *Workflow) reset() {
	w.gen++
	w.editing = nil
	w.form = models.Vendor{}
	w.pending = nil
	w.err = ""
	w.passwordErr = ""
	w.release = nil
}

// Cancel discards all drafts and closes whatever is open.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	if w.state == Closed {
		w.mu.Unlock()
		return
	}
	release := w.release
	w.reset()
	w.state = Closed
	w.mu.Unlock()

	if release != nil {
		release()
	}
}

// Escape is what the Escape key does while a modal is open.
func (w *Workflow) Escape() { w.Cancel() }

// Close releases the modal if one is held.
func (w *Workflow) Close() { w.Cancel() }

// Submit handles the vendor form. An edit is sent right away; a new vendor is held as
// a draft until ConfirmPassword supplies its password.
func (w *Workflow) Submit(ctx context.Context, form models.Vendor) error {
	w.mu.Lock()
	switch w.state {
	case Submitting:
		w.mu.Unlock()
		return ErrBusy
	case FormOpen:
	default:
		w.mu.Unlock()
		return ErrNotOpen
	}
	w.err = ""
	w.form = form

	if verr := firstValidationError(validation.Struct(form)); verr != nil {
		w.err = verr.Message
		w.mu.Unlock()
		return verr
	}

	if w.editing == nil {
		draft := form
		draft.ID = ""
		w.pending = &draft
		w.state = PasswordPending
		release := w.release
		w.release = w.modal.Acquire(w.Escape)
		w.mu.Unlock()

		if release != nil {
			release()
		}
		return nil
	}

	id := w.editing.ID
	gen := w.gen
	w.state = Submitting
	w.resume = FormOpen
	w.mu.Unlock()

	form.ID = ""
	err := w.gw.UpdateVendor(ctx, id, form)
	return w.finish(ctx, gen, err, "update", MsgUpdated, MsgUpdateFailed)
}

// ConfirmPassword validates the password pair locally and, if it passes, registers
// the pending vendor.
func (w *Workflow) ConfirmPassword(ctx context.Context, password, confirm string) error {
	w.mu.Lock()
	switch w.state {
	case Submitting:
		w.mu.Unlock()
		return ErrBusy
	case PasswordPending:
	default:
		w.mu.Unlock()
		return ErrNoPendingDraft
	}
	w.err = ""
	w.passwordErr = ""

	if verr := checkPassword(password, confirm); verr != nil {
		w.passwordErr = verr.Message
		w.mu.Unlock()
		return verr
	}

	reg := models.VendorRegistration{Vendor: *w.pending, Password: password}
	gen := w.gen
	w.state = Submitting
	w.resume = PasswordPending
	w.mu.Unlock()

	err := w.gw.RegisterVendor(ctx, reg)
	return w.finish(ctx, gen, err, "register", MsgRegistered, MsgRegisterFailed)
}

// checkPassword reports a mismatch before a short password.
func checkPassword(password, confirm string) *ValidationError {
	errs := validation.Struct(passwordDraft{Password: password, ConfirmPassword: confirm})
	for _, e := range errs {
		if e.Tag == "eqfield" {
			return &ValidationError{Field: e.Field, Message: MsgPasswordMismatch}
		}
	}
	for _, e := range errs {
		if e.Tag == "min" {
			return &ValidationError{Field: e.Field, Message: MsgPasswordTooShort}
		}
	}
	return nil
}

// finish applies the outcome of an update or registration started under gen.
func (w *Workflow) finish(ctx context.Context, gen uint64, err error, op, okMsg, failMsg string) error {
	w.mu.Lock()
	if w.gen != gen {
		w.mu.Unlock()
		if err != nil {
			w.logger.Warn("vendor "+op+" failed after its form was closed", "error", err)
			return err
		}
		w.logger.Info("vendor " + op + " finished after its form was closed")
		w.refresh(ctx)
		return nil
	}

	if err != nil {
		msg := gateway.ServerMessage(err)
		if msg == "" {
			msg = failMsg
		}
		w.err = msg
		w.state = w.resume
		w.mu.Unlock()

		w.logger.Error("vendor "+op+" failed", "error", err)
		w.notify.Notify(LevelError, msg)
		return err
	}

	release := w.release
	w.reset()
	w.state = Closed
	w.mu.Unlock()

	if release != nil {
		release()
	}
	w.notify.Notify(LevelSuccess, okMsg)
	w.refresh(ctx)
	return nil
}

func (w *Workflow) refresh(ctx context.Context) {
	// Fetch reports its own failure.
	_ = w.list.Refresh(ctx)
}

// Delete removes a vendor after the user confirms it by name. Nothing is removed from
// the list until the refresh after a successful delete. Without a Confirmer every
// delete is declined.
func (w *Workflow) Delete(ctx context.Context, id, displayName string) error {
	if w.confirm == nil {
		return ErrDeleteDeclined
	}
	ok, err := w.confirm.ConfirmDelete(ctx, displayName)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeleteDeclined
	}

	w.mu.Lock()
	w.deleting++
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.deleting--
		w.mu.Unlock()
	}()

	if err := w.gw.DeleteVendor(ctx, id); err != nil {
		w.logger.Error("error deleting vendor", "id", id, "error", err)
		w.notify.Notify(LevelError, MsgDeleteFailed)
		return err
	}
	w.notify.Notify(LevelSuccess, MsgDeleted)
	w.refresh(ctx)
	return nil
}

// Loading is advisory: it tells the presentation layer to disable actions.
func (w *Workflow) Loading() bool {
	w.mu.Lock()
	busy := w.state == Submitting || w.deleting > 0
	w.mu.Unlock()
	return busy || w.list.Loading()
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err is the inline banner: the last error of the open form, cleared on the next attempt.
func (w *Workflow) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Snapshot returns a copy of the state for rendering.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Snapshot{
		State:       w.state,
		Editing:     w.editing != nil,
		Form:        w.form,
		Err:         w.err,
		PasswordErr: w.passwordErr,
	}
	if w.pending != nil {
		p := *w.pending
		s.Pending = &p
	}
	return s
}
