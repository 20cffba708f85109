package workflow

import "context"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows transient notifications.
type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

type discardNotifier struct{}

func (discardNotifier) Notify(Level, string) {}

// Confirmer asks the user to confirm deleting the named vendor.
type Confirmer interface {
	ConfirmDelete(ctx context.Context, displayName string) (bool, error)
}

type ConfirmerFunc func(ctx context.Context, displayName string) (bool, error)

func (f ConfirmerFunc) ConfirmDelete(ctx context.Context, displayName string) (bool, error) {
	return f(ctx, displayName)
}
