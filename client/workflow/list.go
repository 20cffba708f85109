package workflow

import (
	"context"
	"log/slog"
	"sync"

	"procurement/client/gateway"
	"procurement/models"
	"procurement/validation"
)

// ListState is the load state of the vendor list.
type ListState string

const (
	ListIdle    ListState = "idle"
	ListLoading ListState = "loading"
	ListLoaded  ListState = "loaded"
	ListError   ListState = "error"
)

// DefaultPageSize is the limit of the first fetch.
const DefaultPageSize = 5

// Lister fetches one page of vendors.
type Lister interface {
	ListVendors(ctx context.Context, q gateway.Query) (*models.VendorPage, error)
}

type listQuery struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1"`
}

// ListSnapshot is a copy of the list state safe to render.
type ListSnapshot struct {
	State      ListState
	Vendors    []models.Vendor
	TotalPages int
	Query      gateway.Query
	Err        string
}

// List holds the vendors currently on screen. Overlapping fetches are not fenced: each
// response overwrites the state when it arrives, so a slow earlier request can replace
// the result of a faster later one.
type List struct {
	gw     Lister
	notify Notifier
	logger *slog.Logger

	mu         sync.Mutex
	state      ListState
	vendors    []models.Vendor
	totalPages int
	query      gateway.Query
	err        string
}

// NewList returns an idle list whose first query is page 1 of pageSize vendors.
func NewList(gw Lister, notify Notifier, logger *slog.Logger, pageSize int) *List {
	if notify == nil {
		notify = discardNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &List{
		gw:         gw,
		notify:     notify,
		logger:     logger,
		state:      ListIdle,
		vendors:    []models.Vendor{},
		totalPages: 1,
		query:      gateway.Query{Page: 1, Limit: pageSize},
	}
}

// Fetch loads one page. Page and limit must be positive; otherwise nothing is sent.
func (l *List) Fetch(ctx context.Context, q gateway.Query) error {
	if verr := firstValidationError(validation.Struct(listQuery{Page: q.Page, Limit: q.Limit})); verr != nil {
		return verr
	}

	l.mu.Lock()
	l.state = ListLoading
	l.err = ""
	l.query = q
	l.mu.Unlock()

	page, err := l.gw.ListVendors(ctx, q)

	l.mu.Lock()
	if err != nil {
		l.state = ListError
		l.vendors = []models.Vendor{}
		l.err = MsgFetchFailed
		l.mu.Unlock()

		l.logger.Error("error fetching vendors", "page", q.Page, "limit", q.Limit, "search", q.Search, "error", err)
		l.notify.Notify(LevelError, MsgFetchFailed)
		return err
	}
	l.state = ListLoaded
	l.vendors = page.Vendors
	l.totalPages = page.TotalPages
	if l.totalPages < 1 {
		l.totalPages = 1
	}
	l.mu.Unlock()
	return nil
}

// Refresh re-runs the last query, page 1 with the default page size before any fetch.
func (l *List) Refresh(ctx context.Context) error {
	return l.Fetch(ctx, l.Query())
}

// Query is the query the next Refresh runs.
func (l *List) Query() gateway.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *List) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == ListLoading
}

// Snapshot returns a copy of the list state.
func (l *List) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	vendors := make([]models.Vendor, len(l.vendors))
	copy(vendors, l.vendors)
	return ListSnapshot{
		State:      l.state,
		Vendors:    vendors,
		TotalPages: l.totalPages,
		Query:      l.query,
		Err:        l.err,
	}
}
