package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"procurement/models"
)

// Memory repositories back DB_TYPE=memory (local runs without a database) and the
// HTTP tests. They enforce the same unique keys as the real stores.

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func pageBounds(n int, filters models.ListFilters) (int, int) {
	start := int(filters.Offset())
	if start > n {
		start = n
	}
	end := start + filters.Limit
	if end > n {
		end = n
	}
	return start, end
}

type MemoryVendorRepo struct {
	mu      sync.RWMutex
	vendors map[string]models.Vendor
}

func NewMemoryVendorRepo() *MemoryVendorRepo {
	return &MemoryVendorRepo{vendors: map[string]models.Vendor{}}
}

func (r *MemoryVendorRepo) ListVendors(_ context.Context, filters models.ListFilters) ([]models.Vendor, int64, error) {
	filters = filters.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Vendor{}
	for _, v := range r.vendors {
		if filters.Search == "" ||
			containsFold(v.Name, filters.Search) ||
			containsFold(v.VendorCode, filters.Search) ||
			containsFold(v.ContactPerson, filters.Search) {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	start, end := pageBounds(len(matched), filters)
	return matched[start:end], int64(len(matched)), nil
}

func (r *MemoryVendorRepo) GetVendor(_ context.Context, id string) (*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (r *MemoryVendorRepo) codeTaken(code, exceptID string) bool {
	for id, v := range r.vendors {
		if id != exceptID && v.VendorCode == code {
			return true
		}
	}
	return false
}

func (r *MemoryVendorRepo) CreateVendor(_ context.Context, vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codeTaken(vendor.VendorCode, "") {
		return ErrDuplicate
	}
	if vendor.ID == "" {
		vendor.ID = uuid.NewString()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now().UTC()
	}
	r.vendors[vendor.ID] = *vendor
	return nil
}

func (r *MemoryVendorRepo) UpdateVendor(_ context.Context, id string, vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.vendors[id]
	if !ok {
		return ErrNotFound
	}
	if r.codeTaken(vendor.VendorCode, id) {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	vendor.ID = id
	vendor.CreatedAt = existing.CreatedAt
	vendor.UpdatedAt = &now
	r.vendors[id] = *vendor
	return nil
}

func (r *MemoryVendorRepo) DeleteVendor(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vendors[id]; !ok {
		return ErrNotFound
	}
	delete(r.vendors, id)
	return nil
}

type MemoryItemRepo struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewMemoryItemRepo() *MemoryItemRepo {
	return &MemoryItemRepo{items: map[string]models.Item{}}
}

func (r *MemoryItemRepo) ListItems(_ context.Context, filters models.ListFilters) ([]models.Item, int64, error) {
	filters = filters.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Item{}
	for _, it := range r.items {
		if filters.Search == "" ||
			containsFold(it.ItemCode, filters.Search) ||
			containsFold(it.ItemName, filters.Search) {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ItemCode < matched[j].ItemCode })

	start, end := pageBounds(len(matched), filters)
	return matched[start:end], int64(len(matched)), nil
}

func (r *MemoryItemRepo) GetItem(_ context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (r *MemoryItemRepo) codeTaken(code, exceptID string) bool {
	for id, it := range r.items {
		if id != exceptID && it.ItemCode == code {
			return true
		}
	}
	return false
}

func (r *MemoryItemRepo) CreateItem(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codeTaken(item.ItemCode, "") {
		return ErrDuplicate
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryItemRepo) UpdateItem(_ context.Context, id string, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	if r.codeTaken(item.ItemCode, id) {
		return ErrDuplicate
	}
	item.ID = id
	r.items[id] = *item
	return nil
}

func (r *MemoryItemRepo) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.AppUser // by username
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]models.AppUser{}}
}

func (r *MemoryUserRepo) CreateUser(_ context.Context, user *models.AppUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return ErrDuplicate
	}
	if err := hashPassword(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepo) GetUserByUsername(_ context.Context, username string) (*models.AppUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepo) UpdateUsernameByVendor(_ context.Context, vendorID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok && u.VendorID != vendorID {
		return ErrDuplicate
	}
	for name, u := range r.users {
		if u.VendorID == vendorID && name != username {
			delete(r.users, name)
			u.Username = username
			r.users[username] = u
		}
	}
	return nil
}

func (r *MemoryUserRepo) DeleteUsersByVendor(_ context.Context, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, u := range r.users {
		if u.VendorID == vendorID {
			delete(r.users, name)
		}
	}
	return nil
}
