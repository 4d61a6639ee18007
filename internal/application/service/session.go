package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/cart"
	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/receipt"
)

// Session is one signed-in operator. It is the backend.TokenSource for every
// call made on the operator's behalf.
type Session struct {
	ID string

	mu           sync.RWMutex
	user         entity.User
	accessToken  string
	refreshToken string
	expiresAt    time.Time

	invalidated  atomic.Bool
	onInvalidate func(*Session)

	workspace *Workspace
}

// AccessToken returns the backend bearer token, empty once invalidated
func (s *Session) AccessToken() string {
	if s.invalidated.Load() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Invalidate tears the session down. Only the first call has an effect.
func (s *Session) Invalidate() {
	if !s.invalidated.CompareAndSwap(false, true) {
		return
	}
	if s.onInvalidate != nil {
		s.onInvalidate(s)
	}
}

// Valid reports whether the session has not been invalidated
func (s *Session) Valid() bool {
	return !s.invalidated.Load()
}

// User returns the operator as last fetched from the backend
func (s *Session) User() entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// ExpiresAt is the idle expiry, pushed forward on every authenticated request
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) Workspace() *Workspace {
	return s.workspace
}

func (s *Session) setUser(u entity.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Session) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	if refresh != "" {
		s.refreshToken = refresh
	}
	s.mu.Unlock()
}

func (s *Session) setExpiry(t time.Time) {
	s.mu.Lock()
	s.expiresAt = t
	s.mu.Unlock()
}

// Workspace is the per-session POS state: the cart, the receipt exporter and
// short-lived snapshots of backend data. mu serializes cart and snapshot mutation.
type Workspace struct {
	mu         sync.Mutex
	cart       *cart.Cart
	exporter   *receipt.Exporter
	products   []entity.Product
	categories []entity.Category
	lastSale   *entity.Sale
	loadedAt   time.Time
}

// NewWorkspace creates an empty workspace around exporter
func NewWorkspace(exporter *receipt.Exporter) *Workspace {
	return &Workspace{cart: cart.New(), exporter: exporter}
}

func (w *Workspace) Exporter() *receipt.Exporter {
	return w.exporter
}

// LastSale returns the most recent sale completed in this workspace, or nil
func (w *Workspace) LastSale() *entity.Sale {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSale
}

func (w *Workspace) product(id string) (entity.Product, bool) {
	for _, p := range w.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (w *Workspace) category(id string) (entity.Category, bool) {
	for _, c := range w.categories {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Category{}, false
}
