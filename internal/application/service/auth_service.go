package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
	"github.com/sangkips/stockflow-dashboard/internal/domain/repository"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/backend"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
	"github.com/sangkips/stockflow-dashboard/pkg/utils"
	"go.uber.org/zap"
)

// SessionManager signs operators in and out and keeps their sessions.
// Sessions live in memory; sealed credentials are persisted so a restart does
// not sign everyone out.
type SessionManager struct {
	authRepo     repository.AuthRepository
	sessionRepo  repository.SessionRepository
	sealer       *utils.Sealer
	ttl          time.Duration
	newWorkspace func() *Workspace
	onClose      func(ctx context.Context, sessionID string)
	logger       *zap.Logger
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// SessionManagerConfig wires a SessionManager
type SessionManagerConfig struct {
	TTL          time.Duration
	Sealer       *utils.Sealer
	NewWorkspace func() *Workspace
	// OnClose runs after a session is removed from storage
	OnClose func(ctx context.Context, sessionID string)
	Logger  *zap.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(authRepo repository.AuthRepository, sessionRepo repository.SessionRepository, cfg SessionManagerConfig) *SessionManager {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.NewWorkspace == nil {
		cfg.NewWorkspace = func() *Workspace { return NewWorkspace(nil) }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &SessionManager{
		authRepo:     authRepo,
		sessionRepo:  sessionRepo,
		sealer:       cfg.Sealer,
		ttl:          cfg.TTL,
		newWorkspace: cfg.NewWorkspace,
		onClose:      cfg.OnClose,
		logger:       cfg.Logger,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     enum.UserRole
}

// Login authenticates against the backend and opens a session
func (m *SessionManager) Login(ctx context.Context, input *LoginInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.Validation("Email and password are required")
	}

	result, err := m.authRepo.Login(ctx, entity.Credentials{Email: email, Password: input.Password})
	if err != nil {
		return nil, err
	}
	return m.open(ctx, result)
}

// Register creates an operator account on the backend and opens a session for it
func (m *SessionManager) Register(ctx context.Context, input *RegisterInput) (*Session, error) {
	role := input.Role
	if role == "" {
		role = enum.UserRoleTechnician
	}
	if !role.IsValid() {
		return nil, apperror.Validation("Invalid role")
	}

	result, err := m.authRepo.Register(ctx, entity.Registration{
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Name:     strings.TrimSpace(input.Name),
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	return m.open(ctx, result)
}

func (m *SessionManager) open(ctx context.Context, result *entity.AuthResult) (*Session, error) {
	now := m.now()
	s := m.newSession(utils.NewSessionID(), result.User, result.Token, result.RefreshToken, now.Add(m.ttl))

	if err := m.persist(ctx, s, now); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session opened", zap.String("session", shortID(s.ID)), zap.String("user", result.User.ID))
	return s, nil
}

func (m *SessionManager) newSession(id string, user entity.User, access, refresh string, expiresAt time.Time) *Session {
	return &Session{
		ID:           id,
		user:         user,
		accessToken:  access,
		refreshToken: refresh,
		expiresAt:    expiresAt,
		onInvalidate: m.drop,
		workspace:    m.newWorkspace(),
	}
}

func (m *SessionManager) persist(ctx context.Context, s *Session, now time.Time) error {
	access, err := m.sealer.Seal(s.AccessToken())
	if err != nil {
		return apperror.NewInternalError("Failed to store session", err)
	}
	var refresh string
	if rt := s.RefreshToken(); rt != "" {
		if refresh, err = m.sealer.Seal(rt); err != nil {
			return apperror.NewInternalError("Failed to store session", err)
		}
	}

	rec := &entity.SessionRecord{
		ID:           s.ID,
		UserID:       s.User().ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.ExpiresAt(),
		LastSeenAt:   now,
	}
	if err := m.sessionRepo.Save(ctx, rec); err != nil {
		return apperror.NewInternalError("Failed to store session", err)
	}
	return nil
}

// Restore returns the live session for id, rebuilding it from storage after a
// restart. The stored token must still be unexpired and accepted by /auth/me.
func (m *SessionManager) Restore(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperror.ErrUnauthorized
	}
	now := m.now()

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		if !s.Valid() {
			return nil, apperror.ErrSessionExpired
		}
		if !now.Before(s.ExpiresAt()) {
			s.Invalidate()
			return nil, apperror.ErrSessionExpired
		}
		m.touch(ctx, s, now)
		return s, nil
	}

	rec, err := m.sessionRepo.Get(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrSessionExpired
	}
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load session", err)
	}
	if rec.IsExpired(now) {
		m.forget(ctx, id)
		return nil, apperror.ErrSessionExpired
	}

	access, err := m.sealer.Open(rec.AccessToken)
	if err != nil {
		m.forget(ctx, id)
		return nil, apperror.ErrSessionExpired
	}
	var refresh string
	if rec.RefreshToken != "" {
		if refresh, err = m.sealer.Open(rec.RefreshToken); err != nil {
			refresh = ""
		}
	}
	if utils.IsTokenExpired(access, now, 0) {
		m.forget(ctx, id)
		return nil, apperror.ErrSessionExpired
	}

	s = m.newSession(id, entity.User{ID: rec.UserID}, access, refresh, now.Add(m.ttl))
	user, err := m.authRepo.Me(backend.WithTokens(ctx, s))
	if err != nil {
		if apperror.IsKind(err, apperror.KindUnauthorized) || apperror.IsKind(err, apperror.KindRejected) ||
			apperror.IsKind(err, apperror.KindMalformedResponse) {
			m.forget(ctx, id)
			return nil, apperror.ErrSessionExpired
		}
		return nil, err
	}
	s.setUser(*user)

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		// a concurrent request restored it first
		s = existing
	} else {
		m.sessions[id] = s
	}
	m.mu.Unlock()

	m.touch(ctx, s, now)
	m.logger.Info("session restored", zap.String("session", shortID(id)), zap.String("user", user.ID))
	return s, nil
}

func (m *SessionManager) touch(ctx context.Context, s *Session, now time.Time) {
	expires := now.Add(m.ttl)
	s.setExpiry(expires)
	if err := m.sessionRepo.Touch(ctx, s.ID, now, expires); err != nil {
		m.logger.Warn("session touch failed", zap.String("session", shortID(s.ID)), zap.Error(err))
	}
}

// Logout ends the session locally whatever the backend answers
func (m *SessionManager) Logout(ctx context.Context, s *Session) error {
	if err := m.authRepo.Logout(backend.WithTokens(ctx, s), s.RefreshToken()); err != nil {
		m.logger.Warn("backend logout failed", zap.String("session", shortID(s.ID)), zap.Error(err))
	}
	s.Invalidate()
	return nil
}

// LogoutAll revokes every backend session of the operator and drops all local ones
func (m *SessionManager) LogoutAll(ctx context.Context, s *Session) error {
	userID := s.User().ID
	if err := m.authRepo.LogoutAll(backend.WithTokens(ctx, s)); err != nil {
		return err
	}

	m.mu.RLock()
	var owned []*Session
	for _, other := range m.sessions {
		if other.User().ID == userID {
			owned = append(owned, other)
		}
	}
	m.mu.RUnlock()

	for _, other := range owned {
		other.Invalidate()
	}
	if err := m.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		m.logger.Warn("session cleanup failed", zap.String("user", userID), zap.Error(err))
	}
	s.Invalidate()
	return nil
}

// RefreshUser re-reads the operator from /auth/me
func (m *SessionManager) RefreshUser(ctx context.Context, s *Session) (*entity.User, error) {
	user, err := m.authRepo.Me(backend.WithTokens(ctx, s))
	if err != nil {
		return nil, err
	}
	s.setUser(*user)
	return user, nil
}

// RefreshTokens exchanges the refresh token for a new pair and persists it
func (m *SessionManager) RefreshTokens(ctx context.Context, s *Session) error {
	rt := s.RefreshToken()
	if rt == "" {
		return apperror.NewBadRequestError("No refresh token for this session")
	}
	result, err := m.authRepo.Refresh(backend.WithTokens(ctx, s), rt)
	if err != nil {
		return err
	}
	s.setTokens(result.Token, result.RefreshToken)
	if result.User.ID != "" {
		s.setUser(result.User)
	}
	return m.persist(ctx, s, m.now())
}

// Invalidate tears a session down immediately
func (m *SessionManager) Invalidate(s *Session) {
	s.Invalidate()
}

// Active returns the number of sessions held in memory
func (m *SessionManager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// drop is the teardown hook every session calls once on invalidation
func (m *SessionManager) drop(s *Session) {
	m.mu.Lock()
	if cur, ok := m.sessions[s.ID]; ok && cur == s {
		delete(m.sessions, s.ID)
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.forget(ctx, s.ID)
	if m.onClose != nil {
		m.onClose(ctx, s.ID)
	}
	m.logger.Info("session closed", zap.String("session", shortID(s.ID)))
}

func (m *SessionManager) forget(ctx context.Context, id string) {
	if err := m.sessionRepo.Delete(ctx, id); err != nil {
		m.logger.Warn("session delete failed", zap.String("session", shortID(id)), zap.Error(err))
	}
}

// Sweep drops idle sessions from memory and storage
func (m *SessionManager) Sweep(ctx context.Context) (int64, error) {
	now := m.now()

	m.mu.RLock()
	var idle []*Session
	for _, s := range m.sessions {
		if !now.Before(s.ExpiresAt()) {
			idle = append(idle, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range idle {
		s.Invalidate()
	}
	return m.sessionRepo.DeleteExpired(ctx, now)
}

// StartSweeper sweeps every interval until ctx is done
func (m *SessionManager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := m.Sweep(ctx)
				if err != nil {
					m.logger.Warn("session sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					m.logger.Info("expired sessions swept", zap.Int64("count", n))
				}
			}
		}
	}()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
