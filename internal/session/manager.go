package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"leavectl/internal/api"
	"leavectl/internal/auth"
	"leavectl/internal/token"
)

// State is the session snapshot observers receive. Token and User are set
// together and cleared together, never one without the other.
type State struct {
	Token         string
	User          *auth.User
	Authenticated bool
}

// AuthAPI is the slice of the backend client the manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Refresh(ctx context.Context, bearer string) (*api.LoginResult, error)
	Profile(ctx context.Context, bearer string) (*api.Profile, error)
}

// Manager owns the current session: it performs login, refresh and logout
// against the backend, persists the result, and publishes state changes to
// subscribers. Construct one per process and pass it by reference; there
// is no package-level instance.
type Manager struct {
	api   AuthAPI
	store Storage
	log   *slog.Logger

	mu    sync.Mutex
	state State
	// epoch increments on every applied transition; results carrying a
	// stale epoch are discarded instead of clobbering a newer session.
	epoch uint64

	subsMu sync.Mutex
	subs   []chan State
}

func NewManager(backend AuthAPI, store Storage, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = nopStorage{}
	}
	return &Manager{api: backend, store: store, log: logger}
}

// Initialize hydrates the session from storage. A present token and user
// with an unexpired token restores the session; anything else is a full
// logout. No network call is made.
func (m *Manager) Initialize() {
	tok, okToken := m.store.ReadToken()
	user, okUser := m.store.ReadUser()
	if okToken && okUser && !token.IsExpired(tok) {
		m.mu.Lock()
		m.epoch++
		m.state = State{Token: tok, User: user, Authenticated: true}
		st := m.state
		m.mu.Unlock()
		m.publish(st)
		return
	}
	m.Logout()
}

// Login authenticates against the backend and installs the resulting
// session. The returned user is built from token claims when they carry an
// identity, from the profile endpoint otherwise, and as a last resort
// synthesized from the submitted email.
func (m *Manager) Login(ctx context.Context, email, password string) (*auth.User, error) {
	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, loginError(err)
	}

	user := m.buildUser(ctx, res, email)
	return m.install(epoch, res.Token, user)
}

// Refresh renews the current session. Any failure ends the session: the
// store and state are cleared before the error is returned, and no retry
// is attempted.
func (m *Manager) Refresh(ctx context.Context) (*auth.User, error) {
	m.mu.Lock()
	epoch := m.epoch
	bearer := m.state.Token
	email := ""
	if m.state.User != nil {
		email = m.state.User.Email
	}
	m.mu.Unlock()

	if bearer == "" {
		m.Logout()
		return nil, &AuthError{Message: "not signed in"}
	}

	res, err := m.api.Refresh(ctx, bearer)
	if err != nil {
		m.Logout()
		return nil, refreshError(err)
	}

	user := m.buildUser(ctx, res, email)
	return m.install(epoch, res.Token, user)
}

// Logout clears storage and state unconditionally. It never contacts the
// backend and is safe to call repeatedly.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.epoch++
	m.state = State{}
	st := m.state
	m.mu.Unlock()

	m.store.ClearToken()
	m.store.ClearUser()
	m.publish(st)
}

func (m *Manager) CurrentUser() *auth.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.User
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// IsAuthenticated recomputes expiry on every call; a session can lapse
// between checks without any intervening action.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	tok := m.state.Token
	m.mu.Unlock()
	return tok != "" && !token.IsExpired(tok)
}

func (m *Manager) HasRole(role auth.Role) bool {
	u := m.CurrentUser()
	return u != nil && u.Role == role
}

func (m *Manager) HasAnyRole(roles ...auth.Role) bool {
	u := m.CurrentUser()
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

func (m *Manager) CanManageLeaves() bool {
	return m.HasAnyRole(auth.RoleManager, auth.RoleHR, auth.RoleAdmin)
}

func (m *Manager) RedirectPath() string {
	return auth.RedirectPath(m.CurrentUser())
}

// Subscribe returns a channel carrying session snapshots. Slow consumers
// only ever see the latest state; intermediate snapshots are dropped.
func (m *Manager) Subscribe() <-chan State {
	ch := make(chan State, 1)
	m.subsMu.Lock()
	m.subs = append(m.subs, ch)
	m.subsMu.Unlock()
	return ch
}

func (m *Manager) publish(st State) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// install applies a login/refresh result unless the epoch moved on while
// the network call was in flight.
func (m *Manager) install(epoch uint64, tok string, user *auth.User) (*auth.User, error) {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.log.Warn("discarding superseded session result")
		return nil, ErrSessionSuperseded
	}
	m.epoch++
	m.state = State{Token: tok, User: user, Authenticated: true}
	st := m.state
	m.mu.Unlock()

	m.store.WriteToken(tok)
	m.store.WriteUser(user)
	m.publish(st)
	return user, nil
}

func (m *Manager) buildUser(ctx context.Context, res *api.LoginResult, email string) *auth.User {
	claims, err := token.Decode(res.Token)
	if err != nil {
		m.log.Warn("token claims undecodable, falling back to profile", "err", err)
		claims = jwt.MapClaims{}
	}
	role := m.resolveRole(claims, res.Roles)

	if token.HasIdentity(claims) {
		return m.withDefaults(&auth.User{
			ID:        token.Subject(claims),
			FirstName: token.GivenName(claims),
			LastName:  token.FamilyName(claims),
			Email:     token.Email(claims),
			Role:      role,
		}, email)
	}

	if res.User != nil {
		return m.withDefaults(userFromProfile(res.User, role), email)
	}

	profile, err := m.api.Profile(ctx, res.Token)
	if err == nil && profile != nil {
		return m.withDefaults(userFromProfile(profile, role), email)
	}
	m.log.Warn("profile fetch failed, deriving user from email", "err", err)

	first, last := nameFromEmail(email)
	return &auth.User{FirstName: first, LastName: last, Email: email, Role: role}
}

func (m *Manager) resolveRole(claims jwt.MapClaims, extra []string) auth.Role {
	labels := append(token.Roles(claims), extra...)
	role, ok := auth.NormalizeRoles(labels)
	if !ok {
		if len(labels) > 0 {
			m.log.Warn("unrecognized role claim, defaulting to employee", "labels", labels)
		} else {
			m.log.Warn("no role claim in token, defaulting to employee")
		}
	}
	return role
}

func userFromProfile(p *api.Profile, fallback auth.Role) *auth.User {
	role := fallback
	if p.Role != "" {
		if r, ok := auth.NormalizeRole(p.Role); ok {
			role = r
		}
	}
	return &auth.User{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Role:       role,
		Department: p.Department,
		ManagerID:  p.ManagerID,
	}
}

// withDefaults fills the essential fields so no downstream consumer ever
// sees an empty user.
func (m *Manager) withDefaults(u *auth.User, email string) *auth.User {
	if u.Email == "" {
		u.Email = email
	}
	if u.FirstName == "" && u.LastName == "" {
		u.FirstName, u.LastName = nameFromEmail(u.Email)
	}
	if u.Role == "" {
		u.Role = auth.RoleEmployee
	}
	return u
}

// nameFromEmail derives a display name from the local part of an email:
// "jane.doe@example.com" becomes ("Jane", "Doe").
func nameFromEmail(email string) (string, string) {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	var words []string
	for _, part := range strings.Split(local, ".") {
		if part == "" {
			continue
		}
		words = append(words, capitalize(part))
	}
	switch len(words) {
	case 0:
		return "User", ""
	case 1:
		return words[0], ""
	default:
		return words[0], strings.Join(words[1:], " ")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
