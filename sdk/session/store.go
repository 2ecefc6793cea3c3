package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// ScopeDurable names the durable ("remember me") scope.
	ScopeDurable = "durable"
	// ScopeEphemeral names the ephemeral scope.
	ScopeEphemeral = "ephemeral"
)

// StoreOptions represents optional settings for a Store.
type StoreOptions struct {
	// Now returns the current time. It defaults to time.Now and exists so
	// the expiry boundary can be exercised deterministically.
	Now func() time.Time
	// Logger is used to report storage failures. It defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// Store is the single source of truth for who is logged in. It keeps the
// current Session in memory and mirrors it into one of two Scopes. None of
// its operations return errors; any storage ambiguity degrades to the
// logged-out state.
//
// A Store is safe for concurrent use.
type Store struct {
	durable   Scope
	ephemeral Scope
	now       func() time.Time
	logger    *zap.Logger

	mu      sync.RWMutex
	session Session
	// generation is incremented every time a new session begins.
	generation uint64
	// tornDown is one more than the generation of the most recent teardown,
	// so that its zero value means "no teardown yet".
	tornDown uint64
	hydrated bool

	listenersMu    sync.Mutex
	listeners      map[uint64]func(Session)
	nextListenerID uint64
}

// NewStore returns a Store in the logged-out state. Nothing is read from the
// scopes until Hydrate or Refresh is called.
func NewStore(durable, ephemeral Scope, opts *StoreOptions) *Store {
	if opts == nil {
		opts = &StoreOptions{}
	}
	s := &Store{
		durable:   durable,
		ephemeral: ephemeral,
		now:       opts.Now,
		logger:    opts.Logger,
		listeners: map[uint64]func(Session){},
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// SetAuth establishes an authenticated session. When persist is true the
// session is written to the durable scope, otherwise to the ephemeral scope;
// either way the other scope is cleared. An empty token is treated as a
// logout.
func (s *Store) SetAuth(
	user User,
	token string,
	permissions []string,
	persist bool,
) {
	if token == "" {
		s.logger.Warn("refusing to set a session without a token")
		s.Logout()
		return
	}
	target, targetName := s.ephemeral, ScopeEphemeral
	other, otherName := s.durable, ScopeDurable
	if persist {
		target, targetName, other, otherName =
			other, otherName, target, targetName
	}

	s.mu.Lock()
	s.writeScope(target, targetName, newRecord(user, token, s.now()))
	s.clearScope(other, otherName)
	u := copyUser(user)
	s.session = Session{
		User:            &u,
		Token:           token,
		Permissions:     copyStrings(permissions),
		IsAuthenticated: true,
	}
	s.generation++
	s.hydrated = true
	snapshot := s.session.copy()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Logout clears the in-memory session and both scopes. It is safe to call
// when no session exists.
func (s *Store) Logout() {
	s.mu.Lock()
	changed := s.clearLocked()
	snapshot := s.session.copy()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// Teardown is Logout on behalf of a request, made with the credential of the
// given generation, that the server rejected as unauthorized. The session is
// always cleared. The return value is true only for the first teardown of
// that generation, which lets callers perform follow-up work, like
// navigating to a login page, at most once even when several in-flight
// requests are rejected.
func (s *Store) Teardown(generation uint64) bool {
	s.mu.Lock()
	first := generation+1 > s.tornDown
	if first {
		s.tornDown = generation + 1
	}
	changed := s.clearLocked()
	snapshot := s.session.copy()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
	return first
}

// UpdateUser replaces the user of the current session without touching its
// token. If the session is persisted, the stored record is rewritten in the
// same scope with its original timestamp, so that updating the user never
// extends the remember-me window. It does nothing when no session exists.
func (s *Store) UpdateUser(user User) {
	s.mu.Lock()
	if !s.session.IsAuthenticated {
		s.mu.Unlock()
		s.logger.Debug("ignoring user update; no session exists")
		return
	}
	u := copyUser(user)
	s.session.User = &u
	for _, sc := range []struct {
		scope Scope
		name  string
	}{
		{s.durable, ScopeDurable},
		{s.ephemeral, ScopeEphemeral},
	} {
		record, ok := s.readScope(sc.scope, sc.name)
		if !ok {
			continue
		}
		updated := newRecord(user, s.session.Token, s.now())
		updated.Timestamp = record.Timestamp
		s.writeScope(sc.scope, sc.name, updated)
		break
	}
	snapshot := s.session.copy()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Refresh re-derives the in-memory session from storage. The durable scope is
// consulted first; an expired durable record is deleted and the ephemeral
// scope is consulted next. If neither holds a valid record, the in-memory
// session is cleared.
func (s *Store) Refresh() {
	s.mu.Lock()
	record, found := s.lookup(true)
	var changed bool
	if found {
		changed = s.applyLocked(record)
	} else {
		changed = s.clearLocked()
	}
	s.hydrated = true
	snapshot := s.session.copy()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// Hydrate restores a persisted session at start-up. It runs at most once per
// Store and never overrides a session that is already authenticated, such as
// one established by SetAuth before Hydrate was called.
func (s *Store) Hydrate() {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	var changed bool
	if !s.session.IsAuthenticated {
		if record, found := s.lookup(true); found {
			changed = s.applyLocked(record)
		}
	}
	snapshot := s.session.copy()
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
}

// Hydrated returns true once Hydrate, Refresh or SetAuth has been called.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Session returns a copy of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.copy()
}

// Token returns the current bearer token, or an empty string.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Credential returns the current bearer token along with the generation of
// the session it belongs to.
func (s *Store) Credential() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token, s.generation
}

// Scope returns the name of the scope currently holding a valid persisted
// record (ScopeDurable or ScopeEphemeral), or an empty string. Unlike
// Refresh, it never modifies storage.
func (s *Store) Scope() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.readScope(s.durable, ScopeDurable); ok &&
		!Expired(record.Timestamp, s.now()) {
		return ScopeDurable
	}
	if _, ok := s.readScope(s.ephemeral, ScopeEphemeral); ok {
		return ScopeEphemeral
	}
	return ""
}

// Subscribe registers fn to be called with a snapshot of the session after
// every change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.listenersMu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()
	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(snapshot Session) {
	s.listenersMu.Lock()
	fns := make([]func(Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()
	for _, fn := range fns {
		fn(snapshot.copy())
	}
}

// lookup finds the record a session should be restored from. Callers must
// hold s.mu.
func (s *Store) lookup(clearExpired bool) (Record, bool) {
	if record, ok := s.readScope(s.durable, ScopeDurable); ok {
		if !Expired(record.Timestamp, s.now()) {
			return record, true
		}
		s.logger.Debug(
			"durable session record expired",
			zap.Int64("timestamp", record.Timestamp),
		)
		if clearExpired {
			s.clearScope(s.durable, ScopeDurable)
		}
	}
	return s.readScope(s.ephemeral, ScopeEphemeral)
}

// applyLocked replaces the in-memory session with the one described by
// record and reports whether anything changed. Callers must hold s.mu.
func (s *Store) applyLocked(record Record) bool {
	sameToken := s.session.IsAuthenticated && s.session.Token == record.Token
	u := copyUser(*record.User)
	restored := Session{
		User:            &u,
		Token:           record.Token,
		IsAuthenticated: true,
	}
	if sameToken {
		// Permissions are never persisted; keep the ones this session began
		// with.
		restored.Permissions = s.session.Permissions
	} else {
		s.generation++
	}
	s.session = restored
	return true
}

// clearLocked resets both scopes and the in-memory session and reports
// whether the in-memory session changed. Callers must hold s.mu.
func (s *Store) clearLocked() bool {
	s.clearScope(s.durable, ScopeDurable)
	s.clearScope(s.ephemeral, ScopeEphemeral)
	changed := s.session.IsAuthenticated
	s.session = Session{}
	return changed
}

func (s *Store) readScope(scope Scope, name string) (Record, bool) {
	data, err := scope.Read()
	if err != nil {
		s.logger.Warn(
			"error reading session record; treating it as absent",
			zap.String("scope", name),
			zap.Error(err),
		)
		return Record{}, false
	}
	if data == nil {
		return Record{}, false
	}
	record, err := decodeRecord(data)
	if err != nil {
		s.logger.Warn(
			"unparsable session record; treating it as absent",
			zap.String("scope", name),
			zap.Error(err),
		)
		return Record{}, false
	}
	if !record.usable() {
		return Record{}, false
	}
	return record, true
}

func (s *Store) writeScope(scope Scope, name string, record Record) {
	data, err := encodeRecord(record)
	if err == nil {
		err = scope.Write(data)
	}
	if err != nil {
		s.logger.Warn(
			"error persisting session record",
			zap.String("scope", name),
			zap.Error(err),
		)
	}
}

func (s *Store) clearScope(scope Scope, name string) {
	if err := scope.Clear(); err != nil {
		s.logger.Warn(
			"error clearing session record",
			zap.String("scope", name),
			zap.Error(err),
		)
	}
}

func copyStrings(strs []string) []string {
	if strs == nil {
		return nil
	}
	return append([]string{}, strs...)
}
