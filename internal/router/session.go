package router

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/VeranoAtelier/verano-web/internal/gallery"
	"github.com/VeranoAtelier/verano-web/internal/lightbox"
	"github.com/VeranoAtelier/verano-web/internal/templatemanager"
	"github.com/VeranoAtelier/verano-web/locale"
	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/crypto/argon2"
)

// Session is one visitor's lightbox over one album page: controller,
// presenter and input router built together and reused for every
// open/close/next/prev cycle until the session expires. The mutex
// serializes the visitor's own events; inside it the core runs
// single-threaded, the way a UI event loop would drive it.
type Session struct {
	key        string
	expiresAt  time.Time
	Album      string
	Index      *gallery.Index
	Controller *lightbox.Controller
	Presenter  *lightbox.ModalPresenter
	Input      *lightbox.InputRouter

	mu sync.Mutex
}

func (s *Session) Route(ev lightbox.Event) (handled bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Input.Route(ev)
}

// Snapshot returns the state and last rendered partial as one consistent
// pair.
func (s *Session) Snapshot() (lightbox.State, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Controller.State(), s.Presenter.HTML()
}

// CurrentItem resolves the item the session is showing right now.
func (s *Session) CurrentItem() (gallery.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Controller.State().Open {
		return gallery.Item{}, false
	}
	return s.Index.At(s.Controller.State().Current)
}

// SessionStore keeps visitor sessions in a ristretto cache with TTL.
// Every way a session can leave the store runs Controller.Shutdown, so an
// expired or evicted session can never leak a held scroll lock.
type SessionStore struct {
	cache *ristretto.Cache[string, *Session]
	ttl   time.Duration
	salt  []byte
	tm    *templatemanager.TemplateManager
	l     *locale.LocaleConfig

	mu      sync.Mutex
	live    map[string]*Session
	hashMap map[string]string
}

func NewSessionStore(salt []byte, ttl time.Duration, tm *templatemanager.TemplateManager, l *locale.LocaleConfig) (*SessionStore, error) {
	store := &SessionStore{
		ttl:     ttl,
		salt:    salt,
		tm:      tm,
		l:       l,
		live:    make(map[string]*Session),
		hashMap: make(map[string]string),
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *Session]{
		NumCounters: 1e5,
		MaxCost:     1 << 14,
		BufferItems: 64,
		OnEvict: func(item *ristretto.Item[*Session]) {
			if item.Value != nil {
				store.retire(item.Value)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fail to initialize session cache: %w", err)
	}
	store.cache = cache

	return store, nil
}

// Acquire returns the visitor's session for an album, building it on
// first use. The presenter is created exactly once per session; input
// bindings stay attached to it for the session's whole life.
func (st *SessionStore) Acquire(visitorID string, album string, index *gallery.Index) *Session {
	key := st.hash(visitorID) + "." + album

	if session, ok := st.cache.Get(key); ok && session != nil {
		return session
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	// The ristretto write path is asynchronous; the live map is the
	// authoritative membership check. A session past its TTL may still
	// sit here when the cache dropped its entry without an eviction
	// callback, so expiry is enforced on this path too.
	if session, ok := st.live[key]; ok {
		if time.Now().Before(session.expiresAt) {
			return session
		}
		session.mu.Lock()
		session.Controller.Shutdown()
		session.mu.Unlock()
		delete(st.live, key)
	}

	presenter := lightbox.NewModalPresenter(st.tm, st.l)
	controller := lightbox.NewController(index, presenter, lightbox.NewPageScrollLock())
	session := &Session{
		key:        key,
		expiresAt:  time.Now().Add(st.ttl),
		Album:      album,
		Index:      index,
		Controller: controller,
		Presenter:  presenter,
		Input:      lightbox.NewInputRouter(controller),
	}

	st.live[key] = session
	st.cache.SetWithTTL(key, session, 1, st.ttl)

	return session
}

// Peek returns an existing session without creating one.
func (st *SessionStore) Peek(visitorID string, album string) (*Session, bool) {
	key := st.hash(visitorID) + "." + album

	if session, ok := st.cache.Get(key); ok && session != nil {
		return session, true
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.live[key]
	if !ok || time.Now().After(session.expiresAt) {
		return nil, false
	}
	return session, true
}

// Close tears down every remaining session and the cache behind them.
func (st *SessionStore) Close() {
	st.mu.Lock()
	for _, session := range st.live {
		session.mu.Lock()
		session.Controller.Shutdown()
		session.mu.Unlock()
	}
	st.live = make(map[string]*Session)
	st.mu.Unlock()

	st.cache.Close()
}

func (st *SessionStore) retire(session *Session) {
	session.mu.Lock()
	session.Controller.Shutdown()
	session.mu.Unlock()

	st.mu.Lock()
	delete(st.live, session.key)
	st.mu.Unlock()
}

func (st *SessionStore) hash(id string) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	if val, ok := st.hashMap[id]; ok {
		return val
	}

	st.hashMap[id] = base64.RawStdEncoding.EncodeToString(argon2.IDKey([]byte(id), st.salt, 1, 64*1024, 4, 32))
	return st.hashMap[id]
}
