/******************************************************************************
 *
 *  Description :
 *
 *  Management of live websocket sessions.
 *
 *****************************************************************************/

package main

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store"
	"github.com/livelog/livelog/server/store/types"
)

// SessionStore holds live sessions, indexed by session ID.
type SessionStore struct {
	lock sync.Mutex

	sessCache map[string]*Session
}

// NewSession creates a new session for an authenticated user and saves it to
// the session store.
func (ss *SessionStore) NewSession(conn *websocket.Conn, usr *types.User) (*Session, int) {
	var s Session

	s.sid = store.Store.GetUidString()
	s.ws = conn
	s.uid = usr.Uid()
	s.usr = usr

	s.subs = make(map[string]*Subscription)
	s.send = make(chan interface{}, 256) // buffered
	s.stop = make(chan interface{}, 1)   // Buffered by 1 just to make it non-blocking
	s.detach = make(chan string, 64)     // buffered

	ss.lock.Lock()
	ss.sessCache[s.sid] = &s
	count := len(ss.sessCache)
	ss.lock.Unlock()

	statsInc("LiveSessions", 1)
	statsInc("TotalSessions", 1)

	return &s, count
}

// Get fetches a session from the store by session ID.
func (ss *SessionStore) Get(sid string) *Session {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.sessCache[sid]
}

// Delete removes session from store.
func (ss *SessionStore) Delete(s *Session) int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if _, ok := ss.sessCache[s.sid]; ok {
		delete(ss.sessCache, s.sid)
		statsInc("LiveSessions", -1)
	}

	return len(ss.sessCache)
}

// Range calls f for every live session until f returns false.
func (ss *SessionStore) Range(f func(sid string, s *Session) bool) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	for sid, s := range ss.sessCache {
		if !f(sid, s) {
			break
		}
	}
}

// Shutdown terminates sessionStore. No need to clean up.
func (ss *SessionStore) Shutdown() {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	shutdown := NoErrShutdown(types.TimeNow())
	for _, s := range ss.sessCache {
		if s.stop != nil {
			s.stop <- s.serialize(shutdown)
		}
	}

	logs.Info.Printf("SessionStore shut down, sessions terminated: %d", len(ss.sessCache))
}

// NewSessionStore initializes a session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessCache: make(map[string]*Session),
	}
}
