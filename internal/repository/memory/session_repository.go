package memory

import (
	"time"

	"coursehub-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// CachedSession is a validated session together with its user.
type CachedSession struct {
	Session *entity.Session
	User    *entity.User
}

// SessionRepository caches session lookups so that authenticated requests do
// not hit the database every time. Entries are dropped on invalidation and
// never outlive the session itself.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (r *SessionRepository) Save(entry *CachedSession) {
	ttl := r.ttl
	if remaining := time.Until(entry.Session.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}
	r.cache.Set(entry.Session.Id, entry, ttl)
}

func (r *SessionRepository) Get(sessionID string) (*CachedSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*CachedSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// DeleteUser drops every cached session belonging to userID.
func (r *SessionRepository) DeleteUser(userID int64) {
	for id, item := range r.cache.Items() {
		if entry, ok := item.Object.(*CachedSession); ok && entry.Session.UserId == userID {
			r.cache.Delete(id)
		}
	}
}
