// Package session keeps per-visitor state: a signed cookie carrying the
// session id and queued notices, and the Redis-held random-play progress.
package session

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "quiz_session"

const keySessionID = "sid"

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

var noticeKinds = []string{NoticeSuccess, NoticeError}

// NewCookieStore returns the signed cookie store backing every session.
func NewCookieStore(secret string, maxAge time.Duration) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Middleware loads the session for every request of the group.
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(CookieName, store)
}

func current(c *gin.Context) sessions.Session {
	v, ok := c.Get(sessions.DefaultKey)
	if !ok {
		return nil
	}
	s, _ := v.(sessions.Session)
	return s
}

// ID returns the visitor's session id, assigning one on first use.
// The new id reaches the client on the next Save.
func ID(c *gin.Context) string {
	s := current(c)
	if s == nil {
		return ""
	}
	if sid, ok := s.Get(keySessionID).(string); ok && sid != "" {
		return sid
	}
	sid := uuid.New().String()
	s.Set(keySessionID, sid)
	return sid
}

// AddNotice queues a message for the next rendered page.
func AddNotice(c *gin.Context, kind, msg string) {
	if s := current(c); s != nil {
		s.AddFlash(msg, kind)
	}
}

// Notices drains the queued messages, grouped by kind. Returns nil when empty.
func Notices(c *gin.Context) map[string][]string {
	s := current(c)
	if s == nil {
		return nil
	}
	var out map[string][]string
	for _, kind := range noticeKinds {
		for _, f := range s.Flashes(kind) {
			msg, ok := f.(string)
			if !ok {
				continue
			}
			if out == nil {
				out = make(map[string][]string)
			}
			out[kind] = append(out[kind], msg)
		}
	}
	return out
}

// Save writes the session cookie. It must run before the response body.
func Save(c *gin.Context) error {
	s := current(c)
	if s == nil {
		return nil
	}
	return s.Save()
}
