package chi

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/partpilot/internal/logger"
	"github.com/kailas-cloud/partpilot/internal/usecase/session"
)

// SessionHeader carries the browsing session id in both directions.
const SessionHeader = "X-Session-ID"

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

type sessionKey struct{}

// SessionMiddleware resolves the caller's session, creating one when the header
// is absent or malformed, and echoes its id in the response.
func SessionMiddleware(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if !sessionIDPattern.MatchString(id) {
				id = uuid.NewString()
			}
			sess := reg.Get(id)
			w.Header().Set(SessionHeader, id)

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			ctx = logpkg.With(ctx, zap.String("session_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom returns the session placed by SessionMiddleware.
func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}
