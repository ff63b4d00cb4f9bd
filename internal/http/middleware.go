package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/openshelf/library-admin/internal/domain/access"
	"github.com/openshelf/library-admin/internal/service"
)

// SessionCookieName is the browser-facing session cookie.
const SessionCookieName = "session_id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Guard gates every navigation through the access decision table. It
// resolves the session once per request, evaluates the pure decision,
// and translates the verdict into a response: serve with the session in
// context, redirect, or hold on the loading view while a revalidation
// settles.
type Guard struct {
	Auth   *service.AuthService
	Table  *access.Table
	Render *Renderer
}

// Middleware wraps the whole router. Public routes skip evaluation but
// still get the session attached when one is settled, so their handlers
// can notice an already-signed-in visitor.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, sess := g.Auth.Resolve(r.Context(), sessionIDFromRequest(r))
		route := g.Table.Match(r.URL.Path)

		if route.Public {
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
			return
		}

		decision := access.Evaluate(state, route, r.URL.Path)
		switch decision.Outcome {
		case access.OutcomeLoading:
			g.Render.Loading(w, r)
		case access.OutcomeRedirect:
			http.Redirect(w, r, decision.Location, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		}
	})
}

func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
