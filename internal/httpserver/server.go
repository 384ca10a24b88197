// internal/httpserver/server.go
//
// HTTP server wiring for the Docdle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request logs).
//   - Public endpoints: "/", "/health", "/categories", "/debug/words".
//   - Game endpoints under /game (see routes_game.go) and the keystroke
//     websocket at /game/ws (see ws.go).
//   - Session tokens: a signed JWT naming the session, sent back as a
//     bearer token or cookie (see token.go).
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - The websocket route skips the handler timeout and JSON content type.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/docdle/internal/game"
	"github.com/robalobadob/docdle/internal/store"
	"github.com/robalobadob/docdle/internal/words"
)

// Options configures a Server.
type Options struct {
	Secret         []byte         // HMAC key for session tokens
	TokenTTL       time.Duration  // token lifetime (default 24h)
	DailySalt      string         // salt for daily word selection
	PublicURL      string         // appended to share text when set
	ClientOrigin   string         // allowed CORS / websocket origin
	HandlerTimeout time.Duration  // per-request timeout (default 10s)
	BankFallback   bool           // true when the built-in bank is in use
	Pick           game.PickIndex // word picker for new sessions (default crypto random)
	Now            func() time.Time
}

// Server bundles router, session store, and the loaded word bank.
type Server struct {
	r     *chi.Mux
	store store.Store
	bank  words.Bank
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, bank words.Bank, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, bank: bank, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one zerolog line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	api := s.r.With(chimw.Timeout(opts.HandlerTimeout), jsonContentType)

	// --- diagnostics ---
	api.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"docdle","endpoints":["/health","/categories","POST /game/new","GET /game","POST /game/letter","POST /game/delete","POST /game/submit","GET /game/share","GET /game/ws"]}`))
	})
	api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: word bank counts
	api.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"counts":   s.bank.Counts(),
			"total":    s.bank.Size(),
			"fallback": s.opts.BankFallback,
			"sessions": s.store.Len(),
		})
	})

	api.Get("/categories", s.handleCategories)

	s.r.Route("/game", func(r chi.Router) {
		r.Get("/ws", s.handleWS)
		s.mountGame(r.With(chimw.Timeout(opts.HandlerTimeout), jsonContentType))
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": code})
}

// errBadJSON marks undecodable request bodies.
var errBadJSON = errors.New("bad json")

// errorCode maps engine, store and token errors to an HTTP status and a stable code.
func errorCode(err error) (int, string) {
	var ice *game.InvalidCategoryError
	switch {
	case errors.As(err, &ice):
		return http.StatusBadRequest, "invalid_category"
	case errors.Is(err, errBadJSON):
		return http.StatusBadRequest, "bad_json"
	case errors.Is(err, errUnknownMessage):
		return http.StatusBadRequest, "unknown_type"
	case errors.Is(err, game.ErrIncompleteGuess):
		return http.StatusUnprocessableEntity, "incomplete_guess"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrNoGame):
		return http.StatusConflict, "no_game"
	case errors.Is(err, game.ErrGameInProgress):
		return http.StatusConflict, "game_in_progress"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, errNoToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errBadToken):
		return http.StatusUnauthorized, "invalid_token"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
