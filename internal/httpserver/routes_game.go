// internal/httpserver/routes_game.go
//
// HTTP routes for playing a session. Mounted under /game:
//   - POST /game/new     → start (or restart) a game; issues the session token
//   - GET  /game         → current snapshot
//   - POST /game/letter  → type one letter
//   - POST /game/delete  → remove the last letter
//   - POST /game/submit  → commit the pending guess
//   - GET  /game/share   → plain-text result for a finished game
//
// Every mutating route answers with the full snapshot so clients never
// compute verdicts themselves.

package httpserver

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/docdle/internal/daily"
	"github.com/robalobadob/docdle/internal/game"
	"github.com/robalobadob/docdle/internal/store"
	"github.com/robalobadob/docdle/internal/words"
)

// mountGame registers all /game routes except the websocket.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/new", s.handleNewGame)
	r.Get("/", s.handleGetGame)
	r.Post("/letter", s.handleLetter)
	r.Post("/delete", s.handleDelete)
	r.Post("/submit", s.handleSubmit)
	r.Get("/share", s.handleShare)
}

// categoryInfo is one entry of GET /categories.
type categoryInfo struct {
	Key   words.Category `json:"key"`
	Label string         `json:"label"`
	Count int            `json:"count"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryInfo, 0, len(words.Categories()))
	for _, c := range words.Categories() {
		out = append(out, categoryInfo{Key: c, Label: c.Label(), Count: len(s.bank.Entries(c))})
	}
	writeJSON(w, http.StatusOK, out)
}

// -----------------------------------------------------------------------------
// /game/new

type newGameReq struct {
	Category string `json:"category"`
	Daily    bool   `json:"daily"` // same word for everyone today
}

type newGameRes struct {
	Token string        `json:"token"`
	Game  game.Snapshot `json:"game"`
}

// handleNewGame restarts the caller's session when a valid token is
// presented, otherwise creates a new session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadJSON)
		return
	}
	cat, _ := words.ParseCategory(req.Category)
	start := s.starter(cat, req.Daily)

	var snap game.Snapshot
	sid, err := s.sessionID(r)
	if err == nil {
		err = s.store.Update(r.Context(), sid, func(sess *game.Session) error {
			if err := start(sess); err != nil {
				return err
			}
			snap = sess.Snapshot()
			return nil
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			writeError(w, err)
			return
		}
	}
	if err != nil {
		sess := game.NewSession(s.bank, s.opts.Pick)
		if err := start(sess); err != nil {
			writeError(w, err)
			return
		}
		if err := s.store.Save(r.Context(), sess); err != nil {
			writeError(w, err)
			return
		}
		sid, snap = sess.ID, sess.Snapshot()
	}

	tok, exp, err := s.signToken(sid)
	if err != nil {
		writeError(w, err)
		return
	}
	setSessionCookie(w, tok, exp)
	log.Info().Str("session", sid).Str("category", string(cat)).Bool("daily", req.Daily).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{Token: tok, Game: snap})
}

// starter returns the StartNewGame call for a category, using the daily
// picker when asked.
func (s *Server) starter(cat words.Category, isDaily bool) func(*game.Session) error {
	if !isDaily {
		return func(sess *game.Session) error { return sess.StartNewGame(cat) }
	}
	pick := daily.Picker(s.opts.Now(), s.opts.DailySalt, cat)
	return func(sess *game.Session) error { return sess.StartNewGameWith(cat, pick) }
}

// -----------------------------------------------------------------------------
// session actions

type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(*game.Session) error { return nil })
}

// handleLetter ignores anything that is not exactly one character, like the engine does.
func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadJSON)
		return
	}
	s.act(w, r, func(sess *game.Session) error {
		if utf8.RuneCountInString(req.Letter) == 1 {
			l, _ := utf8.DecodeRuneInString(req.Letter)
			sess.AppendLetter(l)
		}
		return nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(sess *game.Session) error {
		sess.DeleteLetter()
		return nil
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(sess *game.Session) error {
		if err := sess.SubmitGuess(); err != nil {
			return err
		}
		if st := sess.CurrentStatus(); st.Finished() {
			log.Info().Str("session", sess.ID).Str("status", string(st)).Int("guesses", len(sess.State().Guesses)).Msg("game finished")
		}
		return nil
	})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var text string
	err = s.store.Update(r.Context(), sid, func(sess *game.Session) error {
		var err error
		text, err = sess.ShareText(s.opts.PublicURL)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// act runs fn against the caller's session and answers with its snapshot.
func (s *Server) act(w http.ResponseWriter, r *http.Request, fn func(*game.Session) error) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var snap game.Snapshot
	err = s.store.Update(r.Context(), sid, func(sess *game.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
