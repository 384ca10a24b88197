// internal/httpserver/ws.go
//
// Keystroke channel: GET /game/ws upgrades to a websocket that drives the
// caller's session one key at a time.
//
// Client → server:
//   {"key":"A"} | {"key":"BACKSPACE"} | {"key":"ENTER"}
//   {"type":"new","category":"cardiovascular","daily":false}
//   {"type":"state"}
// Server → client:
//   {"type":"state","game":{...}}
//   {"type":"error","code":"incomplete_guess","message":"..."}
//
// The token is checked before the upgrade, so a bad token is a plain 401.

package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/docdle/internal/game"
	"github.com/robalobadob/docdle/internal/store"
	"github.com/robalobadob/docdle/internal/words"
)

const wsReadLimit = 1 << 10

var errUnknownMessage = errors.New("unknown message type")

type wsIn struct {
	Type     string `json:"type,omitempty"`
	Key      string `json:"key,omitempty"`
	Category string `json:"category,omitempty"`
	Daily    bool   `json:"daily,omitempty"`
}

type wsOut struct {
	Type    string         `json:"type"`
	Game    *game.Snapshot `json:"game,omitempty"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: s.checkOrigin}
}

// checkOrigin allows non-browser clients, the configured client origin,
// and same-host pages.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var snap game.Snapshot
	err = s.store.Update(r.Context(), sid, func(sess *game.Session) error {
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade already answered
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)
	log.Debug().Str("session", sid).Msg("ws connected")

	if err := conn.WriteJSON(wsOut{Type: "state", Game: &snap}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("session", sid).Msg("ws closed")
			return
		}

		var in wsIn
		if err := json.Unmarshal(data, &in); err != nil {
			if conn.WriteJSON(wsOut{Type: "error", Code: "bad_json", Message: "invalid json"}) != nil {
				return
			}
			continue
		}

		err = s.store.Update(r.Context(), sid, func(sess *game.Session) error {
			if err := s.applyMessage(sess, in); err != nil {
				return err
			}
			snap = sess.Snapshot()
			return nil
		})
		out := wsOut{Type: "state", Game: &snap}
		if err != nil {
			_, code := errorCode(err)
			out = wsOut{Type: "error", Code: code, Message: err.Error()}
		}
		if conn.WriteJSON(out) != nil || errors.Is(err, store.ErrNotFound) {
			return
		}
	}
}

// applyMessage maps one client message to a session command.
func (s *Server) applyMessage(sess *game.Session, in wsIn) error {
	switch in.Type {
	case "", "key":
		switch {
		case strings.EqualFold(in.Key, "ENTER"):
			return sess.SubmitGuess()
		case strings.EqualFold(in.Key, "BACKSPACE"):
			sess.DeleteLetter()
		case utf8.RuneCountInString(in.Key) == 1:
			// raw rune: the engine folds ASCII case only
			l, _ := utf8.DecodeRuneInString(in.Key)
			sess.AppendLetter(l)
		}
		return nil
	case "new":
		cat, _ := words.ParseCategory(in.Category)
		return s.starter(cat, in.Daily)(sess)
	case "state":
		return nil
	default:
		return errUnknownMessage
	}
}
