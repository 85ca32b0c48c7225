// Package server exposes teachers over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"boardteacher/agent"
	"boardteacher/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type MoveRequest struct {
	Key string `json:"key"`
	// Exploration overrides the teacher's exploration rate when set.
	Exploration *float64 `json:"exploration,omitempty"`
}

type MoveResponse struct {
	Move string `json:"move"`
	// Key is the position after the move.
	Key string `json:"key"`
}

type MovesResponse struct {
	Key     string   `json:"key"`
	Player  string   `json:"player"`
	Outcome string   `json:"outcome"`
	Moves   []string `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	teachers map[string]*agent.Teacher
	router   chi.Router
}

// New serves one teacher per game, addressed by codec name.
func New(teachers ...*agent.Teacher) *Server {
	s := &Server{teachers: make(map[string]*agent.Teacher)}
	for _, t := range teachers {
		s.teachers[t.Codec().Name()] = t
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Route("/v1/{game}", func(r chi.Router) {
		r.Get("/moves", s.handleMoves)
		r.Post("/move", s.handleMove)
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) teacher(w http.ResponseWriter, r *http.Request) (*agent.Teacher, bool) {
	name := chi.URLParam(r, "game")
	t, ok := s.teachers[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game "+name)
	}
	return t, ok
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	t, ok := s.teacher(w, r)
	if !ok {
		return
	}
	codec := t.Codec()
	state, err := codec.Decode(game.Key(r.URL.Query().Get("key")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	moves := make([]string, 0)
	if state.Outcome() == game.InProgress {
		for _, move := range state.LegalMoves() {
			moves = append(moves, codec.EncodeMove(move))
		}
	}
	writeJSON(w, http.StatusOK, MovesResponse{
		Key:     string(codec.Encode(state)),
		Player:  state.Player().String(),
		Outcome: state.Outcome().String(),
		Moves:   moves,
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	t, ok := s.teacher(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	exploration := t.Exploration()
	if req.Exploration != nil {
		exploration = *req.Exploration
	}
	if exploration < 0 || exploration > 1 {
		writeError(w, http.StatusBadRequest, "exploration must be in [0,1]")
		return
	}

	codec := t.Codec()
	state, err := codec.Decode(game.Key(req.Key))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	move, err := t.BestMove(state, t.Depth(), exploration)
	if errors.Is(err, agent.ErrNoLegalMoves) {
		writeError(w, http.StatusConflict, "game is over: "+state.Outcome().String())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, MoveResponse{
		Move: codec.EncodeMove(move),
		Key:  string(codec.Encode(state.Play(move))),
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
