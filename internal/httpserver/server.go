// internal/httpserver/server.go
//
// HTTP wiring for the word game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", /auth/register, /auth/login.
//   - Gated endpoints: matchmaking (/match/*), game state and moves
//     (/games/*), and the per-game websocket room (/ws).
//   - Error taxonomy mapping onto HTTP statuses.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Melissportakall/WordGameAPP/internal/game"
	"github.com/Melissportakall/WordGameAPP/internal/match"
	"github.com/Melissportakall/WordGameAPP/internal/notify"
	"github.com/Melissportakall/WordGameAPP/internal/store"
)

// Server bundles router, user DB, session store, matchmaking queue, and
// the realtime hub.
type Server struct {
	r         *chi.Mux
	db        *sql.DB
	store     store.Store
	queue     *match.Queue
	hub       *notify.Hub
	locks     *store.SessionLocks
	validator game.PlacementValidator
}

// New constructs a Server, installs middleware, and registers routes.
func New(db *sql.DB, st store.Store, queue *match.Queue, hub *notify.Hub, validator game.PlacementValidator) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		db:        db,
		store:     st,
		queue:     queue,
		hub:       hub,
		locks:     store.NewSessionLocks(),
		validator: validator,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	// Long enough for a full matchmaking poll (15s) plus slack.
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordgame","endpoints":["/health","/auth/*","/match/*","/games/*","/ws"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- auth ---
	s.r.Post("/auth/register", s.handleRegister)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.With(s.requireAuth()).Get("/auth/me", s.handleMe)

	// --- matchmaking ---
	s.r.With(s.requireAuth()).Post("/match/search", s.handleSearch)
	s.r.With(s.requireAuth()).Post("/match/cancel", s.handleCancelSearch)

	// --- games ---
	s.r.With(s.requireAuth()).Get("/games/active", s.handleActiveGames)
	s.r.With(s.requireAuth()).Get("/games/completed", s.handleCompletedGames)
	s.r.With(s.requireAuth()).Get("/games/{id}", s.handleGetGame)
	s.r.With(s.requireAuth()).Post("/games/{id}/move", s.handleMove)
	s.r.With(s.requireAuth()).Post("/games/{id}/resign", s.handleResign)

	// --- realtime ---
	s.r.Get("/ws", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
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

// writeErr maps engine errors onto HTTP statuses with a JSON body.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, game.ErrValidation), errors.Is(err, game.ErrInvalidMove):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, game.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, game.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, game.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	default:
		log.Error().Err(err).Msg("request failed")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ------------------------------- AUTH --------------------------------------

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	u, err := createUser(s.db, body.Username, body.Email, body.Password)
	if err != nil {
		if err.Error() == "username taken" || err.Error() == "email taken" {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	log.Info().Str("user", u.ID).Str("username", u.Username).Msg("user registered")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	u, err := findUserByUsername(s.db, normalizeUsername(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		http.Error(w, `{"error":"Invalid username or password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := signJWT(u.ID, u.Username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":     tok,
		"expiresAt": exp.UTC().Format(time.RFC3339),
		"user":      map[string]string{"id": u.ID, "username": u.Username},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	u, err := findUserByID(s.db, me.ID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

// ---------------------------- MATCHMAKING ----------------------------------

type searchReq struct {
	DurationClass game.Mode `json:"durationClass"`
}

// handleSearch blocks in the matchmaking poll loop until paired, timed
// out, or cancelled, then reports the result.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	var body searchReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	res, err := s.queue.EnqueueAndWait(r.Context(), me.ID, body.DurationClass)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleCancelSearch(w http.ResponseWriter, r *http.Request) {
	s.queue.Cancel(currentUser(r).ID)
	_ = json.NewEncoder(w).Encode(map[string]bool{"cancelled": true})
}

// ------------------------------- GAMES -------------------------------------

type moveReq struct {
	PlacedTiles []game.PlacedTile `json:"placedTiles"`
}

// handleMove applies one move under the session's exclusive lock,
// persists it as a single unit, and fans out the new state.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	gameID := chi.URLParam(r, "id")

	var body moveReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}

	unlock := s.locks.Lock(gameID)
	defer unlock()

	sess, err := s.store.GetSession(r.Context(), gameID)
	if err != nil {
		writeErr(w, err)
		return
	}
	outcome, err := sess.ApplyMove(me.ID, body.PlacedTiles, s.validator)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.UpdateSession(r.Context(), sess); err != nil {
		// The loaded copy is discarded; nothing was committed.
		writeErr(w, err)
		return
	}

	log.Info().Str("game", gameID).Str("player", me.ID).
		Int("scoreGained", outcome.ScoreGained).Str("nextTurn", outcome.NextTurn).
		Msg("move committed")

	s.hub.Publish(gameID, "game_updated", map[string]any{
		"game":         sess.View(),
		"lastMoveInfo": outcome,
	})
	_ = json.NewEncoder(w).Encode(outcome)
}

// handleResign finishes the game in favor of the opponent.
func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	gameID := chi.URLParam(r, "id")

	unlock := s.locks.Lock(gameID)
	defer unlock()

	sess, err := s.store.GetSession(r.Context(), gameID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := sess.Resign(me.ID); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.UpdateSession(r.Context(), sess); err != nil {
		writeErr(w, err)
		return
	}

	log.Info().Str("game", gameID).Str("player", me.ID).Str("winner", sess.Winner).Msg("player resigned")

	s.hub.Publish(gameID, "game_over", map[string]any{
		"game": sess.View(),
		"lastMoveInfo": map[string]string{
			"type":     "resign",
			"playerId": me.ID,
			"winnerId": sess.Winner,
		},
	})
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": sess.Status,
		"winner": sess.Winner,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	sess, err := s.store.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if !sess.IsParticipant(me.ID) {
		writeErr(w, game.ErrForbidden)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.View())
}

func (s *Server) handleActiveGames(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	sessions, err := s.store.SessionsByPlayer(r.Context(), me.ID, game.StatusActive)
	if err != nil {
		writeErr(w, err)
		return
	}
	type activeRow struct {
		ID         string    `json:"id"`
		OpponentID string    `json:"opponentId"`
		Mode       game.Mode `json:"mode"`
		TurnOwner  string    `json:"turnOwner"`
		Deadline   string    `json:"deadline"`
	}
	out := []activeRow{}
	for _, sess := range sessions {
		out = append(out, activeRow{
			ID:         sess.ID,
			OpponentID: sess.Opponent(me.ID),
			Mode:       sess.Mode,
			TurnOwner:  sess.TurnOwner,
			Deadline:   sess.Deadline.UTC().Format(time.RFC3339),
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleCompletedGames(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	sessions, err := s.store.SessionsByPlayer(r.Context(), me.ID, game.StatusFinished)
	if err != nil {
		writeErr(w, err)
		return
	}
	type completedRow struct {
		ID            string `json:"id"`
		OpponentName  string `json:"opponentName"`
		UserScore     int    `json:"userScore"`
		OpponentScore int    `json:"opponentScore"`
		Result        string `json:"result"`
		Date          string `json:"date"`
	}
	out := []completedRow{}
	for _, sess := range sessions {
		oppID := sess.Opponent(me.ID)
		oppName := "unknown"
		if u, err := findUserByID(s.db, oppID); err == nil {
			oppName = u.Username
		}
		out = append(out, completedRow{
			ID:            sess.ID,
			OpponentName:  oppName,
			UserScore:     sess.Scores[me.ID],
			OpponentScore: sess.Scores[oppID],
			Result:        resultFor(sess, me.ID, oppID),
			Date:          sess.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// resultFor prefers the explicit winner (resignation); otherwise it falls
// back to comparing scores.
func resultFor(sess *game.Session, me, opp string) string {
	if sess.Winner != "" {
		if sess.Winner == me {
			return "win"
		}
		return "lose"
	}
	switch {
	case sess.Scores[me] > sess.Scores[opp]:
		return "win"
	case sess.Scores[me] < sess.Scores[opp]:
		return "lose"
	}
	return "draw"
}
