// Package devserver is an in-memory stand-in for the marketplace backend.
// It speaks the same HTTP contract with seed data so the client can be
// demoed and tested without the real service. It is not a production server.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"myhair/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const sessionCookie = "session"

type ctxKey int

const userIDKey ctxKey = 0

// Server handles the development backend.
type Server struct {
	state  *state
	router chi.Router
}

// New creates a server loaded with the seed data.
func New() *Server {
	s := &Server{state: newState()}
	s.state.seed()
	s.router = s.routes()
	return s
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.LogInfo("development backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("development backend failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/logout", s.handleLogout)
		r.Post("/auth/signup/client", s.handleSignupClient)
		r.Post("/auth/signup/coiffeur", s.handleSignupCoiffeur)
		r.Post("/auth/forgot", s.handleForgot)
		r.Post("/auth/reset", s.handleReset)
		r.Get("/auth/check", s.handleCheck)
		r.Get("/me", s.handleMe)

		r.Get("/stylists", s.handleStylists)
		r.Get("/stylists/{id}", s.handleStylist)
		r.Get("/coiffeurs/locations", s.handleLocations)
		r.Get("/coiffeurs/nearby", s.handleNearby)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/auth/confirm", s.handleConfirm)
			r.Get("/dashboard", s.handleDashboard)
			r.Put("/stylists/{id}", s.handleUpdateWaiting)
			r.Post("/stylists/{id}/comment", s.handleComment)
			r.Post("/reserve/{id}", s.handleReserve)
			r.Get("/coiffeur/{id}/reservations", s.handleReservations)
			r.Put("/reservations/{id}/status", s.handleReservationStatus)
			r.Post("/coiffeur/menu", s.handleAddMenu)
			r.Delete("/coiffeur/menu/{id}", s.handleDeleteMenu)
			r.Post("/coiffeur/location", s.handleLocation)
			r.Post("/coiffeur/{id}/subscribe", s.handleSubscribe)
			r.Delete("/coiffeur/{id}/subscribe", s.handleSubscribe)
			r.Post("/publications/with_images", s.handlePublish)
			r.Post("/profile/upload_avatar", s.handleAvatar)
			r.Post("/deplacement/request/broadcast", s.handleBroadcast)
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		telemetry.LogDebug("devserver request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-ID"),
			"elapsed", time.Since(start).String(),
		)
	})
}

// sessionUser returns the id behind the request's session cookie, if any.
func (s *Server) sessionUser(r *http.Request) (int, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return 0, false
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	id, ok := s.state.sessions[c.Value]
	return id, ok
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessionUser(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Login required")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

// startSession must be called with the state lock held.
func (s *Server) startSession(w http.ResponseWriter, id int) {
	token := uuid.NewString()
	s.state.sessions[token] = id
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}
