package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/storage"
	"github.com/emreunal/gramscout/internal/types"
)

// Core is the interface the API uses to drive the discovery engine.
type Core interface {
	Login(ctx context.Context, username, password string) (*types.LoginResult, error)
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchOutcome, error)
	Close() error
}

// Server exposes the discovery engine and its storage over REST.
type Server struct {
	mux     *http.ServeMux
	cfg     config.ServerConfig
	core    Core
	store   storage.Store
	limiter *ClientLimiter
	logger  *slog.Logger

	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, core Core, store storage.Store, logger *slog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		core:    core,
		store:   store,
		limiter: NewClientLimiter(cfg.RateLimit, cfg.RateWindow),
		logger:  logger.With("component", "api_server"),
	}

	s.registerRoutes()
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("API server starting", "addr", addr)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/rate-limit", s.handleRateLimit)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("GET /api/accounts", s.handleAccounts)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("DELETE /api/clear", s.handleClear)
	s.mux.HandleFunc("POST /api/logout", s.handleLogout)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": s.store.Name(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if body.Username == "" || body.Password == "" {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	result, err := s.core.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !result.Success {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"kind":    result.Kind,
			"error":   result.Message,
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if retryAfter, ok := s.limiter.Allow(ip); !ok {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
		s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
			"error":       "rate limit exceeded",
			"retry_after": retryAfter.String(),
		})
		return
	}

	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	outcome, err := s.core.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, types.ErrNotAuthenticated) {
			s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
			return
		}
		s.logger.Error("search failed", "hashtag", req.Hashtag, "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	fresh, err := s.store.AppendNew(r.Context(), outcome.Accepted)
	if err != nil {
		s.logger.Error("storing results failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "failed to store results"})
		return
	}
	outcome.NewlyAccepted = len(fresh)

	entry := types.SearchLogEntry{
		ID:   time.Now().UnixMilli(),
		Date: time.Now(),
		Params: types.SearchParams{
			Hashtag:      req.Hashtag,
			MaxFollowers: req.MaxFollowers,
			City:         req.City,
		},
		ResultCount: outcome.NewlyAccepted,
		TotalFound:  len(outcome.Accepted),
	}
	if err := s.store.LogSearch(r.Context(), entry); err != nil {
		s.logger.Warn("recording search history failed", "error", err)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"new_accounts": fresh,
			"total_found":  len(outcome.Accepted),
			"new_found":    outcome.NewlyAccepted,
		},
	})
}

func (s *Server) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"limit":     s.limiter.Limit(),
		"remaining": s.limiter.Remaining(ip),
		"window":    s.limiter.Window().String(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.History(r.Context())
	if err != nil {
		s.logger.Error("reading history failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "failed to read history"})
		return
	}
	if history == nil {
		history = []types.SearchLogEntry{}
	}
	s.jsonResponse(w, http.StatusOK, history)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.Accounts(r.Context())
	if err != nil {
		s.logger.Error("reading accounts failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "failed to read accounts"})
		return
	}
	if accounts == nil {
		accounts = []types.ProfileRecord{}
	}
	s.jsonResponse(w, http.StatusOK, accounts)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.Accounts(r.Context())
	if err != nil {
		s.logger.Error("reading accounts failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "failed to read accounts"})
		return
	}

	handles := make([]string, len(accounts))
	for i, a := range accounts {
		handles[i] = a.Handle
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="accounts.txt"`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, strings.Join(handles, "\n"))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.Error("clearing data failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear data"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.core.Close(); err != nil {
		s.logger.Warn("closing session failed", "error", err)
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
