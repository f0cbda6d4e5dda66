// Package server exposes the regex engine over HTTP.
//
// Routes:
//
//	POST /v1/match   compile a pattern and match it against many inputs
//	POST /v1/nfa     compile a pattern and describe its automaton
//	GET  /healthz    liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/thegrep"
	"github.com/coregx/thegrep/dump"
	"github.com/coregx/thegrep/nfa"
	"github.com/coregx/thegrep/syntax"
)

// MaxInputs is the largest number of inputs one match request may carry.
const MaxInputs = 10000

// Server is the HTTP match service.
type Server struct {
	Echo   *echo.Echo
	Log    zerolog.Logger
	Engine thegrep.Config
}

// New returns a server whose patterns compile with engine unless a
// request overrides the mode.
func New(log zerolog.Logger, engine thegrep.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{Echo: e, Log: log, Engine: engine}
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("4M"))
	e.Use(s.requestLogger)

	e.GET("/healthz", s.handleHealth)
	v1 := e.Group("/v1")
	v1.POST("/match", s.handleMatch)
	v1.POST("/nfa", s.handleNFA)
	return s
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Log.Info().Str("addr", addr).Msg("match service listening")
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Log.Info().Msg("match service shutting down")
		return s.Echo.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		req := c.Request()
		s.Log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", c.Response().Status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the body of every 4xx reply. Line and Column locate
// pattern syntax errors.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func badRequest(c echo.Context, err error) error {
	resp := ErrorResponse{Error: err.Error()}
	var perr *syntax.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		resp = ErrorResponse{Error: perr.Message(), Line: pos.Line, Column: pos.Column}
	}
	return c.JSON(http.StatusBadRequest, resp)
}

// MatchRequest asks whether each input matches Pattern. Mode is "search"
// or "full"; empty selects the server default.
type MatchRequest struct {
	Pattern string   `json:"pattern"`
	Inputs  []string `json:"inputs"`
	Mode    string   `json:"mode"`
}

// MatchResult is the verdict for one input.
type MatchResult struct {
	Input   string `json:"input"`
	Matched bool   `json:"matched"`
}

// MatchResponse lists the verdicts in request order.
type MatchResponse struct {
	Pattern string        `json:"pattern"`
	Mode    string        `json:"mode"`
	Results []MatchResult `json:"results"`
}

func (s *Server) handleMatch(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if len(req.Inputs) > MaxInputs {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "too many inputs"})
	}

	cfg := s.Engine
	if req.Mode != "" {
		mode, err := thegrep.ParseMode(req.Mode)
		if err != nil {
			return badRequest(c, err)
		}
		cfg.Mode = mode
	}
	re, err := thegrep.CompileWithConfig(req.Pattern, cfg)
	if err != nil {
		return badRequest(c, err)
	}

	results := make([]MatchResult, len(req.Inputs))
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range req.Inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = MatchResult{Input: in, Matched: re.MatchString(in)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MatchResponse{
		Pattern: req.Pattern,
		Mode:    re.Mode().String(),
		Results: results,
	})
}

// NFARequest asks for the automaton of Pattern.
type NFARequest struct {
	Pattern string `json:"pattern"`
}

// StateInfo describes one automaton state.
type StateInfo struct {
	ID    nfa.StateID   `json:"id"`
	Kind  string        `json:"kind"`
	Label string        `json:"label,omitempty"`
	Edges []nfa.StateID `json:"edges"`
}

// NFAResponse describes a full-match automaton and its DOT rendering.
type NFAResponse struct {
	Pattern string      `json:"pattern"`
	Start   nfa.StateID `json:"start"`
	End     nfa.StateID `json:"end"`
	States  []StateInfo `json:"states"`
	DOT     string      `json:"dot"`
}

func (s *Server) handleNFA(c echo.Context) error {
	var req NFARequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	n, err := nfa.Compile(req.Pattern)
	if err != nil {
		return badRequest(c, err)
	}

	states := make([]StateInfo, 0, n.States())
	for id, st := range n.All() {
		info := StateInfo{ID: id, Kind: st.Kind().String(), Edges: st.Edges()}
		if st.Kind() == nfa.StateMatch {
			info.Label = st.Label().String()
		}
		if info.Edges == nil {
			info.Edges = []nfa.StateID{}
		}
		states = append(states, info)
	}

	return c.JSON(http.StatusOK, NFAResponse{
		Pattern: req.Pattern,
		Start:   n.Start(),
		End:     n.End(),
		States:  states,
		DOT:     dump.DOT(n),
	})
}
