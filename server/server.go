// Package server serves the list and detail views over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/s0up4200/cinenow/filter"
	"github.com/s0up4200/cinenow/render"
	"github.com/s0up4200/cinenow/screen"
	"github.com/s0up4200/cinenow/tmdb"
)

// Route names
const (
	RouteMovieList   = "movieList"
	RouteMovieDetail = "movieDetail"
)

// DetailPath returns the detail route for a movie
func DetailPath(movieID int64) string {
	return "/movieDetail/" + strconv.FormatInt(movieID, 10)
}

// Options configures optional server features
type Options struct {
	ImageBaseURL string
	// Filter narrows the movies shown on the list route
	Filter filter.CompiledFilter
	// Library adds library status to the detail route
	Library screen.LibraryLookup
	// RateLimit caps page views per second across all clients, 0 disables it
	RateLimit float64
	RateBurst int
}

// Server maps the two routes onto fresh screens for every request
type Server struct {
	api      tmdb.API
	opts     Options
	renderer *render.HTMLRenderer
	logger   zerolog.Logger
	router   *mux.Router
}

// New creates a server and registers its routes
func New(api tmdb.API, logger zerolog.Logger, opts Options) *Server {
	s := &Server{
		api:      api,
		opts:     opts,
		renderer: render.NewHTMLRenderer(opts.ImageBaseURL, DetailPath),
		logger:   logger,
		router:   mux.NewRouter(),
	}

	s.router.Use(requestLogger(logger))
	if opts.RateLimit > 0 {
		s.router.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))))
	}
	s.router.HandleFunc("/", s.handleMovieList).Methods(http.MethodGet).Name(RouteMovieList)
	s.router.HandleFunc("/movieDetail/{movieId}", s.handleMovieDetail).Methods(http.MethodGet).Name(RouteMovieDetail)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleMovieList(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	list := screen.NewListScreen(s.api, *logger)
	list.Load(r.Context()).Wait()

	sections := list.Snapshot()
	filterExpr := ""
	if s.opts.Filter != nil {
		filterExpr = s.opts.Filter.Expression()
		for i := range sections {
			sections[i].Movies = filter.Apply(s.opts.Filter, sections[i].Movies)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderList(w, s.renderer.ListPage(sections, filterExpr)); err != nil {
		logger.Error().Err(err).Msg("Failed to render movie list")
	}
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	movieID, err := strconv.ParseInt(mux.Vars(r)["movieId"], 10, 64)
	if err != nil || movieID <= 0 {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	detail := screen.NewDetailScreen(s.api, *logger)
	if s.opts.Library != nil {
		detail.WithLibrary(s.opts.Library)
	}
	detail.Load(r.Context(), movieID).Wait()

	backURL := "/"
	if u, err := s.router.Get(RouteMovieList).URL(); err == nil {
		backURL = u.String()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := s.renderer.DetailPage(detail.Movie(), detail.LibraryStatus(), backURL)
	if err := s.renderer.RenderDetail(w, page); err != nil {
		logger.Error().Err(err).Msg("Failed to render movie detail")
	}
}
