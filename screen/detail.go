package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinenow/library"
	"github.com/s0up4200/cinenow/tmdb"
)

// LibraryLookup reports whether a movie is in the user's library
type LibraryLookup interface {
	Lookup(ctx context.Context, tmdbID int64) (*library.Status, error)
}

// DetailScreen holds the single movie shown on the detail view
type DetailScreen struct {
	api     tmdb.API
	library LibraryLookup
	logger  zerolog.Logger

	mu     sync.RWMutex
	movie  *tmdb.Movie
	status *library.Status
}

// NewDetailScreen creates a detail screen with nothing loaded
func NewDetailScreen(api tmdb.API, logger zerolog.Logger) *DetailScreen {
	return &DetailScreen{
		api:    api,
		logger: logger.With().Str("screen", "detail").Logger(),
	}
}

// WithLibrary enables the library status lookup alongside the movie fetch
func (s *DetailScreen) WithLibrary(lookup LibraryLookup) *DetailScreen {
	s.library = lookup
	return s
}

// Load starts the fetch for movieID and returns without waiting. On success
// the held movie is replaced; on failure it is logged and the previous movie
// (if any) is kept. With a library configured its status is fetched
// independently under the same rules.
func (s *DetailScreen) Load(ctx context.Context, movieID int64) *Loading {
	loading := &Loading{}
	loading.g.Go(func() error {
		movie, err := s.api.GetMovieByID(ctx, movieID)
		s.complete(movieID, movie, err)
		return nil
	})

	if s.library != nil {
		loading.g.Go(func() error {
			status, err := s.library.Lookup(ctx, movieID)
			if err != nil {
				s.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("Library lookup failed")
				return nil
			}
			s.mu.Lock()
			s.status = status
			s.mu.Unlock()
			return nil
		})
	}

	return loading
}

func (s *DetailScreen) complete(movieID int64, movie *tmdb.Movie, err error) {
	logger := s.logger.With().Int64("movie_id", movieID).Logger()

	if err != nil {
		logFetchError(logger, err)
		return
	}
	if movie == nil {
		return
	}

	s.mu.Lock()
	s.movie = movie
	s.mu.Unlock()

	logger.Debug().Str("title", movie.Title).Msg("Updated movie")
}

// Movie returns the movie currently held, or nil when none was loaded
func (s *DetailScreen) Movie() *tmdb.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.movie == nil {
		return nil
	}
	movie := *s.movie
	return &movie
}

// LibraryStatus returns the last library status, or nil when unknown
func (s *DetailScreen) LibraryStatus() *library.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil
	}
	status := *s.status
	return &status
}
