package screen

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinenow/tmdb"
)

// Section is one category and the movies currently held for it
type Section struct {
	Category Category
	Movies   []tmdb.Movie
}

// ListScreen holds one movie slot per category and fills them from
// independent concurrent fetches
type ListScreen struct {
	api    tmdb.API
	logger zerolog.Logger

	mu       sync.RWMutex
	movies   map[Category][]tmdb.Movie
	onUpdate func(Category)
}

// NewListScreen creates a list screen with every slot empty
func NewListScreen(api tmdb.API, logger zerolog.Logger) *ListScreen {
	return &ListScreen{
		api:    api,
		logger: logger.With().Str("screen", "list").Logger(),
		movies: make(map[Category][]tmdb.Movie, len(Categories)),
	}
}

// OnUpdate registers a hook called after a category slot was replaced.
// It runs on the fetch goroutine.
func (s *ListScreen) OnUpdate(fn func(Category)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// Load starts one fetch per category (all four when none are given) and
// returns without waiting. Each fetch completes on its own: a success
// replaces that category's slot, a failure is logged and leaves the slot as
// it was. Fetches are never joined, retried or cancelled by one another.
func (s *ListScreen) Load(ctx context.Context, categories ...Category) *Loading {
	if len(categories) == 0 {
		categories = Categories
	}

	loading := &Loading{}
	for _, category := range categories {
		fetch := category.fetcher(s.api)
		if fetch == nil {
			s.logger.Warn().Str("category", string(category)).Msg("Skipping unknown category")
			continue
		}

		loading.g.Go(func() error {
			resp, err := fetch(ctx)
			s.complete(category, resp, err)
			return nil
		})
	}

	return loading
}

// complete is the completion handler of a single category fetch
func (s *ListScreen) complete(category Category, resp *tmdb.MovieResponse, err error) {
	logger := s.logger.With().Str("category", string(category)).Logger()

	if err != nil {
		logFetchError(logger, err)
		return
	}
	if resp == nil || resp.Results == nil {
		logger.Debug().Msg("Response carried no results, keeping previous movies")
		return
	}

	s.mu.Lock()
	s.movies[category] = resp.Results
	onUpdate := s.onUpdate
	s.mu.Unlock()

	logger.Debug().Int("count", len(resp.Results)).Msg("Updated movies")

	if onUpdate != nil {
		onUpdate(category)
	}
}

// Movies returns a copy of the movies held for category
func (s *ListScreen) Movies(category Category) []tmdb.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movies[category])
}

// Snapshot returns every category in display order with its current movies
func (s *ListScreen) Snapshot() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sections := make([]Section, 0, len(Categories))
	for _, category := range Categories {
		sections = append(sections, Section{
			Category: category,
			Movies:   slices.Clone(s.movies[category]),
		})
	}
	return sections
}
