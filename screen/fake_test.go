package screen

import (
	"context"
	"sync"

	"github.com/s0up4200/cinenow/tmdb"
)

// fakeAPI implements tmdb.API for testing
type fakeAPI struct {
	mu sync.Mutex

	lists     map[Category]*tmdb.MovieResponse
	listErrs  map[Category]error
	movies    map[int64]*tmdb.Movie
	movieErr  error
	listCalls map[Category]int
	movieIDs  []int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		lists:     make(map[Category]*tmdb.MovieResponse),
		listErrs:  make(map[Category]error),
		movies:    make(map[int64]*tmdb.Movie),
		listCalls: make(map[Category]int),
	}
}

func (f *fakeAPI) list(category Category) (*tmdb.MovieResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls[category]++
	if err := f.listErrs[category]; err != nil {
		return nil, err
	}
	return f.lists[category], nil
}

func (f *fakeAPI) GetNowPlayingMovies(ctx context.Context) (*tmdb.MovieResponse, error) {
	return f.list(NowPlaying)
}

func (f *fakeAPI) GetTopRatedMovies(ctx context.Context) (*tmdb.MovieResponse, error) {
	return f.list(TopRated)
}

func (f *fakeAPI) GetUpcomingMovies(ctx context.Context) (*tmdb.MovieResponse, error) {
	return f.list(Upcoming)
}

func (f *fakeAPI) GetPopularMovies(ctx context.Context) (*tmdb.MovieResponse, error) {
	return f.list(Popular)
}

func (f *fakeAPI) GetMovieByID(ctx context.Context, movieID int64) (*tmdb.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieIDs = append(f.movieIDs, movieID)
	if f.movieErr != nil {
		return nil, f.movieErr
	}
	return f.movies[movieID], nil
}

func (f *fakeAPI) setList(category Category, movies ...tmdb.Movie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[category] = &tmdb.MovieResponse{Page: 1, Results: movies}
	delete(f.listErrs, category)
}

func (f *fakeAPI) failList(category Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErrs[category] = err
}

func (f *fakeAPI) calls(category Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[category]
}
