package tmdb

import (
	"context"
)

// API defines the TMDB operations used by the screens
type API interface {
	// GetNowPlayingMovies retrieves movies currently in theatres
	GetNowPlayingMovies(ctx context.Context) (*MovieResponse, error)

	// GetTopRatedMovies retrieves the highest rated movies
	GetTopRatedMovies(ctx context.Context) (*MovieResponse, error)

	// GetUpcomingMovies retrieves movies about to be released
	GetUpcomingMovies(ctx context.Context) (*MovieResponse, error)

	// GetPopularMovies retrieves the current popularity ranking
	GetPopularMovies(ctx context.Context) (*MovieResponse, error)

	// GetMovieByID retrieves a single movie
	GetMovieByID(ctx context.Context, movieID int64) (*Movie, error)
}

var _ API = (*Client)(nil)
