// Package library looks up movies in a Radarr instance so the detail view
// can show whether a movie is already part of the user's collection.
package library

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// RadarrAPI is the subset of the starr Radarr client used here
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	Ping() error
}

// Status describes a movie's presence in the library
type Status struct {
	InLibrary  bool
	Monitored  bool
	HasFile    bool
	Path       string
	SizeOnDisk int64
	Added      time.Time
}

// Client wraps the starr Radarr client
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// NewClient creates a new Radarr-backed library client and checks the connection
func NewClient(url, apiKey string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("radarr URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("radarr API key is required")
	}

	api := radarr.New(starr.New(apiKey, url, timeout))
	if err := api.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(api, logger), nil
}

// NewClientWithAPI creates a client around an existing Radarr API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// Ping checks that Radarr is reachable with the configured credentials
func (c *Client) Ping() error {
	return c.api.Ping()
}

// Lookup reports whether the movie with the given TMDB id is in the library
func (c *Client) Lookup(ctx context.Context, tmdbID int64) (*Status, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: tmdbID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up TMDB ID %d in Radarr: %w", tmdbID, err)
	}

	for _, movie := range movies {
		// TMDBID 0 would return the whole library; match explicitly
		if movie == nil || movie.TmdbID != tmdbID {
			continue
		}

		c.logger.Debug().Int64("tmdb_id", tmdbID).Str("title", movie.Title).Msg("Movie found in Radarr")
		return &Status{
			InLibrary:  true,
			Monitored:  movie.Monitored,
			HasFile:    movie.HasFile,
			Path:       movie.Path,
			SizeOnDisk: movie.SizeOnDisk,
			Added:      movie.Added,
		}, nil
	}

	return &Status{}, nil
}

// Label returns a short human readable description of the status
func (s *Status) Label() string {
	switch {
	case s == nil || !s.InLibrary:
		return "Not in library"
	case s.HasFile:
		return "Downloaded"
	case s.Monitored:
		return "Wanted"
	default:
		return "In library (unmonitored)"
	}
}
