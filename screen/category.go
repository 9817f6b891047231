package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/s0up4200/cinenow/tmdb"
)

// Category identifies one of the four movie listings
type Category string

const (
	NowPlaying Category = "now_playing"
	TopRated   Category = "top_rated"
	Upcoming   Category = "upcoming"
	Popular    Category = "popular"
)

// Categories lists every category in display order
var Categories = []Category{TopRated, NowPlaying, Upcoming, Popular}

// Label returns the section heading for the category
func (c Category) Label() string {
	switch c {
	case NowPlaying:
		return "Now Playing"
	case TopRated:
		return "Top rated"
	case Upcoming:
		return "Upcoming"
	case Popular:
		return "Popular"
	default:
		return string(c)
	}
}

// fetcher returns the API call backing the category
func (c Category) fetcher(api tmdb.API) func(context.Context) (*tmdb.MovieResponse, error) {
	switch c {
	case NowPlaying:
		return api.GetNowPlayingMovies
	case TopRated:
		return api.GetTopRatedMovies
	case Upcoming:
		return api.GetUpcomingMovies
	case Popular:
		return api.GetPopularMovies
	default:
		return nil
	}
}

// ParseCategory accepts the category identifier in snake or kebab case
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (must be one of now_playing, top_rated, upcoming, popular)", s)
}
