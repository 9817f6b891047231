package tmdb

import (
	"strconv"
	"strings"
)

// DefaultImageBaseURL is prepended to poster path fragments
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w300"

// Movie is a movie as returned by the listing and detail endpoints
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Adult            bool    `json:"adult"`
}

// PosterURL returns the full poster image URL for the given image base.
// An empty image base falls back to DefaultImageBaseURL.
func (m *Movie) PosterURL(imageBase string) string {
	if m.PosterPath == "" {
		return ""
	}
	if imageBase == "" {
		imageBase = DefaultImageBaseURL
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(m.PosterPath, "/")
}

// Year returns the release year, or 0 when the release date is unknown
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// MovieResponse represents one page of a movie listing
type MovieResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// errorBody is the JSON shape TMDB returns alongside error statuses
type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
