package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the TMDB v3 API root
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Movie listing endpoints
const (
	endpointNowPlaying = "/movie/now_playing"
	endpointTopRated   = "/movie/top_rated"
	endpointUpcoming   = "/movie/upcoming"
	endpointPopular    = "/movie/popular"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	bearer     bool
	language   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client. apiKey is either a v3 API key or a
// v4 read access token.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: tmdb URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: tmdb API key is required", ErrInvalidConfig)
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid tmdb URL %q: %v", ErrInvalidConfig, baseURL, err)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bearer:  isReadAccessToken(apiKey),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// isReadAccessToken reports whether key looks like a v4 read access token (a JWT)
func isReadAccessToken(key string) bool {
	return strings.Count(key, ".") == 2 && strings.HasPrefix(key, "eyJ")
}

// doRequest performs a GET request against endpoint and returns the body of
// a successful response
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if !c.bearer {
		params.Set("api_key", c.apiKey)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit: %w", ErrTransport, err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.StatusCode
		apiErr.Message = eb.StatusMessage
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return apiErr
}

// getMovieList fetches the first page of one of the movie listings
func (c *Client) getMovieList(ctx context.Context, endpoint string) (*MovieResponse, error) {
	body, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var response MovieResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(response.Results)).
		Int("total", response.TotalResults).
		Msg("Retrieved movie list from TMDB")

	return &response, nil
}

// GetNowPlayingMovies retrieves movies currently in theatres
func (c *Client) GetNowPlayingMovies(ctx context.Context) (*MovieResponse, error) {
	return c.getMovieList(ctx, endpointNowPlaying)
}

// GetTopRatedMovies retrieves the highest rated movies
func (c *Client) GetTopRatedMovies(ctx context.Context) (*MovieResponse, error) {
	return c.getMovieList(ctx, endpointTopRated)
}

// GetUpcomingMovies retrieves movies about to be released
func (c *Client) GetUpcomingMovies(ctx context.Context) (*MovieResponse, error) {
	return c.getMovieList(ctx, endpointUpcoming)
}

// GetPopularMovies retrieves the current popularity ranking
func (c *Client) GetPopularMovies(ctx context.Context) (*MovieResponse, error) {
	return c.getMovieList(ctx, endpointPopular)
}

// GetMovieByID retrieves a single movie by its TMDB identifier
func (c *Client) GetMovieByID(ctx context.Context, movieID int64) (*Movie, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, movieID)
	}

	body, err := c.doRequest(ctx, "/movie/"+strconv.FormatInt(movieID, 10), nil)
	if err != nil {
		return nil, err
	}

	var movie Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().Int64("movie_id", movieID).Str("title", movie.Title).Msg("Retrieved movie from TMDB")
	return &movie, nil
}

// TestConnection verifies the API key against the authentication endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.doRequest(ctx, "/authentication", nil)
	return err
}
