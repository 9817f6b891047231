// Package tmdb provides a client for the read-only movie endpoints of the
// TMDB v3 API.
//
// The client covers the four category listings (now playing, top rated,
// upcoming, popular) and the single movie lookup by identifier. It keeps no
// state beyond its configuration: every call issues one GET request and
// decodes the JSON body into the types in this package.
//
// # Authentication
//
// NewClient accepts either a v3 API key or a v4 read access token. Read
// access tokens are JWTs and are sent as a bearer Authorization header; plain
// API keys are sent as the api_key query parameter.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		"your-api-key",
//		logger,
//		tmdb.WithLanguage("en-US"),
//		tmdb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.GetPopularMovies(ctx)
//
// # Error Handling
//
// Two kinds of failure are distinguished:
//
//   - ErrTransport: no response was obtained (DNS, connection, timeout)
//   - APIError: the server answered with a non-2xx status
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// unknown movie id
//	}
package tmdb
