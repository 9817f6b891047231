package screen

import (
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinenow/tmdb"
)

// Loading tracks the fetches started by a single Load call.
// Callers that do not care about completion can drop it.
type Loading struct {
	g errgroup.Group
}

// Wait blocks until every completion handler of the load has run
func (l *Loading) Wait() {
	// handlers never return errors
	_ = l.g.Wait()
}

// logFetchError records a failed fetch the way both screens do: unsuccessful
// responses with their status and body, transport failures with the cause.
func logFetchError(logger zerolog.Logger, err error) {
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		logger.Warn().
			Int("status", apiErr.StatusCode).
			Str("body", apiErr.Body).
			Msg("Response error")
		return
	}
	logger.Warn().Err(err).Msg("Request failed")
}
