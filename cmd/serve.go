package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinenow/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the movie list and detail views over HTTP",
	Long: `Start a web server with two routes:

  /                       the four movie listings
  /movieDetail/{movieId}  the details of one movie

Every page view fetches fresh data from TMDB.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the list view")
	serveCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	compiled, err := resolveFilter()
	if err != nil {
		return err
	}

	opts := server.Options{
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Filter:       compiled,
		RateLimit:    cfg.Server.RateLimit,
		RateBurst:    cfg.Server.RateBurst,
	}
	if libraryClient != nil {
		opts.Library = libraryClient
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	fmt.Printf("Serving on http://%s\n", addr)
	return server.New(tmdbClient, logger, opts).ListenAndServe(ctx, addr, cfg.Server.ShutdownTimeout)
}
