package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinenow/config"
	"github.com/s0up4200/cinenow/filter"
	"github.com/s0up4200/cinenow/library"
	"github.com/s0up4200/cinenow/render"
	"github.com/s0up4200/cinenow/screen"
	"github.com/s0up4200/cinenow/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	tmdbClient    *tmdb.Client
	libraryClient *library.Client
	formatter     = render.NewConsoleFormatter()

	// Command flags
	language    string
	filterExpr  string
	preset      string
	categories  []string
	showDetails bool
	limit       int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinenow",
	Short: "Browse now playing, top rated, upcoming and popular movies from TMDB",
	Long: `cinenow shows the movie listings of The Movie Database (now playing,
top rated, upcoming and popular) and the details of a single movie, either
in the terminal or as a small web app.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "override the TMDB response language (e.g. en-US, pt-BR)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and creates the clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("language") {
		cfg.TMDB.Language = language
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.URL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithUserAgent("cinenow/"+version),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDB.RateBurst),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	if cfg.Radarr.Enabled {
		libraryClient, err = library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.TMDB.Timeout, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Radarr client, continuing without library status")
			libraryClient = nil
		} else {
			logger.Debug().Msg("Radarr integration enabled")
		}
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the now playing, top rated, upcoming and popular movies",
	Long: `Fetch the four movie listings concurrently and print them.

A category whose request fails is shown empty; the failure is logged.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'VoteAverage >= 7'")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only show these categories (now_playing, top_rated, upcoming, popular)")
	listCmd.Flags().BoolVar(&showDetails, "details", true, "show rating and overview for each movie")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum movies per category (0 uses display.max_per_category)")
}

func runList(cmd *cobra.Command, args []string) error {
	selected, err := parseCategories(categories)
	if err != nil {
		return err
	}

	compiled, err := resolveFilter()
	if err != nil {
		return err
	}

	list := screen.NewListScreen(tmdbClient, logger)
	list.Load(cmd.Context(), selected...).Wait()

	sections := list.Snapshot()
	if len(selected) > 0 {
		sections = onlyCategories(sections, selected)
	}
	if compiled != nil {
		logger.Debug().Str("filter", compiled.Expression()).Msg("Applying filter")
		for i := range sections {
			sections[i].Movies = filter.Apply(compiled, sections[i].Movies)
		}
	}

	fmt.Print(formatter.FormatMovieList(sections, formatOptions(cmd)))
	return nil
}

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail <movieId>",
	Short: "Show the details of a single movie",
	Long:  `Fetch one movie by its TMDB identifier and print its details.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseMovieID(args[0]); err != nil {
			return err
		}
		return initializeApp(cmd, args)
	},
	RunE: runDetail,
}

func runDetail(cmd *cobra.Command, args []string) error {
	movieID, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	detail := screen.NewDetailScreen(tmdbClient, logger)
	if libraryClient != nil {
		detail.WithLibrary(libraryClient)
	}
	detail.Load(cmd.Context(), movieID).Wait()

	fmt.Print(formatter.FormatMovieDetail(detail.Movie(), detail.LibraryStatus(), formatOptions(cmd)))
	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to TMDB",
	Long:    `Test the connection and credentials for TMDB and, when enabled, Radarr.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.URL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	resp, err := tmdbClient.GetPopularMovies(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get popular movies: %w", err)
	}
	fmt.Printf("- Popular movies available: %d\n", resp.TotalResults)
	fmt.Printf("- Language: %s\n", cfg.TMDB.Language)

	switch {
	case !cfg.Radarr.Enabled:
		fmt.Println("\nRadarr integration: Disabled")
	case libraryClient == nil:
		fmt.Printf("\n✗ Radarr at %s is not reachable\n", cfg.Radarr.URL)
	case libraryClient.Ping() != nil:
		fmt.Printf("\n✗ Radarr at %s stopped responding\n", cfg.Radarr.URL)
	default:
		fmt.Printf("\n✓ Radarr connection successful (%s)\n", cfg.Radarr.URL)
	}

	return nil
}

// parseMovieID validates the identifier argument of the detail command
func parseMovieID(arg string) (int64, error) {
	movieID, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || movieID <= 0 {
		return 0, fmt.Errorf("invalid movie id %q: must be a positive integer", arg)
	}
	return movieID, nil
}

func parseCategories(names []string) ([]screen.Category, error) {
	var selected []screen.Category
	for _, name := range names {
		category, err := screen.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if !containsCategory(selected, category) {
			selected = append(selected, category)
		}
	}
	return selected, nil
}

func containsCategory(categories []screen.Category, c screen.Category) bool {
	for _, existing := range categories {
		if existing == c {
			return true
		}
	}
	return false
}

// onlyCategories drops the sections that were not requested, keeping display order
func onlyCategories(sections []screen.Section, selected []screen.Category) []screen.Section {
	kept := sections[:0]
	for _, section := range sections {
		if containsCategory(selected, section.Category) {
			kept = append(kept, section)
		}
	}
	return kept
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[strings.ToLower(preset)]; ok {
			return presetFilter, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

// resolveFilter compiles the effective filter expression, nil when there is none
func resolveFilter() (filter.CompiledFilter, error) {
	expr, err := getFilterExpression()
	if err != nil {
		return nil, err
	}
	if expr == "" {
		return nil, nil
	}

	compiled, err := filter.CompileFilter(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return compiled, nil
}

func formatOptions(cmd *cobra.Command) render.FormatOptions {
	opts := render.FormatOptions{
		ShowDetails:    cfg.Display.ShowDetails,
		MaxPerCategory: cfg.Display.MaxPerCategory,
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
	}
	if f := cmd.Flags().Lookup("details"); f != nil && f.Changed {
		opts.ShowDetails = showDetails
	}
	if limit > 0 {
		opts.MaxPerCategory = limit
	}
	return opts
}
