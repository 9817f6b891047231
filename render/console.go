package render

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinenow/library"
	"github.com/s0up4200/cinenow/screen"
	"github.com/s0up4200/cinenow/tmdb"
)

// AppTitle heads both views
const AppTitle = "CineNow"

const overviewWidth = 72

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails    bool
	MaxPerCategory int
	ImageBaseURL   string
}

// ConsoleFormatter provides console output formatting for the two screens
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats every section of the list screen
func (f *ConsoleFormatter) FormatMovieList(sections []screen.Section, options FormatOptions) string {
	var sb strings.Builder

	sb.WriteString(AppTitle)
	sb.WriteString("\n")

	for _, section := range sections {
		fmt.Fprintf(&sb, "\n%s (%d)\n", section.Category.Label(), len(section.Movies))

		movies := section.Movies
		if options.MaxPerCategory > 0 && len(movies) > options.MaxPerCategory {
			movies = movies[:options.MaxPerCategory]
		}

		if len(movies) == 0 {
			sb.WriteString("╰── No movies\n")
			continue
		}

		for i, movie := range movies {
			isLast := i == len(movies)-1
			f.formatMovie(&sb, movie, isLast, options)
		}

		if hidden := len(section.Movies) - len(movies); hidden > 0 {
			fmt.Fprintf(&sb, "    … and %d more\n", hidden)
		}
	}

	return sb.String()
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie tmdb.Movie, isLast bool, options FormatOptions) {
	prefix := "├──"
	indent := "│   "
	if isLast {
		prefix = "╰──"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s %s", prefix, movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(sb, " (%d)", year)
	}
	fmt.Fprintf(sb, " [%d]\n", movie.ID)

	if !options.ShowDetails {
		return
	}

	if movie.VoteCount > 0 {
		fmt.Fprintf(sb, "%s★ %.1f (%d votes)\n", indent, movie.VoteAverage, movie.VoteCount)
	}
	if movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Overview, overviewWidth))
	}
}

// FormatMovieDetail formats the detail screen. A nil movie means the fetch
// did not succeed.
func (f *ConsoleFormatter) FormatMovieDetail(movie *tmdb.Movie, status *library.Status, options FormatOptions) string {
	if movie == nil {
		return "Movie not available\n"
	}

	var sb strings.Builder

	sb.WriteString(movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("━", min(len([]rune(movie.Title))+7, 80)))
	sb.WriteString("\n")

	if poster := movie.PosterURL(options.ImageBaseURL); poster != "" {
		fmt.Fprintf(&sb, "Poster:   %s\n", poster)
	}
	if movie.ReleaseDate != "" {
		fmt.Fprintf(&sb, "Released: %s\n", movie.ReleaseDate)
	}
	if movie.VoteCount > 0 {
		fmt.Fprintf(&sb, "Rating:   ★ %.1f (%d votes)\n", movie.VoteAverage, movie.VoteCount)
	}
	if status != nil {
		fmt.Fprintf(&sb, "Library:  %s\n", status.Label())
	}

	if movie.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(movie.Overview, overviewWidth))
		sb.WriteString("\n")
	}

	return sb.String()
}

// truncate shortens s to width runes, ending with an ellipsis when cut
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return strings.TrimRight(string(runes[:width-1]), " ") + "…"
}

// wrap breaks s into lines of at most width runes at word boundaries
func wrap(s string, width int) string {
	var (
		sb      strings.Builder
		lineLen int
	)
	for _, word := range strings.Fields(s) {
		wordLen := len([]rune(word))
		if lineLen > 0 && lineLen+1+wordLen > width {
			sb.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += wordLen
	}
	return sb.String()
}
