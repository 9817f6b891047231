package filter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/s0up4200/cinenow/tmdb"
)

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `VoteAverage >= 7`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `titleHas("unclosed`,
			wantErr:    true,
		},
		{
			name:        "unknown field",
			expression:  `Rating > 5`,
			wantErr:     true,
			errContains: "failed to compile",
		},
		{
			name:       "non boolean result",
			expression: `Title`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `titleHas("dune") and Year >= 2021 and VoteCount > 100 and Released > yearsAgo(5)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("Expression() = %q, want %q", filter.Expression(), tt.expression)
			}
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -10).Format("2006-01-02")

	movie := tmdb.Movie{
		ID:               693134,
		Title:            "Dune: Part Two",
		Overview:         "Follow the mythic journey of Paul Atreides.",
		PosterPath:       "/dune.jpg",
		ReleaseDate:      recent,
		VoteAverage:      8.2,
		VoteCount:        5000,
		Popularity:       120.5,
		OriginalLanguage: "en",
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{"vote average", `VoteAverage > 8`, true},
		{"vote average miss", `VoteAverage > 9`, false},
		{"title helper case insensitive", `titleHas("DUNE")`, true},
		{"overview helper", `overviewHas("atreides")`, true},
		{"language", `Language == "en"`, true},
		{"poster", `HasPoster`, true},
		{"not adult", `not Adult`, true},
		{"released within", `releasedWithin(30)`, true},
		{"released within too short", `releasedWithin(5)`, false},
		{"released after date", `Released > daysAgo(20)`, true},
		{"released before parsed date", `Released < parseDate("2000-01-01")`, false},
		{"id", `ID == 693134`, true},
		{"combined", `Popularity > 100 && VoteCount >= 5000`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile %q: %v", tt.expression, err)
			}
			if got := f.Evaluate(movie); got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.expected)
			}
		})
	}
}

func TestReleasedWithinUnknownDate(t *testing.T) {
	f, err := CompileFilter(`releasedWithin(365)`)
	if err != nil {
		t.Fatal(err)
	}
	if f.Evaluate(tmdb.Movie{Title: "No date"}) {
		t.Errorf("movie without release date should not match")
	}
}

func TestApply(t *testing.T) {
	movies := []tmdb.Movie{
		{ID: 1, Title: "A", VoteAverage: 6.1},
		{ID: 2, Title: "B", VoteAverage: 7.5},
		{ID: 3, Title: "C", VoteAverage: 8.9},
	}

	f, err := CompileFilter(`VoteAverage >= 7`)
	if err != nil {
		t.Fatal(err)
	}

	got := Apply(f, movies)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("Apply returned %+v, want movies 2 and 3 in order", got)
	}

	if all := Apply(nil, movies); len(all) != 3 {
		t.Errorf("nil filter should keep every movie, got %d", len(all))
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 1980 },
	}))

	f, err := compiler.Compile(`isClassic(Year)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.Evaluate(tmdb.Movie{ReleaseDate: "1972-03-14"}) {
		t.Errorf("expected 1972 movie to be a classic")
	}
	if f.Evaluate(tmdb.Movie{ReleaseDate: "2010-07-16"}) {
		t.Errorf("expected 2010 movie not to be a classic")
	}
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`VoteAverage > 5`)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := compiler.Compile(`VoteAverage > 5`)
	if first != second {
		t.Errorf("expected cached filter to be returned")
	}
	if compiler.Size() != 1 {
		t.Errorf("expected cache size 1, got %d", compiler.Size())
	}

	compiler.Compile(`VoteAverage > 6`)
	compiler.Compile(`VoteAverage > 7`)
	if compiler.Size() != 2 {
		t.Errorf("expected cache to stay bounded at 2, got %d", compiler.Size())
	}

	third, _ := compiler.Compile(`VoteAverage > 5`)
	if third == first {
		t.Errorf("expected evicted expression to be recompiled")
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", compiler.Size())
	}
}
