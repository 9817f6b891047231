package filter

import (
	"github.com/s0up4200/cinenow/tmdb"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the movies matching f in their original order.
// A nil filter matches every movie.
func Apply(f Filter, movies []tmdb.Movie) []tmdb.Movie {
	if f == nil {
		return movies
	}

	matched := make([]tmdb.Movie, 0, len(movies))
	for _, movie := range movies {
		if f.Evaluate(movie) {
			matched = append(matched, movie)
		}
	}
	return matched
}
