package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinenow/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// The zero movie environment gives the checker every variable and its type
	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func (c *exprCompiler) environment(movie tmdb.Movie) map[string]any {
	env := createRuntimeEnvironment(movie)
	maps.Copy(env, c.customFuncs)
	return env
}

// Evaluate evaluates the filter against a movie. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie tmdb.Movie) bool {
	env := createRuntimeEnvironment(movie)
	maps.Copy(env, f.custom)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// AsBool guarantees the type
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createRuntimeEnvironment exposes the movie fields and helper functions to expressions
func createRuntimeEnvironment(movie tmdb.Movie) map[string]any {
	env := make(map[string]any, 24)

	released, _ := time.Parse("2006-01-02", movie.ReleaseDate)

	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["OriginalTitle"] = movie.OriginalTitle
	env["Overview"] = movie.Overview
	env["ReleaseDate"] = movie.ReleaseDate
	env["Released"] = released
	env["Year"] = movie.Year()
	env["VoteAverage"] = movie.VoteAverage
	env["VoteCount"] = movie.VoteCount
	env["Popularity"] = movie.Popularity
	env["Language"] = movie.OriginalLanguage
	env["Adult"] = movie.Adult
	env["HasPoster"] = movie.PosterPath != ""

	env["titleHas"] = func(substr string) bool {
		return strings.Contains(strings.ToLower(movie.Title), strings.ToLower(substr))
	}
	env["overviewHas"] = func(substr string) bool {
		return strings.Contains(strings.ToLower(movie.Overview), strings.ToLower(substr))
	}
	env["releasedWithin"] = func(days int) bool {
		if released.IsZero() {
			return false
		}
		since := time.Since(released)
		return since >= -24*time.Hour*time.Duration(days) && since <= 24*time.Hour*time.Duration(days)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}

	return env
}
