package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/s0up4200/cinenow/library"
	"github.com/s0up4200/cinenow/screen"
	"github.com/s0up4200/cinenow/tmdb"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	listTemplate   = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/list.html"))
	detailTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/detail.html"))
)

// MovieView is a movie prepared for the HTML views
type MovieView struct {
	ID        int64
	Title     string
	Overview  string
	PosterURL string
	Year      int
	Rating    string
	Released  string
	DetailURL string
}

// SectionView is one horizontally scrolling row of the list page
type SectionView struct {
	Label  string
	Movies []MovieView
}

// ListPage is the data of the list route
type ListPage struct {
	Title    string
	Filter   string
	Sections []SectionView
}

// DetailPage is the data of the detail route. Movie is nil when the fetch failed.
type DetailPage struct {
	Title   string
	BackURL string
	Movie   *MovieView
	Library string
}

// HTMLRenderer renders the two routes with the embedded templates
type HTMLRenderer struct {
	imageBaseURL string
	detailPath   func(int64) string
}

// NewHTMLRenderer creates a renderer. detailPath builds the link to a movie's detail route.
func NewHTMLRenderer(imageBaseURL string, detailPath func(int64) string) *HTMLRenderer {
	return &HTMLRenderer{
		imageBaseURL: imageBaseURL,
		detailPath:   detailPath,
	}
}

// NewMovieView maps a movie onto its display fields
func (r *HTMLRenderer) NewMovieView(movie tmdb.Movie) MovieView {
	view := MovieView{
		ID:        movie.ID,
		Title:     movie.Title,
		Overview:  movie.Overview,
		PosterURL: movie.PosterURL(r.imageBaseURL),
		Year:      movie.Year(),
		Released:  movie.ReleaseDate,
	}
	if movie.VoteCount > 0 {
		view.Rating = fmt.Sprintf("%.1f", movie.VoteAverage)
	}
	if r.detailPath != nil {
		view.DetailURL = r.detailPath(movie.ID)
	}
	return view
}

// ListPage builds the list page data from screen sections
func (r *HTMLRenderer) ListPage(sections []screen.Section, filterExpr string) ListPage {
	page := ListPage{
		Title:    AppTitle,
		Filter:   filterExpr,
		Sections: make([]SectionView, 0, len(sections)),
	}
	for _, section := range sections {
		sv := SectionView{
			Label:  section.Category.Label(),
			Movies: make([]MovieView, 0, len(section.Movies)),
		}
		for _, movie := range section.Movies {
			sv.Movies = append(sv.Movies, r.NewMovieView(movie))
		}
		page.Sections = append(page.Sections, sv)
	}
	return page
}

// DetailPage builds the detail page data
func (r *HTMLRenderer) DetailPage(movie *tmdb.Movie, status *library.Status, backURL string) DetailPage {
	page := DetailPage{
		Title:   AppTitle,
		BackURL: backURL,
	}
	if movie != nil {
		view := r.NewMovieView(*movie)
		page.Movie = &view
		page.Title = movie.Title
	}
	if status != nil {
		page.Library = status.Label()
	}
	return page
}

// RenderList writes the list page
func (r *HTMLRenderer) RenderList(w io.Writer, page ListPage) error {
	return listTemplate.ExecuteTemplate(w, "layout", page)
}

// RenderDetail writes the detail page
func (r *HTMLRenderer) RenderDetail(w io.Writer, page DetailPage) error {
	return detailTemplate.ExecuteTemplate(w, "layout", page)
}
