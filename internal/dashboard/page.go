package dashboard

import (
	"time"

	"userAnalytics/models"
)

const (
	AppTitle     = "Análisis de Datos de Usuarios"
	SidebarTitle = "Menú de Navegación"
	MenuPrompt   = "Selecciona una sección"

	// HistogramBins is the number of name length bins.
	HistogramBins = 10
	// DonutHole is the fraction of the radius left empty in the donut.
	DonutHole = 0.4
	// NoDomainLabel names the segment of users whose email has no "@".
	NoDomainLabel = "(sin dominio)"
)

// SeriesStart is the first synthesized date of the line chart.
var SeriesStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// Kind tells the presentation layer what to draw.
type Kind string

const (
	KindText      Kind = "text"
	KindHistogram Kind = "histogram"
	KindDonut     Kind = "donut"
	KindTable     Kind = "table"
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
)

// Page is a fully aggregated view, ready to be drawn. Only the fields matching
// Kind are populated.
type Page struct {
	View       View     `json:"-"`
	Slug       string   `json:"view"`
	Label      string   `json:"label"`
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	XAxis      string   `json:"x_axis,omitempty"`
	YAxis      string   `json:"y_axis,omitempty"`
	Bins       []Bin    `json:"bins,omitempty"`
	Slices     []Slice  `json:"slices,omitempty"`
	Hole       float64  `json:"hole,omitempty"`
	Grid       *Grid    `json:"grid,omitempty"`
	Bars       []Bar    `json:"bars,omitempty"`
	Series     []Point  `json:"series,omitempty"`
}

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Slice is one donut segment.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Bar is one bar of the name length chart.
type Bar struct {
	NameLength int `json:"name_length"`
	Count      int `json:"count"`
}

// Point is one day of the line chart.
type Point struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Grid is a literal table: header plus one row of cells per user.
type Grid struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Align  string     `json:"align"`
}

func renderHome(_ []models.EnrichedUser) Page {
	return Page{
		Title:    AppTitle,
		Subtitle: "Bienvenido al análisis de datos de usuarios",
		Paragraphs: []string{
			"En esta aplicación podrás explorar los datos de los usuarios obtenidos desde una API.",
			"Selecciona una sección del menú para ver los gráficos o la tabla.",
		},
	}
}

func renderCharacterDistribution(users []models.EnrichedUser) Page {
	lengths := make([]int, len(users))
	for i, u := range users {
		lengths[i] = u.NameLength
	}
	return Page{
		Title:    "Distribución de caracteres en los nombres",
		Subtitle: "Distribución de caracteres en los nombres",
		XAxis:    "Cantidad de caracteres",
		YAxis:    "Frecuencia",
		Bins:     Histogram(lengths, HistogramBins),
	}
}

func renderDomainBreakdown(users []models.EnrichedUser) Page {
	return Page{
		Title:    "Distribución de dominios de email (Donut)",
		Subtitle: "Distribución de dominios de email",
		Slices:   DomainCounts(users),
		Hole:     DonutHole,
	}
}

func renderUserTable(users []models.EnrichedUser) Page {
	g := TableGrid(users)
	return Page{
		Title:    "Usuarios (tabla)",
		Subtitle: "Usuarios (tabla)",
		Grid:     &g,
	}
}

func renderBarChart(users []models.EnrichedUser) Page {
	return Page{
		Title:    "Número de usuarios por longitud de nombre",
		Subtitle: "Número de usuarios por longitud de nombre",
		XAxis:    "Longitud del nombre",
		YAxis:    "Número de usuarios",
		Bars:     LengthCounts(users),
	}
}

func renderLineChart(users []models.EnrichedUser) Page {
	return Page{
		Title:    "Evolución del número de usuarios con el tiempo",
		Subtitle: "Evolución del número de usuarios con el tiempo",
		XAxis:    "Fecha",
		YAxis:    "Número de usuarios",
		Series:   DailySeries(len(users), SeriesStart),
	}
}

// cell renders an optional value for the grid; absent values are blank.
func cell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
