// Package dashboard turns the enriched user table into the six dashboard views.
//
// Views are selected by their menu label (or URL slug) through a fixed dispatch
// table. Rendering is a pure function of the enriched rows: nothing is cached
// between selections.
package dashboard

import (
	"errors"
	"strings"

	"userAnalytics/models"
)

// View identifies one dashboard view.
type View int

const (
	Home View = iota
	CharacterDistribution
	DomainBreakdown
	UserTable
	BarChart
	LineChart
)

// ErrUnknownView is returned for a label or slug outside the menu.
var ErrUnknownView = errors.New("unknown view")

// RenderFunc builds the page for one view.
type RenderFunc func(users []models.EnrichedUser) Page

// MenuItem is one entry of the sidebar menu.
type MenuItem struct {
	View  View   `json:"-"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

type entry struct {
	label  string
	slug   string
	kind   Kind
	render RenderFunc
}

// views is indexed by View and its order is the menu order.
var views = [...]entry{
	Home:                  {"Inicio", "inicio", KindText, renderHome},
	CharacterDistribution: {"Distribución de Caracteres", "caracteres", KindHistogram, renderCharacterDistribution},
	DomainBreakdown:       {"Usuarios por Dominio", "dominios", KindDonut, renderDomainBreakdown},
	UserTable:             {"Usuarios (Tabla)", "tabla", KindTable, renderUserTable},
	BarChart:              {"Gráfico de Barras", "barras", KindBar, renderBarChart},
	LineChart:             {"Gráfico de Línea", "linea", KindLine, renderLineChart},
}

func (v View) valid() bool {
	return v >= 0 && int(v) < len(views)
}

// Label returns the menu label.
func (v View) Label() string {
	if !v.valid() {
		return ""
	}
	return views[v].label
}

// Slug returns the URL-safe name.
func (v View) Slug() string {
	if !v.valid() {
		return ""
	}
	return views[v].slug
}

// Kind returns what the view draws.
func (v View) Kind() Kind {
	if !v.valid() {
		return ""
	}
	return views[v].kind
}

func (v View) String() string {
	return v.Label()
}

// Menu returns the six menu entries in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(views))
	for i, e := range views {
		out[i] = MenuItem{View: View(i), Label: e.label, Slug: e.slug}
	}
	return out
}

// Lookup resolves a menu label or slug. Matching on labels is exact; slugs are
// matched case-insensitively.
func Lookup(key string) (View, bool) {
	key = strings.TrimSpace(key)
	for i, e := range views {
		if key == e.label || strings.EqualFold(key, e.slug) {
			return View(i), true
		}
	}
	return 0, false
}

// Render builds the page selected by a label or slug. An empty key selects Home.
func Render(key string, users []models.EnrichedUser) (Page, error) {
	if strings.TrimSpace(key) == "" {
		return RenderView(Home, users), nil
	}
	v, ok := Lookup(key)
	if !ok {
		return Page{}, ErrUnknownView
	}
	return RenderView(v, users), nil
}

// RenderView builds the page for v. An out-of-range v renders Home.
func RenderView(v View, users []models.EnrichedUser) Page {
	if !v.valid() {
		v = Home
	}
	e := views[v]
	p := e.render(users)
	p.View = v
	p.Label = e.label
	p.Slug = e.slug
	p.Kind = e.kind
	return p
}
