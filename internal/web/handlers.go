package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"userAnalytics/internal/dashboard"
	"userAnalytics/internal/metrics"
)

type indexData struct {
	AppTitle     string
	SidebarTitle string
	MenuPrompt   string
	Menu         []dashboard.MenuItem
	Page         dashboard.Page
	ChartURL     string
}

func (s *Server) index(c *gin.Context) {
	page, err := dashboard.Render(c.Query("view"), s.users)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "view": c.Query("view")})
		return
	}
	metrics.RecordRender(page.Slug)

	data := indexData{
		AppTitle:     dashboard.AppTitle,
		SidebarTitle: dashboard.SidebarTitle,
		MenuPrompt:   dashboard.MenuPrompt,
		Menu:         dashboard.Menu(),
		Page:         page,
	}
	if _, ok := buildChart(page); ok {
		data.ChartURL = "/charts/" + page.Slug
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) chart(c *gin.Context) {
	v, ok := dashboard.Lookup(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": dashboard.ErrUnknownView.Error()})
		return
	}
	ch, ok := buildChart(dashboard.RenderView(v, s.users))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "view has no chart"})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := ch.Render(c.Writer); err != nil {
		s.log.Error("chart render failed", "view", v.Slug(), "error", err)
	}
}

func (s *Server) listViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"views": dashboard.Menu()})
}

func (s *Server) getView(c *gin.Context) {
	page, err := dashboard.Render(c.Param("slug"), s.users)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	metrics.RecordRender(page.Slug)
	c.JSON(http.StatusOK, page)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": len(s.users)})
}
