// Package api serves stored jobs over HTTP: JSON listing, stats and
// CSV/XLSX downloads.
package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/export"
	"go-jobmarket-scraper/internal/filter"
	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	store database.Store
	now   func() time.Time
}

func NewHandler(store database.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// Router registers every route on a fresh gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", h.health)
	r.GET("/jobs", h.listJobs)
	r.GET("/stats", h.stats)
	r.GET("/export/jobs.csv", h.exportCSV)
	r.GET("/export/jobs.xlsx", h.exportXLSX)
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Job market API is running!",
		"status":  "healthy",
	})
}

func (h *Handler) listJobs(c *gin.Context) {
	jobs, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

func (h *Handler) stats(c *gin.Context) {
	jobs, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Summarize(jobs))
}

func (h *Handler) exportCSV(c *gin.Context) {
	jobs, ok := h.filtered(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, jobs); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="jobs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) exportXLSX(c *gin.Context) {
	jobs, ok := h.filtered(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, jobs); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="jobs.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// filtered loads all jobs and applies the query filters. It writes the
// error response itself and reports false when the request is done.
func (h *Handler) filtered(c *gin.Context) ([]models.NormalizedJob, bool) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return nil, false
	}

	jobs, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return nil, false
	}
	if criteria.IsEmpty() {
		return jobs, true
	}
	return filter.Apply(jobs, criteria, h.now()), true
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseCriteria reads role, location and skill (repeated or comma
// separated), with_salary and posted_within_days.
func parseCriteria(c *gin.Context) (filter.Criteria, error) {
	criteria := filter.Criteria{
		Roles:     multi(c, "role"),
		Locations: multi(c, "location"),
		Skills:    multi(c, "skill"),
	}

	if v := c.Query("with_salary"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return criteria, fmt.Errorf("with_salary: %w", err)
		}
		criteria.WithSalary = b
	}

	if v := c.Query("posted_within_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("posted_within_days must be a positive integer, got %q", v)
		}
		if criteria.PostedWithin, err = filter.PostedWithinDays(days); err != nil {
			return criteria, err
		}
	}
	return criteria, nil
}

func multi(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
