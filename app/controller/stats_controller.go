package controller

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"rocketboost-admin/models"
	"rocketboost-admin/repository"
	"rocketboost-admin/utils"
)

// StatsController handles the dashboard statistics endpoints
type StatsController struct {
	repository repository.StatsRepositoryInterface
	now        func() time.Time
}

// NewStatsController creates a new StatsController
func NewStatsController(repo repository.StatsRepositoryInterface) *StatsController {
	return &StatsController{
		repository: repo,
		now:        time.Now,
	}
}

// Summary handles GET /api/stats/summary
// Example response:
//
//	{"totalToday": 31, "pendingQueue": 4, "refillRequests": 2}
func (c *StatsController) Summary(w http.ResponseWriter, r *http.Request) {
	now := c.now()
	periods := utils.BangkokPeriods(now)

	summary, err := c.repository.Summary(r.Context(), periods.Today, now.Add(-24*time.Hour).UTC())
	if err != nil {
		writeDomainError(w, "StatsSummary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Overview handles GET /api/stats/overview for today, this week and this
// month in Bangkok time
func (c *StatsController) Overview(w http.ResponseWriter, r *http.Request) {
	periods := utils.BangkokPeriods(c.now())

	var today, week, month *models.PeriodOverview
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		today, err = c.repository.PeriodOverview(ctx, periods.Today, periods.Now)
		return err
	})
	g.Go(func() (err error) {
		week, err = c.repository.PeriodOverview(ctx, periods.Week, periods.Now)
		return err
	})
	g.Go(func() (err error) {
		month, err = c.repository.PeriodOverview(ctx, periods.Month, periods.Now)
		return err
	})
	if err := g.Wait(); err != nil {
		writeDomainError(w, "StatsOverview", err)
		return
	}

	writeJSON(w, http.StatusOK, models.Overview{Today: *today, Week: *week, Month: *month})
}

// Quality handles GET /api/stats/quality
func (c *StatsController) Quality(w http.ResponseWriter, r *http.Request) {
	quality, err := c.repository.Quality(r.Context())
	if err != nil {
		writeDomainError(w, "StatsQuality", err)
		return
	}
	writeJSON(w, http.StatusOK, quality)
}
