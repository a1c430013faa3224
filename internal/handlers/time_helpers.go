package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/timezone"
)

func parseDay(loc *time.Location, s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// parseScope reads the optional day/month narrowing from query params:
// either ?day=2006-01-02 or ?month=1&year=2026.
func parseScope(c *gin.Context, tz string) (*domain.DateScope, bool) {
	loc := timezone.Location(tz)

	if day := c.Query("day"); day != "" {
		d, err := parseDay(loc, day)
		if err != nil {
			return nil, false
		}
		return &domain.DateScope{Kind: domain.ScopeDay, Date: d}, true
	}

	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" && yearStr == "" {
		return nil, true
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return nil, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		return nil, false
	}

	return &domain.DateScope{
		Kind: domain.ScopeMonth,
		Date: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc),
	}, true
}
