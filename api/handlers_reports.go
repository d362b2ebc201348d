package api

import (
	"expirytracker/config"
	"expirytracker/db"
	"expirytracker/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// --- Analytics ---

// AnalyticsResponse carries the analytics summary text plus the top
// upcoming expiries across the whole store.
type AnalyticsResponse struct {
	Summary  string `json:"summary"`
	Upcoming Table  `json:"upcoming"`
}

// AnalyticsHandler recomputes store-wide analytics.
// @Summary      Store-wide analytics
// @Description  Scans every document of every profile and employee, tallies status counts,
// @Description  computes the risk score (2 x EXPIRED + NEAR EXPIRY) with its qualitative level,
// @Description  and returns the 30 soonest-expiring documents across the whole store.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  AnalyticsResponse "Analytics text and the top upcoming expiries."
// @Router       /analytics [get]
func AnalyticsHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	store := database.Load()
	summary, upcoming := db.BuildAnalytics(store, time.Now())

	c.JSON(http.StatusOK, AnalyticsResponse{
		Summary: summary,
		Upcoming: Table{
			Headers: db.UpcomingHeaders,
			Rows:    upcoming,
		},
	})
}

// --- Reminder Preview ---

// ReminderPreviewResponse carries the preview explanation text plus the
// rows inside the chosen window.
type ReminderPreviewResponse struct {
	Summary string `json:"summary"`
	Items   Table  `json:"items"`
}

// ReminderPreviewHandler simulates which reminders would fire in a window.
// @Summary      Reminder preview
// @Description  Recomputes days-left for every document relative to the given as_of date and
// @Description  returns the documents expiring inside the window. A row is flagged FIRES when
// @Description  days-left equals the document's reminder threshold exactly, else UPCOMING.
// @Description  Pure simulation: no reminder state is stored and nothing is delivered.
// @Description
// @Description  An absent or unparsable as_of date defaults to today; an absent or negative
// @Description  window defaults to 7 days.
// @Tags         Reports
// @Produce      json
// @Param        as_of       query  string false "Assume today is this date (YYYY-MM-DD)."
// @Param        window_days query  int    false "Look ahead this many days." default(7)
// @Success      200  {object}  ReminderPreviewResponse "Preview text and the rows inside the window."
// @Failure      400  {object}  utils.APIError "Bad Request: window_days is not an integer."
// @Router       /reminders/preview [get]
func ReminderPreviewHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	asOf := time.Now()
	if parsed, ok := db.ParseDate(c.Query("as_of")); ok {
		asOf = parsed
	}

	windowDays := -1 // negative means "use the default window"
	if raw := c.Query("window_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.GinBadRequest(c, "Invalid 'window_days' query parameter. Must be an integer.")
			return
		}
		windowDays = n
	}

	store := database.Load()
	summary, rows := db.PreviewReminders(store, asOf, windowDays)

	c.JSON(http.StatusOK, ReminderPreviewResponse{
		Summary: summary,
		Items: Table{
			Headers: db.ReminderPreviewHeaders,
			Rows:    rows,
		},
	})
}
