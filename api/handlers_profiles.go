package api

import (
	"expirytracker/config"
	"expirytracker/db"
	"expirytracker/export"
	"expirytracker/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Table is a generic tabular payload: a fixed header list plus rows whose
// cells line up with the headers. External renderers (UI, PDF export)
// consume these as-is.
type Table struct {
	Headers []string      `json:"headers"`
	Rows    []db.TableRow `json:"rows"`
}

// SummaryResponse wraps a plain-text report.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// savedMessage renders the operation status line shown after a save.
func savedMessage(fieldErrors []string) string {
	msg := "Saved successfully."
	if len(fieldErrors) > 0 {
		msg += " Some issues were found; see summary."
	}
	return msg
}

// --- Save Profile ---

// SaveProfileRequest carries one profile save: the profile name and the
// submitted document fields, keyed by document type. Blank expiry fields
// are skipped; invalid fields are reported back without blocking the rest.
type SaveProfileRequest struct {
	ProfileName string                      `json:"profile_name"`
	Documents   map[string]db.DocumentInput `json:"documents"`
}

// SaveProfileResponse is everything the save screen needs: the profile
// summary text, the refreshed all-profiles overview table, accumulated
// field errors, and a status message.
type SaveProfileResponse struct {
	ProfileName string   `json:"profile_name"`
	Summary     string   `json:"summary"`
	Overview    Table    `json:"overview"`
	Errors      []string `json:"errors"`
	Message     string   `json:"message"`
}

// SaveProfileHandler creates or updates one personal profile.
// @Summary      Save a personal profile
// @Description  Creates or updates a profile's document map and appends one history note.
// @Description
// @Description  An empty profile name defaults to "Self". Blank document fields are skipped.
// @Description  An invalid expiry date drops that one field and an invalid reminder-days value
// @Description  falls back to 30; both are reported in the errors list, and the valid subset of
// @Description  documents is always saved. The response includes the refreshed overview table
// @Description  of all profiles, sorted soonest expiry first.
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Param        profile body SaveProfileRequest true "Profile name and submitted documents, keyed by document type (e.g. 'Passport')."
// @Success      200  {object}  SaveProfileResponse "The profile was saved. Check 'errors' for skipped or defaulted fields."
// @Failure      400  {object}  utils.APIError "Bad Request: the request body is not valid JSON."
// @Failure      500  {object}  utils.APIError "Internal Server Error: the data file could not be written."
// @Router       /profiles [post]
func SaveProfileHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	store, profileName, fieldErrors, err := database.UpsertProfile(req.ProfileName, req.Documents)
	if err != nil {
		utils.GinInternalServerError(c, fmt.Sprintf("Failed to save profile: %v", err))
		return
	}

	today := time.Now()
	profile := store.Profiles[profileName]

	c.JSON(http.StatusOK, SaveProfileResponse{
		ProfileName: profileName,
		Summary:     db.BuildProfileSummary(profileName, profile.Docs, fieldErrors, today),
		Overview: Table{
			Headers: db.ProfileOverviewHeaders,
			Rows:    db.ProfilesOverview(store, today),
		},
		Errors:  fieldErrors,
		Message: savedMessage(fieldErrors),
	})
}

// --- Profiles Overview ---

// ProfilesOverviewHandler returns the all-profiles overview table.
// @Summary      All-profiles overview
// @Description  One row per profile showing its soonest-expiring document, sorted ascending by
// @Description  days left. Profiles with no valid document sort last with status NO VALID DOCS.
// @Tags         Profiles
// @Produce      json
// @Success      200  {object}  Table "Overview rows matching the headers [Profile, Next document, Next expiry, Days left, Status]."
// @Router       /profiles [get]
func ProfilesOverviewHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	store := database.Load()
	c.JSON(http.StatusOK, Table{
		Headers: db.ProfileOverviewHeaders,
		Rows:    db.ProfilesOverview(store, time.Now()),
	})
}

// --- Profile Summary ---

// ProfileSummaryHandler returns one profile's expiry summary as text or PDF.
// @Summary      Profile summary
// @Description  The per-document expiry summary for one profile. Pass ?format=pdf to download
// @Description  the same summary rendered as a PDF document instead of JSON.
// @Tags         Profiles
// @Produce      json
// @Param        name    path   string  true   "Profile name (as stored, e.g. 'Self')."
// @Param        format  query  string  false  "Set to 'pdf' for a PDF download."
// @Success      200  {object}  SummaryResponse "The summary text (or PDF bytes when format=pdf)."
// @Failure      404  {object}  utils.APIError "Not Found: no profile with that name."
// @Failure      500  {object}  utils.APIError "Internal Server Error: PDF rendering failed."
// @Router       /profiles/{name}/summary [get]
func ProfileSummaryHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	name := c.Param("name")

	store := database.Load()
	profile, found := store.Profiles[name]
	if !found {
		utils.GinNotFound(c, fmt.Sprintf("Profile '%s' not found.", name))
		return
	}

	summary := db.BuildProfileSummary(name, profile.Docs, nil, time.Now())

	if c.Query("format") == "pdf" {
		pdfBytes, err := export.RenderTextReport(fmt.Sprintf("Profile summary: %s", name), summary)
		if err != nil {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to render PDF: %v", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=profile_%s_summary.pdf", name))
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
