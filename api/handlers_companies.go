package api

import (
	"expirytracker/config"
	"expirytracker/db"
	"expirytracker/export"
	"expirytracker/utils"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// --- Save Employee ---

// SaveEmployeeRequest carries one employee save under the company named
// in the URL path: the employee name (required), an optional role, and
// the submitted document fields keyed by document type.
type SaveEmployeeRequest struct {
	EmployeeName string                      `json:"employee_name"`
	Role         string                      `json:"role"`
	Documents    map[string]db.DocumentInput `json:"documents"`
}

// SaveEmployeeResponse mirrors SaveProfileResponse for the company
// dashboard: company summary text, refreshed employee table, field
// errors, and a status message.
type SaveEmployeeResponse struct {
	CompanyName string   `json:"company_name"`
	Summary     string   `json:"summary"`
	Employees   Table    `json:"employees"`
	Errors      []string `json:"errors"`
	Message     string   `json:"message"`
}

// SaveEmployeeHandler creates or updates one employee under a company.
// @Summary      Save an employee
// @Description  Creates or updates one employee record under the company in the path. A missing
// @Description  employee name is the only hard failure: the request is rejected and the store is
// @Description  left untouched. Matching is case-insensitive on the trimmed employee name: an
// @Description  existing employee is updated in place (history carried forward), otherwise a new
// @Description  employee is appended. Document field errors behave exactly like profile saves.
// @Tags         Companies
// @Accept       json
// @Produce      json
// @Param        company  path  string              true "Company name."
// @Param        employee body  SaveEmployeeRequest true "Employee name, role, and submitted documents."
// @Success      200  {object}  SaveEmployeeResponse "The employee was saved; response carries the refreshed company view."
// @Failure      400  {object}  utils.APIError "Bad Request: invalid body, or the employee name is missing."
// @Failure      500  {object}  utils.APIError "Internal Server Error: the data file could not be written."
// @Router       /companies/{company}/employees [post]
func SaveEmployeeHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	companyParam := c.Param("company")

	var req SaveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	store, companyName, fieldErrors, err := database.UpsertEmployee(companyParam, req.EmployeeName, req.Role, req.Documents)
	if err != nil {
		if strings.Contains(err.Error(), "employee name is required") {
			utils.GinBadRequest(c, "Employee name is required.")
		} else {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to save employee: %v", err))
		}
		return
	}

	today := time.Now()
	company := store.Companies[companyName]

	c.JSON(http.StatusOK, SaveEmployeeResponse{
		CompanyName: companyName,
		Summary:     db.BuildCompanySummary(companyName, company, fieldErrors, today),
		Employees: Table{
			Headers: db.EmployeeTableHeaders,
			Rows:    db.EmployeeTable(companyName, company, today),
		},
		Errors:  fieldErrors,
		Message: savedMessage(fieldErrors),
	})
}

// --- Employee Table ---

// EmployeeTableHandler returns one company's employee overview table.
// @Summary      Company employee table
// @Description  One row per employee showing the soonest-expiring document, sorted ascending by
// @Description  days left; employees with no valid document sort last.
// @Tags         Companies
// @Produce      json
// @Param        company path string true "Company name."
// @Success      200  {object}  Table "Rows matching the headers [Company, Name, Role, Next expiry doc, Next expiry date, Days left, Status]."
// @Failure      404  {object}  utils.APIError "Not Found: no company with that name."
// @Router       /companies/{company}/employees [get]
func EmployeeTableHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	companyName := c.Param("company")

	store := database.Load()
	company, found := store.Companies[companyName]
	if !found {
		utils.GinNotFound(c, fmt.Sprintf("Company '%s' not found.", companyName))
		return
	}

	c.JSON(http.StatusOK, Table{
		Headers: db.EmployeeTableHeaders,
		Rows:    db.EmployeeTable(companyName, company, time.Now()),
	})
}

// --- Company Summary ---

// CompanySummaryHandler returns one company's expiry summary as text or PDF.
// @Summary      Company summary
// @Description  The per-employee next-expiry summary for one company. Pass ?format=pdf to
// @Description  download the summary rendered as a PDF document.
// @Tags         Companies
// @Produce      json
// @Param        company path  string true  "Company name."
// @Param        format  query string false "Set to 'pdf' for a PDF download."
// @Success      200  {object}  SummaryResponse "The summary text (or PDF bytes when format=pdf)."
// @Failure      404  {object}  utils.APIError "Not Found: no company with that name."
// @Failure      500  {object}  utils.APIError "Internal Server Error: PDF rendering failed."
// @Router       /companies/{company}/summary [get]
func CompanySummaryHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	companyName := c.Param("company")

	store := database.Load()
	company, found := store.Companies[companyName]
	if !found {
		utils.GinNotFound(c, fmt.Sprintf("Company '%s' not found.", companyName))
		return
	}

	summary := db.BuildCompanySummary(companyName, company, nil, time.Now())

	if c.Query("format") == "pdf" {
		pdfBytes, err := export.RenderTextReport(fmt.Sprintf("Company summary: %s", companyName), summary)
		if err != nil {
			utils.GinInternalServerError(c, fmt.Sprintf("Failed to render PDF: %v", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=company_%s_summary.pdf", companyName))
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
