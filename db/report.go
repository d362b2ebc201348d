package db

import (
	"expirytracker/models"
	"fmt"
	"sort"
	"strings"
	"time"
)

// dateLayout is the only accepted expiry date format.
const dateLayout = "2006-01-02"

// nearExpiryWindowDays is the fixed status boundary: documents expiring
// within this many days are NEAR EXPIRY. Independent of the per-document
// reminder threshold, which only drives the reminder preview.
const nearExpiryWindowDays = 30

// upcomingLimit caps the analytics "top upcoming expiries" table.
const upcomingLimit = 30

// defaultPreviewWindowDays is used when the reminder preview window is
// absent or negative.
const defaultPreviewWindowDays = 7

// noValidDocsSentinel sorts entities without any evaluable document after
// every real days-left value.
const noValidDocsSentinel = 1 << 30

// Reminder preview flags.
const (
	ReminderFires    = "FIRES"
	ReminderUpcoming = "UPCOMING"
)

// Table headers for the row lists produced below. Rows are fixed-width
// cell sequences matching these headers, ready for any tabular renderer.
var (
	ProfileOverviewHeaders = []string{"Profile", "Next document", "Next expiry", "Days left", "Status"}
	EmployeeTableHeaders   = []string{"Company", "Name", "Role", "Next expiry doc", "Next expiry date", "Days left", "Status"}
	UpcomingHeaders        = []string{"Type", "Name", "Company", "Document", "Expiry date", "Days left", "Status"}
	ReminderPreviewHeaders = []string{"Type", "Name", "Company", "Document", "Expiry date", "Reminder days", "Days from chosen date", "Reminder status"}
)

// TableRow is one ordered sequence of string/number cells.
type TableRow []any

// Evaluation is the result of classifying one document against a
// reference date.
type Evaluation struct {
	Expiry       string `json:"expiry"`
	DaysLeft     int    `json:"days_left"`
	Status       string `json:"status"`
	ReminderDays int    `json:"reminder_days"`
}

// ParseDate parses a YYYY-MM-DD string, tolerating surrounding whitespace.
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// daysBetween returns whole calendar days from one date to another,
// ignoring the time-of-day and location of either value.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// EvaluateDocument classifies one document relative to today. The second
// return value is false when the expiry string does not parse; callers
// must treat that as "no valid data", never as an error.
func EvaluateDocument(expiry string, reminderDays int, today time.Time) (Evaluation, bool) {
	expiryDate, ok := ParseDate(expiry)
	if !ok {
		return Evaluation{}, false
	}

	daysLeft := daysBetween(today, expiryDate)

	var status string
	switch {
	case daysLeft < 0:
		status = models.StatusExpired
	case daysLeft <= nearExpiryWindowDays:
		status = models.StatusNearExpiry
	default:
		status = models.StatusOK
	}

	return Evaluation{
		Expiry:       expiry,
		DaysLeft:     daysLeft,
		Status:       status,
		ReminderDays: reminderDays,
	}, true
}

// docTypeOrder returns the keys of a document map in deterministic order:
// known document types first (enum order), then any inferred unknown
// types alphabetically.
func docTypeOrder(docs map[string]models.Document) []string {
	order := make([]string, 0, len(docs))
	for _, dt := range models.DocTypes {
		if _, ok := docs[dt]; ok {
			order = append(order, dt)
		}
	}
	var unknown []string
	for key := range docs {
		if !models.IsKnownDocType(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return append(order, unknown...)
}

// soonestExpiry evaluates every document of one entity and returns the
// one with the fewest days left. Ties go to the first document in
// docTypeOrder. ok is false when no document evaluates successfully.
func soonestExpiry(docs map[string]models.Document, today time.Time) (string, Evaluation, bool) {
	var (
		bestType string
		best     Evaluation
		found    bool
	)
	for _, docType := range docTypeOrder(docs) {
		doc := docs[docType]
		eval, ok := EvaluateDocument(doc.Expiry, doc.ReminderDays, today)
		if !ok {
			continue
		}
		if !found || eval.DaysLeft < best.DaysLeft {
			bestType = docType
			best = eval
			found = true
		}
	}
	return bestType, best, found
}

// sortedProfileNames returns profile names in a stable order; Go map
// iteration is randomized, unlike the insertion-ordered store the data
// file came from.
func sortedProfileNames(store *models.Store) []string {
	names := make([]string, 0, len(store.Profiles))
	for name := range store.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedCompanyNames(store *models.Store) []string {
	names := make([]string, 0, len(store.Companies))
	for name := range store.Companies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rankedRow pairs a table row with the days-left value it sorts on.
type rankedRow struct {
	days int
	row  TableRow
}

func sortRanked(rows []rankedRow) []TableRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].days < rows[j].days })
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.row)
	}
	return out
}

// ProfilesOverview builds one soonest-expiry row per profile, sorted
// ascending by days left; profiles with no valid document sort last.
func ProfilesOverview(store *models.Store, today time.Time) []TableRow {
	ranked := make([]rankedRow, 0, len(store.Profiles))
	for _, name := range sortedProfileNames(store) {
		profile := store.Profiles[name]
		docType, eval, ok := soonestExpiry(profile.Docs, today)
		if !ok {
			ranked = append(ranked, rankedRow{
				days: noValidDocsSentinel,
				row:  TableRow{name, "-", "-", "-", models.StatusNoValidDocs},
			})
			continue
		}
		ranked = append(ranked, rankedRow{
			days: eval.DaysLeft,
			row:  TableRow{name, docType, eval.Expiry, eval.DaysLeft, eval.Status},
		})
	}
	return sortRanked(ranked)
}

// EmployeeTable builds one soonest-expiry row per employee of a company,
// sorted ascending by days left; employees with no valid document sort
// last.
func EmployeeTable(companyName string, company models.Company, today time.Time) []TableRow {
	ranked := make([]rankedRow, 0, len(company.Employees))
	for _, emp := range company.Employees {
		name := dashIfEmpty(emp.Name)
		role := dashIfEmpty(emp.Role)
		docType, eval, ok := soonestExpiry(emp.Docs, today)
		if !ok {
			ranked = append(ranked, rankedRow{
				days: noValidDocsSentinel,
				row:  TableRow{companyName, name, role, "-", "-", "-", models.StatusNoValidDocs},
			})
			continue
		}
		ranked = append(ranked, rankedRow{
			days: eval.DaysLeft,
			row:  TableRow{companyName, name, role, docType, eval.Expiry, eval.DaysLeft, eval.Status},
		})
	}
	return sortRanked(ranked)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// BuildProfileSummary renders the plain-text summary for one profile,
// prefixed with any field errors accumulated during the save.
func BuildProfileSummary(profileName string, docs map[string]models.Document, errors []string, today time.Time) string {
	var lines []string

	if len(errors) > 0 {
		lines = append(lines, "Some issues found while saving your data:")
		for _, e := range errors {
			lines = append(lines, "- "+e)
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		fmt.Sprintf("Expiry Summary for profile: %s (Today: %s)", profileName, today.Format(dateLayout)),
		"")

	if len(docs) == 0 {
		lines = append(lines, "No documents saved for this profile.")
	} else {
		for _, docType := range docTypeOrder(docs) {
			doc := docs[docType]
			eval, ok := EvaluateDocument(doc.Expiry, doc.ReminderDays, today)
			if !ok {
				lines = append(lines, fmt.Sprintf("%s: invalid expiry date.", docType))
				continue
			}
			lines = append(lines, fmt.Sprintf(
				"%s: expires on %s (%d days left) - status: %s, reminder at %d days before.",
				docType, eval.Expiry, eval.DaysLeft, eval.Status, eval.ReminderDays))
		}
	}

	return strings.Join(lines, "\n")
}

// BuildCompanySummary renders the plain-text summary for one company:
// one next-expiry line per employee.
func BuildCompanySummary(companyName string, company models.Company, errors []string, today time.Time) string {
	var lines []string

	if len(errors) > 0 {
		lines = append(lines, "Some issues found while saving your data:")
		for _, e := range errors {
			lines = append(lines, "- "+e)
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		fmt.Sprintf("Company expiry summary: %s (Today: %s)", companyName, today.Format(dateLayout)),
		"")

	if len(company.Employees) == 0 {
		lines = append(lines, "No employees saved for this company.")
		return strings.Join(lines, "\n")
	}

	for _, emp := range company.Employees {
		name := dashIfEmpty(emp.Name)
		role := dashIfEmpty(emp.Role)
		docType, eval, ok := soonestExpiry(emp.Docs, today)
		if !ok {
			lines = append(lines, fmt.Sprintf("%s (%s): no valid documents.", name, role))
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"%s (%s): next expiry %s on %s (%d days left), status: %s.",
			name, role, docType, eval.Expiry, eval.DaysLeft, eval.Status))
	}

	return strings.Join(lines, "\n")
}

// BuildAnalytics scans every document of every profile and employee and
// returns the analytics summary text plus the top upcoming-expiry rows
// (at most upcomingLimit, sorted ascending by days left).
func BuildAnalytics(store *models.Store, today time.Time) (string, []TableRow) {
	statusCounts := map[string]int{
		models.StatusExpired:    0,
		models.StatusNearExpiry: 0,
		models.StatusOK:         0,
	}
	var upcoming []rankedRow

	for _, pname := range sortedProfileNames(store) {
		profile := store.Profiles[pname]
		for _, docType := range docTypeOrder(profile.Docs) {
			doc := profile.Docs[docType]
			eval, ok := EvaluateDocument(doc.Expiry, doc.ReminderDays, today)
			if !ok {
				continue
			}
			statusCounts[eval.Status]++
			upcoming = append(upcoming, rankedRow{
				days: eval.DaysLeft,
				row:  TableRow{"Profile", pname, "-", docType, eval.Expiry, eval.DaysLeft, eval.Status},
			})
		}
	}

	totalEmployees := 0
	for _, cname := range sortedCompanyNames(store) {
		company := store.Companies[cname]
		totalEmployees += len(company.Employees)
		for _, emp := range company.Employees {
			name := dashIfEmpty(emp.Name)
			for _, docType := range docTypeOrder(emp.Docs) {
				doc := emp.Docs[docType]
				eval, ok := EvaluateDocument(doc.Expiry, doc.ReminderDays, today)
				if !ok {
					continue
				}
				statusCounts[eval.Status]++
				upcoming = append(upcoming, rankedRow{
					days: eval.DaysLeft,
					row:  TableRow{"Employee", name, cname, docType, eval.Expiry, eval.DaysLeft, eval.Status},
				})
			}
		}
	}

	upcomingRows := sortRanked(upcoming)
	if len(upcomingRows) > upcomingLimit {
		upcomingRows = upcomingRows[:upcomingLimit]
	}

	riskScore := 2*statusCounts[models.StatusExpired] + statusCounts[models.StatusNearExpiry]

	lines := []string{
		fmt.Sprintf("Analytics summary (Today: %s)", today.Format(dateLayout)),
		"",
		fmt.Sprintf("Total personal profiles: %d", len(store.Profiles)),
		fmt.Sprintf("Total employees (all companies): %d", totalEmployees),
		"",
		"Document status counts (profiles + employees):",
		fmt.Sprintf("- OK: %d", statusCounts[models.StatusOK]),
		fmt.Sprintf("- NEAR EXPIRY (<=30 days): %d", statusCounts[models.StatusNearExpiry]),
		fmt.Sprintf("- EXPIRED: %d", statusCounts[models.StatusExpired]),
		"",
		fmt.Sprintf("Simple risk score (higher is worse): %d", riskScore),
	}
	lines = append(lines, riskLevelLine(riskScore))

	return strings.Join(lines, "\n"), upcomingRows
}

// riskLevelLine maps a risk score to its qualitative level.
func riskLevelLine(score int) string {
	switch {
	case score == 0:
		return "Risk level: Very low."
	case score <= 5:
		return "Risk level: Low."
	case score <= 15:
		return "Risk level: Moderate."
	default:
		return "Risk level: High. Many documents are near expiry or expired."
	}
}

// PreviewReminders simulates which reminders would fire in the window
// starting at asOf. Days left are recomputed against asOf instead of the
// real current date; a document is included when 0 <= days <= windowDays
// and flagged FIRES when days equals its reminder threshold exactly.
// Pure read-only simulation: nothing is stored, nothing is delivered.
func PreviewReminders(store *models.Store, asOf time.Time, windowDays int) (string, []TableRow) {
	if windowDays < 0 {
		windowDays = defaultPreviewWindowDays
	}

	var ranked []rankedRow

	include := func(entityType, name, companyName string, docs map[string]models.Document) {
		for _, docType := range docTypeOrder(docs) {
			doc := docs[docType]
			expiryDate, ok := ParseDate(doc.Expiry)
			if !ok {
				continue
			}
			days := daysBetween(asOf, expiryDate)
			if days < 0 || days > windowDays {
				continue
			}
			flag := ReminderUpcoming
			if days == doc.ReminderDays {
				flag = ReminderFires
			}
			ranked = append(ranked, rankedRow{
				days: days,
				row:  TableRow{entityType, name, companyName, docType, doc.Expiry, doc.ReminderDays, days, flag},
			})
		}
	}

	for _, pname := range sortedProfileNames(store) {
		include("Profile", pname, "-", store.Profiles[pname].Docs)
	}
	for _, cname := range sortedCompanyNames(store) {
		for _, emp := range store.Companies[cname].Employees {
			include("Employee", dashIfEmpty(emp.Name), cname, emp.Docs)
		}
	}

	rows := sortRanked(ranked)

	lines := []string{
		fmt.Sprintf("Reminder preview from %s for the next %d days.", asOf.Format(dateLayout), windowDays),
		"A reminder fires when (expiry_date - today) equals reminder_days.",
		"",
	}
	if len(rows) == 0 {
		lines = append(lines, "No reminders would fire in this window.")
	} else {
		lines = append(lines, fmt.Sprintf("Total items in window: %d", len(rows)))
	}

	return strings.Join(lines, "\n"), rows
}
