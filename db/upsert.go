package db

import (
	"expirytracker/models"
	"expirytracker/utils"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"
)

// historyTimeLayout is the timestamp format for audit history notes.
const historyTimeLayout = "2006-01-02 15:04"

// DocumentInput is one raw submitted document: both fields arrive as form
// text. An empty expiry means the field was left blank and is skipped.
type DocumentInput struct {
	Expiry       string `json:"expiry"`
	ReminderDays string `json:"reminder_days"`
}

// buildDocs validates submitted document inputs into a canonical document
// map. Problems are accumulated as error strings, never returned as a
// failure: an invalid date drops that one field, an invalid reminder
// threshold falls back to the default of 30, and the valid remainder is
// always kept.
func buildDocs(inputs map[string]DocumentInput) (map[string]models.Document, []string) {
	docs := make(map[string]models.Document)
	var errors []string

	// Known types first (enum order), then anything unexpected.
	var unknown []string
	for key := range inputs {
		if !models.IsKnownDocType(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, docType := range models.DocTypes {
		input, ok := inputs[docType]
		if !ok {
			continue
		}

		expiry := strings.TrimSpace(input.Expiry)
		if expiry == "" {
			continue // blank field, not an error
		}
		if _, ok := ParseDate(expiry); !ok {
			errors = append(errors, fmt.Sprintf("%s: invalid date (use YYYY-MM-DD).", docType))
			continue
		}

		reminderDays := models.DefaultReminderDays
		if raw := strings.TrimSpace(input.ReminderDays); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				errors = append(errors, fmt.Sprintf("%s: invalid reminder days, using 30 by default.", docType))
			} else {
				reminderDays = n
			}
		}

		docs[docType] = models.Document{
			Expiry:       expiry,
			ReminderDays: reminderDays,
		}
	}

	for _, key := range unknown {
		errors = append(errors, fmt.Sprintf("%s: unknown document type.", key))
	}

	return docs, errors
}

// UpsertProfile creates or replaces a profile's document map and appends
// one history note. An empty name defaults to "Self". The store is loaded
// fresh, mutated, and flushed in full; the returned store is the saved
// state, alongside the canonical profile name and any accumulated field
// errors (which never block the valid subset from being saved).
func (db *Database) UpsertProfile(name string, inputs map[string]DocumentInput) (*models.Store, string, []string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultProfileName
	}

	store := db.Load()
	docs, fieldErrors := buildDocs(inputs)

	history := store.Profiles[name].History
	if history == nil {
		history = make([]models.HistoryEntry, 0)
	}
	history = append(history, models.HistoryEntry{
		Timestamp: time.Now().Format(historyTimeLayout),
		Note:      fmt.Sprintf("Profile updated with %d documents.", len(docs)),
	})

	store.Profiles[name] = models.Profile{
		Docs:    docs,
		History: history,
	}

	if err := db.persist(store); err != nil {
		return nil, name, fieldErrors, fmt.Errorf("failed to save profile '%s': %w", name, err)
	}

	log.Printf("INFO: Saved profile '%s' with %d documents (%d field errors)", name, len(docs), len(fieldErrors))
	return store, name, fieldErrors, nil
}

// UpsertEmployee creates or updates one employee under a company. An
// empty company name defaults to "My Company"; an empty employee name is
// the one hard validation failure in the system and aborts before any
// mutation. Matching is a case-insensitive comparison of trimmed names
// within the company: a match updates in place and carries forward the
// existing history and id, no match appends a new employee with a fresh
// history and a generated id.
func (db *Database) UpsertEmployee(companyName, employeeName, role string, inputs map[string]DocumentInput) (*models.Store, string, []string, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		companyName = models.DefaultCompanyName
	}

	employeeName = strings.TrimSpace(employeeName)
	if employeeName == "" {
		return nil, companyName, nil, fmt.Errorf("employee name is required")
	}
	role = strings.TrimSpace(role)

	db.mu.Lock()
	defer db.mu.Unlock()

	store := db.Load()
	docs, fieldErrors := buildDocs(inputs)

	company := store.Companies[companyName]

	existingIndex := -1
	for i, emp := range company.Employees {
		if strings.EqualFold(strings.TrimSpace(emp.Name), employeeName) {
			existingIndex = i
			break
		}
	}

	var (
		id      string
		history []models.HistoryEntry
	)
	if existingIndex >= 0 {
		id = company.Employees[existingIndex].ID
		history = company.Employees[existingIndex].History
	}
	if id == "" {
		id = utils.GenerateDashlessUUID()
	}
	if history == nil {
		history = make([]models.HistoryEntry, 0)
	}
	history = append(history, models.HistoryEntry{
		Timestamp: time.Now().Format(historyTimeLayout),
		Note:      fmt.Sprintf("Employee updated with %d documents.", len(docs)),
	})

	record := models.Employee{
		ID:      id,
		Name:    employeeName,
		Role:    role,
		Docs:    docs,
		History: history,
	}

	if existingIndex >= 0 {
		company.Employees[existingIndex] = record
	} else {
		company.Employees = append(company.Employees, record)
	}
	store.Companies[companyName] = company

	if err := db.persist(store); err != nil {
		return nil, companyName, fieldErrors, fmt.Errorf("failed to save employee '%s': %w", employeeName, err)
	}

	log.Printf("INFO: Saved employee '%s' under company '%s' with %d documents (%d field errors)", employeeName, companyName, len(docs), len(fieldErrors))
	return store, companyName, fieldErrors, nil
}
