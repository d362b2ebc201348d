package db

import (
	"encoding/json"
	"expirytracker/config"
	"expirytracker/models"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary directory for test data files
func createTempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "expirytracker_db_test_")
	require.NoError(t, err, "Failed to create temp directory")
	return dir
}

// Helper function to create a default config pointing to a temp file path
func createTestConfig(t *testing.T, tempDir string) *config.Config {
	return &config.Config{
		DataFilePath:  filepath.Join(tempDir, "test_data.json"),
		EnableBackup:  true, // Test backup creation
		ListenAddress: "127.0.0.1",
		ListenPort:    "0", // Not used
	}
}

// Helper function to set up a test database instance
// Returns the DB instance, its config, and a cleanup function
func setupTestDB(t *testing.T) (*Database, *config.Config, func()) {
	tempDir := createTempDir(t)
	cfg := createTestConfig(t, tempDir)
	db, err := NewDatabase(cfg)
	require.NoError(t, err, "NewDatabase failed during setup")

	cleanup := func() {
		err := os.RemoveAll(tempDir)
		if err != nil {
			t.Logf("Warning: Failed to remove temp directory %s: %v", tempDir, err)
		}
	}

	return db, cfg, cleanup
}

// Helper to write content directly to the data file for testing Load
func writeTestDataFile(t *testing.T, cfg *config.Config, content string) {
	err := os.WriteFile(cfg.DataFilePath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write test data file")
}

// Helper to read and unmarshal the data file for verifying persistence
func readTestDataFile(t *testing.T, cfg *config.Config) *models.Store {
	data, err := os.ReadFile(cfg.DataFilePath)
	require.NoError(t, err, "Failed to read test data file")
	var store models.Store
	require.NoError(t, json.Unmarshal(data, &store), "Persisted data file is not valid JSON")
	return &store
}

// --- Load Tests ---

func TestDatabase_Load_FileNotFound(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	store := db.Load()
	require.NotNil(t, store)
	assert.NotNil(t, store.Profiles, "Profiles map should be initialized")
	assert.NotNil(t, store.Companies, "Companies map should be initialized")
	assert.Empty(t, store.Profiles)
	assert.Empty(t, store.Companies)
}

func TestDatabase_Load_CorruptFile(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	writeTestDataFile(t, cfg, `{"profiles": {"Self": {`) // Truncated JSON

	store := db.Load()
	require.NotNil(t, store, "Load must not fail on corrupt input")
	assert.Empty(t, store.Profiles, "Corrupt file should degrade to an empty store")
	assert.Empty(t, store.Companies)
}

func TestDatabase_Load_ValidFile(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	writeTestDataFile(t, cfg, `{
		"profiles": {
			"Self": {
				"docs": {"Passport": {"expiry": "2030-01-01", "reminder_days": 60}},
				"history": []
			}
		},
		"companies": {}
	}`)

	store := db.Load()
	require.Contains(t, store.Profiles, "Self")
	doc, ok := store.Profiles["Self"].Docs["Passport"]
	require.True(t, ok)
	assert.Equal(t, "2030-01-01", doc.Expiry)
	assert.Equal(t, 60, doc.ReminderDays)
}

// --- UpsertProfile Tests ---

func TestDatabase_UpsertProfile_DefaultsNameToSelf(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	store, name, fieldErrors, err := db.UpsertProfile("   ", map[string]DocumentInput{
		"Passport": {Expiry: "2030-05-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Self", name, "Blank profile name should default to 'Self'")
	assert.Empty(t, fieldErrors)
	require.Contains(t, store.Profiles, "Self")

	// Verify persistence took effect on disk
	saved := readTestDataFile(t, cfg)
	require.Contains(t, saved.Profiles, "Self")
	assert.Equal(t, "2030-05-01", saved.Profiles["Self"].Docs["Passport"].Expiry)
	assert.Equal(t, models.DefaultReminderDays, saved.Profiles["Self"].Docs["Passport"].ReminderDays)
}

func TestDatabase_UpsertProfile_AppendsHistory(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, _, err := db.UpsertProfile("Amma", map[string]DocumentInput{
		"Visa": {Expiry: "2027-03-15"},
	})
	require.NoError(t, err)

	store, _, _, err := db.UpsertProfile("Amma", map[string]DocumentInput{
		"Visa":        {Expiry: "2028-03-15"},
		"Emirates ID": {Expiry: "2027-11-30", ReminderDays: "45"},
	})
	require.NoError(t, err)

	profile := store.Profiles["Amma"]
	require.Len(t, profile.History, 2, "Each save should append one history entry")
	assert.Contains(t, profile.History[1].Note, "2 documents")
	// Document map is replaced wholesale, not merged
	assert.Len(t, profile.Docs, 2)
	assert.Equal(t, "2028-03-15", profile.Docs["Visa"].Expiry)
	assert.Equal(t, 45, profile.Docs["Emirates ID"].ReminderDays)
}

func TestDatabase_UpsertProfile_FieldErrors(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	store, name, fieldErrors, err := db.UpsertProfile("Self", map[string]DocumentInput{
		"Passport":     {Expiry: "31-12-2030"},               // Wrong date format: dropped
		"Visa":         {Expiry: "2030-06-01", ReminderDays: "abc"}, // Bad reminder: defaulted
		"Emirates ID":  {Expiry: "2030-07-01", ReminderDays: "-5"},  // Negative reminder: defaulted
		"Car Insurance": {Expiry: "   "},                     // Blank: skipped silently
		"Library Card": {Expiry: "2030-01-01"},               // Unknown type: reported
	})
	require.NoError(t, err, "Field errors never fail the save")
	assert.Equal(t, "Self", name)

	docs := store.Profiles["Self"].Docs
	assert.NotContains(t, docs, "Passport", "Invalid date should drop the field")
	assert.NotContains(t, docs, "Car Insurance", "Blank expiry should be skipped")
	assert.NotContains(t, docs, "Library Card", "Unknown types are never stored")
	require.Contains(t, docs, "Visa")
	require.Contains(t, docs, "Emirates ID")
	assert.Equal(t, models.DefaultReminderDays, docs["Visa"].ReminderDays)
	assert.Equal(t, models.DefaultReminderDays, docs["Emirates ID"].ReminderDays)

	require.Len(t, fieldErrors, 4)
	assert.Contains(t, fieldErrors, "Passport: invalid date (use YYYY-MM-DD).")
	assert.Contains(t, fieldErrors, "Visa: invalid reminder days, using 30 by default.")
	assert.Contains(t, fieldErrors, "Emirates ID: invalid reminder days, using 30 by default.")
	assert.Contains(t, fieldErrors, "Library Card: unknown document type.")
}

// --- UpsertEmployee Tests ---

func TestDatabase_UpsertEmployee_DefaultsCompanyName(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	store, companyName, _, err := db.UpsertEmployee("", "Ravi", "Driver", map[string]DocumentInput{
		"Driving License": {Expiry: "2029-09-09"},
	})
	require.NoError(t, err)
	assert.Equal(t, "My Company", companyName, "Blank company name should default to 'My Company'")
	require.Contains(t, store.Companies, "My Company")
	require.Len(t, store.Companies["My Company"].Employees, 1)

	emp := store.Companies["My Company"].Employees[0]
	assert.Equal(t, "Ravi", emp.Name)
	assert.Equal(t, "Driver", emp.Role)
	assert.NotEmpty(t, emp.ID, "New employees get a generated id")
	assert.NotContains(t, emp.ID, "-", "Employee ids are dashless")
	require.Len(t, emp.History, 1)
}

func TestDatabase_UpsertEmployee_EmptyNameRejectedBeforeMutation(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, _, err := db.UpsertEmployee("Acme", "   ", "Cook", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee name is required")

	// The store must be untouched: no file written, nothing in memory
	_, statErr := os.Stat(cfg.DataFilePath)
	assert.True(t, os.IsNotExist(statErr), "Rejected save must not write the data file")
	store := db.Load()
	assert.Empty(t, store.Companies)
}

func TestDatabase_UpsertEmployee_CaseInsensitiveUpdate(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, _, _, err := db.UpsertEmployee("Acme", "Fatima", "Accountant", map[string]DocumentInput{
		"Visa": {Expiry: "2026-01-01"},
	})
	require.NoError(t, err)
	originalID := first.Companies["Acme"].Employees[0].ID

	// Different casing and surrounding whitespace must hit the same record
	second, _, _, err := db.UpsertEmployee("Acme", "  FATIMA ", "Manager", map[string]DocumentInput{
		"Visa":     {Expiry: "2027-01-01"},
		"Passport": {Expiry: "2029-06-30"},
	})
	require.NoError(t, err)

	employees := second.Companies["Acme"].Employees
	require.Len(t, employees, 1, "Matching names must update in place, not append")

	emp := employees[0]
	assert.Equal(t, "FATIMA", emp.Name, "The submitted (trimmed) name wins")
	assert.Equal(t, "Manager", emp.Role)
	assert.Equal(t, originalID, emp.ID, "The id is carried forward on update")
	assert.Len(t, emp.History, 2, "History is carried forward and appended to")
	assert.Equal(t, "2027-01-01", emp.Docs["Visa"].Expiry)
}

func TestDatabase_UpsertEmployee_DistinctNamesAppend(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, _, err := db.UpsertEmployee("Acme", "Omar", "", nil)
	require.NoError(t, err)
	store, _, _, err := db.UpsertEmployee("Acme", "Noor", "HR", nil)
	require.NoError(t, err)

	require.Len(t, store.Companies["Acme"].Employees, 2)
	assert.NotEqual(t,
		store.Companies["Acme"].Employees[0].ID,
		store.Companies["Acme"].Employees[1].ID)
}

// --- Persistence Tests ---

func TestDatabase_Persist_CreatesBackup(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	// First save: no previous file, so no backup yet
	_, _, _, err := db.UpsertProfile("Self", nil)
	require.NoError(t, err)
	_, statErr := os.Stat(cfg.DataFilePath + ".bak")
	assert.True(t, os.IsNotExist(statErr), "No backup expected on the first save")

	// Second save: the previous file is kept as .bak
	_, _, _, err = db.UpsertProfile("Self", map[string]DocumentInput{
		"Passport": {Expiry: "2031-01-01"},
	})
	require.NoError(t, err)
	_, statErr = os.Stat(cfg.DataFilePath + ".bak")
	assert.NoError(t, statErr, "Backup file should exist after the second save")

	// No stray temp file left behind
	_, statErr = os.Stat(cfg.DataFilePath + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "Temp file should have been renamed away")
}

func TestDatabase_Persist_BackupDisabled(t *testing.T) {
	tempDir := createTempDir(t)
	defer os.RemoveAll(tempDir)

	cfg := createTestConfig(t, tempDir)
	cfg.EnableBackup = false
	db, err := NewDatabase(cfg)
	require.NoError(t, err)

	_, _, _, err = db.UpsertProfile("Self", nil)
	require.NoError(t, err)
	_, _, _, err = db.UpsertProfile("Self", nil)
	require.NoError(t, err)

	_, statErr := os.Stat(cfg.DataFilePath + ".bak")
	assert.True(t, os.IsNotExist(statErr), "No backup should be written when disabled")
}

func TestDatabase_Persist_RoundTrips(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, _, err := db.UpsertEmployee("Acme", "Ravi", "Driver", map[string]DocumentInput{
		"Driving License": {Expiry: "2029-09-09", ReminderDays: "14"},
	})
	require.NoError(t, err)

	saved := readTestDataFile(t, cfg)
	require.Contains(t, saved.Companies, "Acme")
	require.Len(t, saved.Companies["Acme"].Employees, 1)
	doc := saved.Companies["Acme"].Employees[0].Docs["Driving License"]
	assert.Equal(t, "2029-09-09", doc.Expiry)
	assert.Equal(t, 14, doc.ReminderDays)

	// A fresh load of the written file yields the same canonical shape
	reloaded := db.Load()
	assert.Equal(t, saved.Companies["Acme"].Employees[0].ID, reloaded.Companies["Acme"].Employees[0].ID)
}

func TestNewDatabase_RequiresDataFilePath(t *testing.T) {
	_, err := NewDatabase(&config.Config{})
	require.Error(t, err)

	_, err = NewDatabase(nil)
	require.Error(t, err)
}
