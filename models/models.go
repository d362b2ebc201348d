package models

// DocTypes lists every tracked document type, in the order used for
// deterministic iteration and tie-breaking (soonest-expiry rows pick the
// first type encountered in this order when days left are equal).
var DocTypes = []string{
	"Emirates ID",
	"Visa",
	"Driving License",
	"Passport",
	"Car Insurance",
	"Tenancy Contract",
}

// Status labels produced by document evaluation.
const (
	StatusOK         = "OK"
	StatusNearExpiry = "NEAR EXPIRY"
	StatusExpired    = "EXPIRED"
	// StatusNoValidDocs marks overview rows for entities whose documents
	// all failed to evaluate (missing or unparsable expiry dates).
	StatusNoValidDocs = "NO VALID DOCS"
)

// DefaultReminderDays is the reminder threshold applied when the input is
// empty or not a valid integer.
const DefaultReminderDays = 30

// Default names applied when a save request leaves them blank.
const (
	DefaultProfileName = "Self"
	DefaultCompanyName = "My Company"
)

// Document is one tracked expiring credential. Expiry is kept as the raw
// YYYY-MM-DD string and parsed on use; an unparsable value degrades to
// "no valid data" during evaluation rather than failing the record.
type Document struct {
	Expiry       string `json:"expiry"`
	ReminderDays int    `json:"reminder_days"`
}

// HistoryEntry is one append-only audit note. Timestamps use the
// "2006-01-02 15:04" layout.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
}

// Profile holds one person's document map and save history. Profiles are
// keyed by name in the store, so the name does not repeat here.
type Profile struct {
	Docs    map[string]Document `json:"docs"`
	History []HistoryEntry      `json:"history"`
}

// Employee is one company staff record. ID is a dashless UUID; records
// migrated from the old id-keyed employee mapping keep their original key
// as the ID, and brand-new employees get a generated one.
type Employee struct {
	ID      string              `json:"id,omitempty"`
	Name    string              `json:"name"`
	Role    string              `json:"role"`
	Docs    map[string]Document `json:"docs"`
	History []HistoryEntry      `json:"history"`
}

// Company groups employees. Employee names are unique per company,
// compared case-insensitively on the trimmed name.
type Company struct {
	Employees []Employee `json:"employees"`
}

// Store is the canonical persisted structure: the whole data file is one
// Store, loaded fresh at the start of each operation and flushed in full
// at the end of each write.
type Store struct {
	Profiles  map[string]Profile `json:"profiles"`
	Companies map[string]Company `json:"companies"`
}

// EmptyStore returns a Store with initialized (non-nil) maps, the shape
// every failed or missing load degrades to.
func EmptyStore() *Store {
	return &Store{
		Profiles:  make(map[string]Profile),
		Companies: make(map[string]Company),
	}
}

// IsKnownDocType reports whether docType is one of the tracked types.
func IsKnownDocType(docType string) bool {
	for _, dt := range DocTypes {
		if dt == docType {
			return true
		}
	}
	return false
}
