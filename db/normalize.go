package db

import (
	"expirytracker/models"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// The data file has gone through three incompatible on-disk schemas:
//
//  1. A flat mapping of profile name -> profile record, with no
//     "profiles"/"companies" split and often no "docs" key (documents
//     were stored as loose fields on the record).
//  2. A split store where company employees live in an id-keyed mapping.
//  3. The current split store where employees are a list.
//
// Normalization detects the schema version up front and applies one
// migration function per version, so each can be tested in isolation.
// It never fails: unreadable or corrupt input degrades to an empty store,
// and malformed entries are dropped individually. Unknown extra fields on
// any record are discarded.

type schemaVersion int

const (
	schemaUnreadable   schemaVersion = iota // not JSON, or not an object
	schemaFlatProfiles                      // v1: the whole object is a profile mapping
	schemaSplitStore                        // v2/v3: has "profiles" and/or "companies" keys
)

// detectSchema classifies the top-level JSON value.
func detectSchema(root gjson.Result) schemaVersion {
	if !root.IsObject() {
		return schemaUnreadable
	}
	if root.Get("profiles").Exists() || root.Get("companies").Exists() {
		return schemaSplitStore
	}
	return schemaFlatProfiles
}

// NormalizeStore parses raw file bytes into the canonical Store shape.
// Normalizing an already-canonical store is a no-op (idempotent).
func NormalizeStore(raw []byte) *models.Store {
	if !gjson.ValidBytes(raw) {
		log.Printf("WARN: Data file is not valid JSON. Starting with an empty store.")
		return models.EmptyStore()
	}

	root := gjson.ParseBytes(raw)
	switch detectSchema(root) {
	case schemaFlatProfiles:
		return migrateFlatProfiles(root)
	case schemaSplitStore:
		return migrateSplitStore(root)
	default:
		log.Printf("WARN: Data file top-level value is not an object. Starting with an empty store.")
		return models.EmptyStore()
	}
}

// migrateFlatProfiles handles the oldest schema: every top-level key is a
// profile name, and there are no companies.
func migrateFlatProfiles(root gjson.Result) *models.Store {
	store := models.EmptyStore()
	root.ForEach(func(key, value gjson.Result) bool {
		if profile, ok := normalizeProfile(value); ok {
			store.Profiles[key.String()] = profile
		}
		return true
	})
	return store
}

// migrateSplitStore handles both split-store generations. The employee
// container shape (list vs id-keyed mapping) is dispatched per company by
// normalizeEmployees.
func migrateSplitStore(root gjson.Result) *models.Store {
	store := models.EmptyStore()

	if profiles := root.Get("profiles"); profiles.IsObject() {
		profiles.ForEach(func(key, value gjson.Result) bool {
			if profile, ok := normalizeProfile(value); ok {
				store.Profiles[key.String()] = profile
			}
			return true
		})
	}

	if companies := root.Get("companies"); companies.IsObject() {
		companies.ForEach(func(key, value gjson.Result) bool {
			if !value.IsObject() {
				return true // drop non-mapping company entries
			}
			store.Companies[key.String()] = models.Company{
				Employees: normalizeEmployees(value.Get("employees")),
			}
			return true
		})
	}

	return store
}

// normalizeProfile cleans one profile record. Non-mapping entries are
// dropped (ok=false). A record without a "docs" key gets one reconstructed
// by scanning its own fields for document-shaped values.
func normalizeProfile(value gjson.Result) (models.Profile, bool) {
	if !value.IsObject() {
		return models.Profile{}, false
	}
	return models.Profile{
		Docs:    normalizeOwnedDocs(value),
		History: normalizeHistory(value.Get("history")),
	}, true
}

// normalizeEmployees accepts either legacy employee container: a list of
// records, or an id->record mapping. Mapping keys are carried into the
// employee ID field so migration loses nothing; keys are visited in a
// numeric-aware sorted order to keep the result deterministic.
func normalizeEmployees(value gjson.Result) []models.Employee {
	employees := make([]models.Employee, 0)

	switch {
	case value.IsArray():
		value.ForEach(func(_, emp gjson.Result) bool {
			if cleaned, ok := normalizeEmployee("", emp); ok {
				employees = append(employees, cleaned)
			}
			return true
		})
	case value.IsObject():
		keys := make([]string, 0)
		byKey := make(map[string]gjson.Result)
		value.ForEach(func(key, emp gjson.Result) bool {
			keys = append(keys, key.String())
			byKey[key.String()] = emp
			return true
		})
		sort.Slice(keys, func(i, j int) bool { return lessEmployeeKey(keys[i], keys[j]) })
		for _, key := range keys {
			if cleaned, ok := normalizeEmployee(key, byKey[key]); ok {
				employees = append(employees, cleaned)
			}
		}
	}

	return employees
}

// lessEmployeeKey orders legacy employee-map keys numerically when both
// parse as integers ("2" before "10"), falling back to string order.
func lessEmployeeKey(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// normalizeEmployee cleans one employee record, trimming name and role.
// fallbackID is the legacy mapping key, used only when the record itself
// carries no id. Non-mapping entries are dropped.
func normalizeEmployee(fallbackID string, value gjson.Result) (models.Employee, bool) {
	if !value.IsObject() {
		return models.Employee{}, false
	}

	id := strings.TrimSpace(value.Get("id").String())
	if id == "" {
		id = fallbackID
	}

	return models.Employee{
		ID:      id,
		Name:    strings.TrimSpace(value.Get("name").String()),
		Role:    strings.TrimSpace(value.Get("role").String()),
		Docs:    normalizeOwnedDocs(value),
		History: normalizeHistory(value.Get("history")),
	}, true
}

// normalizeOwnedDocs extracts the document map from a profile or employee
// record. A present "docs" mapping is cleaned field by field; a present
// but non-mapping "docs" value yields an empty map; an absent "docs" key
// triggers inference over the record's own fields.
func normalizeOwnedDocs(record gjson.Result) map[string]models.Document {
	docs := record.Get("docs")
	if !docs.Exists() {
		return inferDocs(record)
	}
	if !docs.IsObject() {
		return make(map[string]models.Document)
	}
	return normalizeDocs(docs)
}

// normalizeDocs coerces a docs mapping into canonical typed documents.
// Non-mapping values are dropped; the expiry string is kept verbatim (an
// unparsable date degrades at evaluation time, not here).
func normalizeDocs(value gjson.Result) map[string]models.Document {
	docs := make(map[string]models.Document)
	value.ForEach(func(key, doc gjson.Result) bool {
		if !doc.IsObject() {
			return true
		}
		docs[key.String()] = models.Document{
			Expiry:       doc.Get("expiry").String(),
			ReminderDays: reminderDaysFrom(doc),
		}
		return true
	})
	return docs
}

// inferDocs reconstructs a document map from a legacy record that stored
// documents as loose fields: any field whose value is a mapping containing
// an "expiry" key is treated as a document. The match is deliberately
// loose; it exists to avoid losing data from the oldest files.
func inferDocs(record gjson.Result) map[string]models.Document {
	docs := make(map[string]models.Document)
	record.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() && value.Get("expiry").Exists() {
			docs[key.String()] = models.Document{
				Expiry:       value.Get("expiry").String(),
				ReminderDays: reminderDaysFrom(value),
			}
		}
		return true
	})
	return docs
}

// normalizeHistory coerces a history value into an entry list. A missing
// or non-list value defaults to an empty list; non-mapping elements are
// dropped.
func normalizeHistory(value gjson.Result) []models.HistoryEntry {
	history := make([]models.HistoryEntry, 0)
	if !value.IsArray() {
		return history
	}
	value.ForEach(func(_, entry gjson.Result) bool {
		if entry.IsObject() {
			history = append(history, models.HistoryEntry{
				Timestamp: entry.Get("timestamp").String(),
				Note:      entry.Get("note").String(),
			})
		}
		return true
	})
	return history
}

// reminderDaysFrom reads a document's reminder threshold, tolerating the
// numeric and string encodings older files used. Anything that is not a
// non-negative integer falls back to the default of 30.
func reminderDaysFrom(doc gjson.Result) int {
	r := doc.Get("reminder_days")
	if !r.Exists() {
		return models.DefaultReminderDays
	}
	switch r.Type {
	case gjson.Number:
		if n := int(r.Int()); n >= 0 && float64(n) == r.Num {
			return n
		}
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(r.String())); err == nil && n >= 0 {
			return n
		}
	}
	return models.DefaultReminderDays
}
