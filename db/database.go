package db

import (
	"encoding/json"
	"expirytracker/config"
	"expirytracker/models"
	"fmt"
	"log"
	"os"
	"sync"
)

// Database manages access to the JSON data file. Unlike a long-lived
// in-memory cache, every operation loads the store fresh from disk and
// every write flushes the whole store back, so the process never holds
// state between requests. The mutex serializes load-mutate-save cycles
// within this process; there is no cross-process locking (last writer
// wins, acceptable for the single-local-user design).
type Database struct {
	config *config.Config
	mu     sync.Mutex
}

// NewDatabase creates a Database bound to the configured data file and
// performs an initial load so startup surfaces the file's state in the log.
func NewDatabase(cfg *config.Config) (*Database, error) {
	if cfg == nil || cfg.DataFilePath == "" {
		return nil, fmt.Errorf("database requires a configured data file path")
	}

	db := &Database{config: cfg}

	log.Printf("INFO: Initializing data store with file: %s", cfg.DataFilePath)
	store := db.Load()
	log.Printf("INFO: Data store ready. Profiles: %d, Companies: %d",
		len(store.Profiles), len(store.Companies))

	return db, nil
}

// Load reads and normalizes the data file into a canonical Store.
// It never fails the caller: a missing file, unreadable file, or corrupt
// JSON all degrade to an empty store (logged, not returned as an error).
func (db *Database) Load() *models.Store {
	fileData, err := os.ReadFile(db.config.DataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: Data file '%s' not found. Starting with an empty store.", db.config.DataFilePath)
		} else {
			log.Printf("ERROR: Failed to read data file '%s': %v. Proceeding with an empty store.", db.config.DataFilePath, err)
		}
		return models.EmptyStore()
	}

	// NormalizeStore tolerates every legacy schema and any corruption,
	// falling back to the closest valid partial reconstruction.
	return NormalizeStore(fileData)
}

// persist writes the full store to the data file. The write is atomic from
// a reader's point of view: marshal, write to a temp file, optionally keep
// a .bak copy of the previous file, then rename into place.
func (db *Database) persist(store *models.Store) error {
	jsonData, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		log.Printf("ERROR: Failed to marshal store to JSON: %v", err)
		return err
	}

	tempFilePath := db.config.DataFilePath + ".tmp"
	backupFilePath := db.config.DataFilePath + ".bak"

	// Write to temporary file first
	err = os.WriteFile(tempFilePath, jsonData, 0644)
	if err != nil {
		log.Printf("ERROR: Failed to write temporary data file '%s': %v", tempFilePath, err)
		return err
	}

	// Handle backup if enabled
	if db.config.EnableBackup {
		if _, err := os.Stat(db.config.DataFilePath); err == nil {
			// Original file exists, attempt rename to .bak
			if err := os.Rename(db.config.DataFilePath, backupFilePath); err != nil {
				log.Printf("WARN: Failed to rename '%s' to '%s' for backup: %v. Proceeding with save.", db.config.DataFilePath, backupFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: Error checking status of data file '%s' before backup: %v", db.config.DataFilePath, err)
		}
	}

	// Atomically rename temporary file to the final destination
	err = os.Rename(tempFilePath, db.config.DataFilePath)
	if err != nil {
		log.Printf("ERROR: Failed to rename temporary file '%s' to '%s': %v", tempFilePath, db.config.DataFilePath, err)
		_ = os.Remove(tempFilePath)
		return err
	}

	log.Printf("INFO: Saved data store to %s", db.config.DataFilePath)
	return nil
}
