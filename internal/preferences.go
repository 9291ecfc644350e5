package internal

import (
	"database/sql"
	"fmt"
	"path/filepath"
)

const (
	// LanguagePreferenceKey is the single persisted client setting
	LanguagePreferenceKey = "site_language"

	preferencesFile = "preferences.db"
)

// PreferenceStore persists the UI language between runs
type PreferenceStore struct {
	db *sql.DB
}

// OpenPreferenceStore opens <dataDir>/preferences.db
func OpenPreferenceStore(dataDir string) (*PreferenceStore, error) {
	db, err := OpenDatabase(filepath.Join(dataDir, preferencesFile))
	if err != nil {
		return nil, err
	}
	return NewPreferenceStore(db), nil
}

// NewPreferenceStore wraps an already opened database
func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// LoadLanguage reads the stored language. Missing or unrecognized values
// yield DefaultLanguage.
func (p *PreferenceStore) LoadLanguage() (Language, error) {
	value, ok, err := GetPreference(p.db, LanguagePreferenceKey)
	if err != nil {
		return DefaultLanguage, fmt.Errorf("failed to load language: %w", err)
	}
	if !ok {
		return DefaultLanguage, nil
	}
	lang, err := ParseLanguage(value)
	if err != nil {
		LogWarn("ignoring stored language %q", value)
		return DefaultLanguage, nil
	}
	return lang, nil
}

// SaveLanguage writes the language; only "id" and "en" are accepted
func (p *PreferenceStore) SaveLanguage(lang Language) error {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return err
	}
	if err := SetPreference(p.db, LanguagePreferenceKey, string(lang)); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	return nil
}

// Close releases the database
func (p *PreferenceStore) Close() error {
	return p.db.Close()
}
