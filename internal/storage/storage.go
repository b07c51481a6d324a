package storage

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/example/expense-tracker/pkg/expense"
)

// Document is the persisted file layout
type Document struct {
	Expenses []expense.Expense `json:"expenses"`
}

// SkippedEntry records an element of the expenses array that failed to decode
type SkippedEntry struct {
	Index int
	Err   error
}

// Report describes the outcome of a successful load
type Report struct {
	Loaded  int
	Skipped []SkippedEntry
}

// Repository reads and writes a store as a JSON document on disk.
type Repository struct {
	path   string
	logger zerolog.Logger
}

// NewRepository returns a repository backed by the file at path
func NewRepository(path string, logger zerolog.Logger) *Repository {
	return &Repository{
		path:   path,
		logger: logger.With().Str("path", path).Logger(),
	}
}

// Path returns the backing file path
func (r *Repository) Path() string {
	return r.path
}

// Save writes every expense in the store, in order, to the backing file.
func (r *Repository) Save(store *expense.Store) error {
	doc := Document{Expenses: store.All()}
	if doc.Expenses == nil {
		doc.Expenses = []expense.Expense{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	r.logger.Debug().Int("count", len(doc.Expenses)).Msg("saved expenses")
	return nil
}

// Load reads the backing file into a new store.
func (r *Repository) Load() (*expense.Store, Report, error) {
	store := expense.NewStore()
	report, err := r.LoadInto(store)
	if err != nil {
		return nil, Report{}, err
	}
	return store, report, nil
}

// LoadInto replaces the contents of store with the expenses in the backing
// file. Entries that fail to decode are skipped and listed in the report.
// On error the store is left untouched.
func (r *Repository) LoadInto(store *expense.Store) (Report, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read data file: %w", err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse data file: %w", err)
	}

	var (
		report   Report
		expenses = make([]expense.Expense, 0, len(entries))
	)
	for i, raw := range entries {
		var e expense.Expense
		if err := json.Unmarshal(raw, &e); err != nil {
			r.logger.Warn().Err(err).Int("index", i).Msg("skipping malformed expense entry")
			report.Skipped = append(report.Skipped, SkippedEntry{Index: i, Err: err})
			continue
		}
		expenses = append(expenses, e)
	}

	store.Replace(expenses)
	report.Loaded = len(expenses)
	r.logger.Debug().Int("count", report.Loaded).Int("skipped", len(report.Skipped)).Msg("loaded expenses")
	return report, nil
}

// decodeEntries returns the raw elements of the top level expenses array.
// A valid document without such an array holds no entries.
func decodeEntries(data []byte) ([]json.RawMessage, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &expense.ParseError{Field: "document", Err: err}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil
	}

	raw, ok := root["expenses"]
	if !ok {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}
