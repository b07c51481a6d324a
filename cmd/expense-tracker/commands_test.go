package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/expense-tracker/internal/storage"
	"github.com/example/expense-tracker/pkg/expense"
)

// execute runs a fresh root command against dataFile and returns its stdout
func execute(t *testing.T, dataFile string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-file", dataFile, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func loadFile(t *testing.T, dataFile string) *expense.Store {
	t.Helper()
	store, _, err := storage.NewRepository(dataFile, zerolog.Nop()).Load()
	require.NoError(t, err)
	return store
}

func newDataFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "expenses.json")
}

func TestRoot_PrintsVersion(t *testing.T) {
	out, err := execute(t, newDataFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Expense Tracker v"+version)
}

func TestList_SeedsSampleDataWhenMissing(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "=== All Expenses ===")
	assert.Contains(t, out, "McDonalds")
	assert.Contains(t, out, "15/01/2026")

	assert.Equal(t, 7, loadFile(t, dataFile).Count())
}

func TestList_NoSeed(t *testing.T) {
	t.Setenv("EXPENSE_SEED_SAMPLE_DATA", "false")
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded yet.")

	_, statErr := os.Stat(dataFile)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "nothing to save yet")
}

func TestAdd_UsesCategoryRules(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
seed_sample_data = false
default_category = "Misc"

[[categories]]
pattern = "(?i)uber"
category = "Transport"
`), 0644))
	dataFile := filepath.Join(dir, "expenses.json")

	_, err := execute(t, dataFile, "--config", configPath, "add", "--date", "2026-02-01", "--amount", "12.5", "--description", "Uber home")
	require.NoError(t, err)
	_, err = execute(t, dataFile, "--config", configPath, "add", "--date", "02/02/2026", "--amount", "3", "--description", "Stamps")
	require.NoError(t, err)
	out, err := execute(t, dataFile, "--config", configPath, "add", "--date", "03/02/2026", "--amount", "4", "--category", "Food", "--description", "Uber Eats")
	require.NoError(t, err)
	assert.Contains(t, out, "Expense added (Food, 4.00)")

	store := loadFile(t, dataFile)
	require.Equal(t, 3, store.Count())
	assert.Equal(t, expense.New(expense.NewDate(1, 2, 2026), 12.5, "Transport", "Uber home"), store.All()[0])
	assert.Equal(t, "Misc", store.All()[1].Category())
	assert.Equal(t, "Food", store.All()[2].Category(), "explicit category wins over rules")
}

func TestAdd_RequiresAmount(t *testing.T) {
	_, err := execute(t, newDataFile(t), "add", "--description", "no amount")
	assert.Error(t, err)
}

func TestAdd_InvalidDate(t *testing.T) {
	dataFile := newDataFile(t)
	_, err := execute(t, dataFile, "add", "--date", "soon", "--amount", "1")
	require.Error(t, err)
	assert.Equal(t, 7, loadFile(t, dataFile).Count())
}

func TestFilterDate(t *testing.T) {
	out, err := execute(t, newDataFile(t), "filter", "date", "--from", "17/01/2026", "--to", "2026-01-18")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Expenses from 17/01/2026 to 18/01/2026 ===")
	assert.Contains(t, out, "Shoes")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "McDonalds")
	assert.Contains(t, out, "Total: $155.75")
}

func TestFilterDate_Reversed(t *testing.T) {
	out, err := execute(t, newDataFile(t), "filter", "date", "--from", "31/01/2026", "--to", "01/01/2026")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses found matching the criteria.")
	assert.Contains(t, out, "Total: $0.00")
}

func TestFilterCategory(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "filter", "category", "Food")
	require.NoError(t, err)
	assert.Contains(t, out, "McDonalds")
	assert.Contains(t, out, "Vanilla Latte")
	assert.NotContains(t, out, "Shoes")
	assert.Contains(t, out, "Total: $100.75")

	out, err = execute(t, dataFile, "filter", "category", "food")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses found matching the criteria.")
}

func TestSearch(t *testing.T) {
	dataFile := newDataFile(t)

	upper, err := execute(t, dataFile, "search", "LATTE")
	require.NoError(t, err)
	lower, err := execute(t, dataFile, "search", "latte")
	require.NoError(t, err)

	assert.Contains(t, upper, "Vanilla Latte")
	assert.Equal(t, strings.ReplaceAll(upper, "LATTE", "latte"), lower)
}

func TestSummary(t *testing.T) {
	out, err := execute(t, newDataFile(t), "summary")
	require.NoError(t, err)

	food := strings.Index(out, "Food")
	shopping := strings.Index(out, "Shopping")
	transport := strings.Index(out, "Transport")
	require.True(t, food > 0 && shopping > 0 && transport > 0, out)
	assert.True(t, food < shopping && shopping < transport, "categories sorted")

	assert.Contains(t, out, "$100.75")
	assert.Contains(t, out, "$320.00")
	assert.Contains(t, out, "$70.50")
	assert.Contains(t, out, "$491.25")
}

func TestSummary_Range(t *testing.T) {
	out, err := execute(t, newDataFile(t), "summary", "--from", "20/01/2026", "--to", "21/01/2026")
	require.NoError(t, err)

	assert.Contains(t, out, "$15.00")
	assert.Contains(t, out, "$45.00")
	assert.Contains(t, out, "$60.00")
	assert.NotContains(t, out, "Shopping")
}

func TestSummary_RangeNeedsBothEnds(t *testing.T) {
	_, err := execute(t, newDataFile(t), "summary", "--from", "20/01/2026")
	assert.Error(t, err)
}

func TestTotal(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "total")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $491.25")
	assert.Contains(t, out, "Number of expenses: 7")

	out, err = execute(t, dataFile, "total", "--from", "15/01/2026", "--to", "16/01/2026")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $75.50")
	assert.Contains(t, out, "Number of expenses: 2")
}

func TestShow(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Shoes")

	_, err = execute(t, dataFile, "show", "99")
	assert.ErrorIs(t, err, errNotFound)

	_, err = execute(t, dataFile, "show", "two")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delta Airlines")

	store := loadFile(t, dataFile)
	require.Equal(t, 6, store.Count())
	e, _ := store.At(1)
	assert.Equal(t, "Shoes", e.Description(), "later expenses shift down")

	_, err = execute(t, dataFile, "delete", "99")
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, store.All(), loadFile(t, dataFile).All())
}

func TestSeed(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "seed", "--fake", "5", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 5 expenses, 12 in total")
	assert.Equal(t, 12, loadFile(t, dataFile).Count())

	out, err = execute(t, dataFile, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 7 expenses, 19 in total")

	_, err = execute(t, dataFile, "seed", "--fake", "-1")
	assert.Error(t, err)
}

func TestLoad_SkipsMalformedEntries(t *testing.T) {
	dataFile := newDataFile(t)
	require.NoError(t, os.WriteFile(dataFile, []byte(`{"expenses": [
		{"date": {"day": 1, "month": 3, "year": 2026}, "amount": 9.99, "category": "Books", "description": "Paperback"},
		{"date": {"day": 2, "month": 3, "year": 2026}, "amount": "lots", "category": "Books", "description": "Broken"}
	]}`), 0644))

	out, err := execute(t, dataFile, "total")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $9.99")
	assert.Contains(t, out, "Number of expenses: 1")
}

func TestLoad_InvalidDocument(t *testing.T) {
	dataFile := newDataFile(t)
	require.NoError(t, os.WriteFile(dataFile, []byte(`{"expenses": [`), 0644))

	_, err := execute(t, dataFile, "list")
	require.Error(t, err)

	var perr *expense.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "seed --replace")

	data, readErr := os.ReadFile(dataFile)
	require.NoError(t, readErr)
	assert.Equal(t, `{"expenses": [`, string(data), "a corrupt file is never overwritten")
}

func TestSeedReplace_RecoversUnreadableFile(t *testing.T) {
	dataFile := newDataFile(t)
	require.NoError(t, os.WriteFile(dataFile, []byte(`{"expenses": [`), 0644))

	out, err := execute(t, dataFile, "seed", "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 7 expenses, 7 in total")

	store := loadFile(t, dataFile)
	assert.Equal(t, 7, store.Count())

	out, err = execute(t, dataFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "McDonalds")
}

func TestSeedReplace_DiscardsExisting(t *testing.T) {
	dataFile := newDataFile(t)

	out, err := execute(t, dataFile, "seed", "--replace", "--fake", "3", "--seed", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 3 expenses, 3 in total")
	assert.Equal(t, 3, loadFile(t, dataFile).Count())
}
