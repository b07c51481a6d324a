package expense

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// ErrMissingField is wrapped by ParseError when a required field is absent or null.
var ErrMissingField = errors.New("missing field")

// ParseError reports a persisted record or document that could not be decoded.
type ParseError struct {
	Field string // dotted path of the offending field, empty for the value itself
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error at %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Expense is a single recorded transaction. It is immutable once built.
type Expense struct {
	date        Date
	amount      float64
	category    string
	description string
}

// New builds an Expense. Neither the amount nor the strings are validated.
func New(date Date, amount float64, category, description string) Expense {
	return Expense{
		date:        date,
		amount:      amount,
		category:    category,
		description: description,
	}
}

// Date returns the day the expense was recorded for
func (e Expense) Date() Date { return e.date }

// Amount returns the amount in currency units
func (e Expense) Amount() float64 { return e.amount }

// Category returns the category the expense is filed under
func (e Expense) Category() string { return e.category }

// Description returns the free text description
func (e Expense) Description() string { return e.description }

type wireExpense struct {
	Date        Date    `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// MarshalJSON encodes the expense with a nested date object
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireExpense{
		Date:        e.date,
		Amount:      e.amount,
		Category:    e.category,
		Description: e.description,
	})
}

// UnmarshalJSON decodes an expense, returning a *ParseError that names the
// first field that is missing or holds the wrong type.
func (e *Expense) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "")
	if err != nil {
		return err
	}

	var rawDate json.RawMessage
	if err := decodeField(obj, "date", "date", &rawDate); err != nil {
		return err
	}
	dateFields, err := decodeObject(rawDate, "date")
	if err != nil {
		return err
	}

	var (
		out              Expense
		day, month, year int
	)
	if day, err = decodeInt(dateFields, "day", "date.day"); err != nil {
		return err
	}
	if month, err = decodeInt(dateFields, "month", "date.month"); err != nil {
		return err
	}
	if year, err = decodeInt(dateFields, "year", "date.year"); err != nil {
		return err
	}
	out.date = NewDate(day, month, year)

	if err := decodeField(obj, "amount", "amount", &out.amount); err != nil {
		return err
	}
	if err := decodeField(obj, "category", "category", &out.category); err != nil {
		return err
	}
	if err := decodeField(obj, "description", "description", &out.description); err != nil {
		return err
	}

	*e = out
	return nil
}

func decodeObject(data []byte, name string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &ParseError{Field: name, Err: err}
	}
	if obj == nil {
		return nil, &ParseError{Field: name, Err: errors.New("expected an object")}
	}
	return obj, nil
}

func decodeField(obj map[string]json.RawMessage, key, name string, dst any) error {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return &ParseError{Field: name, Err: ErrMissingField}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &ParseError{Field: name, Err: err}
	}
	return nil
}

// decodeInt accepts any JSON number in the int32 range, so 15.0 and 1e1 read
// as whole days. Fractions are truncated toward zero.
func decodeInt(obj map[string]json.RawMessage, key, name string) (int, error) {
	var f float64
	if err := decodeField(obj, key, name, &f); err != nil {
		return 0, err
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &ParseError{Field: name, Err: fmt.Errorf("%v is out of range", f)}
	}
	return int(math.Trunc(f)), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
