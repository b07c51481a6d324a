package expense

import (
	"slices"
	"strings"
)

// Store holds expenses in insertion order, indexed from zero.
// It performs no locking; callers serialize access themselves.
type Store struct {
	expenses []Expense
}

// Summary maps a category to the sum of its amounts
type Summary map[string]float64

// NewStore returns a store holding the given expenses in order
func NewStore(expenses ...Expense) *Store {
	return &Store{expenses: slices.Clone(expenses)}
}

// Add appends a new expense built from its parts
func (s *Store) Add(date Date, amount float64, category, description string) {
	s.Append(New(date, amount, category, description))
}

// Append appends an expense to the end of the store
func (s *Store) Append(e Expense) {
	s.expenses = append(s.expenses, e)
}

// Count returns the number of expenses held
func (s *Store) Count() int {
	return len(s.expenses)
}

// At returns the expense at index, or false when the index is out of range.
func (s *Store) At(index int) (Expense, bool) {
	if index < 0 || index >= len(s.expenses) {
		return Expense{}, false
	}
	return s.expenses[index], true
}

// All returns a copy of every expense in insertion order
func (s *Store) All() []Expense {
	return slices.Clone(s.expenses)
}

// Replace discards the current contents and stores expenses instead.
func (s *Store) Replace(expenses []Expense) {
	s.expenses = slices.Clone(expenses)
}

// Delete removes the expense at index and shifts later ones down by one.
// It returns false, leaving the store untouched, when index is out of range.
func (s *Store) Delete(index int) bool {
	if index < 0 || index >= len(s.expenses) {
		return false
	}
	s.expenses = slices.Delete(s.expenses, index, index+1)
	return true
}

// FilterByDateRange returns the expenses dated within [start, end].
// The result is empty when start is after end.
func (s *Store) FilterByDateRange(start, end Date) []Expense {
	return s.filter(func(e Expense) bool {
		return e.date.InRange(start, end)
	})
}

// FilterByCategory returns the expenses whose category matches exactly
func (s *Store) FilterByCategory(category string) []Expense {
	return s.filter(func(e Expense) bool {
		return e.category == category
	})
}

// SearchByDescription returns the expenses whose description contains
// keyword, ignoring case. An empty keyword matches everything.
func (s *Store) SearchByDescription(keyword string) []Expense {
	needle := strings.ToLower(keyword)
	return s.filter(func(e Expense) bool {
		return strings.Contains(strings.ToLower(e.description), needle)
	})
}

// SummaryByCategory totals amounts per category over the whole store
func (s *Store) SummaryByCategory() Summary {
	return s.summarize(func(Expense) bool { return true })
}

// SummaryByCategoryBetween totals amounts per category for expenses dated
// within [start, end].
func (s *Store) SummaryByCategoryBetween(start, end Date) Summary {
	return s.summarize(func(e Expense) bool {
		return e.date.InRange(start, end)
	})
}

// Total sums every amount in the store
func (s *Store) Total() float64 {
	var total float64
	for _, e := range s.expenses {
		total += e.amount
	}
	return total
}

// TotalBetween sums the amounts of expenses dated within [start, end]
func (s *Store) TotalBetween(start, end Date) float64 {
	var total float64
	for _, e := range s.expenses {
		if e.date.InRange(start, end) {
			total += e.amount
		}
	}
	return total
}

func (s *Store) filter(keep func(Expense) bool) []Expense {
	var filtered []Expense
	for _, e := range s.expenses {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func (s *Store) summarize(keep func(Expense) bool) Summary {
	summary := Summary{}
	for _, e := range s.expenses {
		if keep(e) {
			summary[e.category] += e.amount
		}
	}
	return summary
}

// Categories returns the summary's categories in ascending order
func (s Summary) Categories() []string {
	categories := make([]string, 0, len(s))
	for c := range s {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	return categories
}

// Total sums every category total
func (s Summary) Total() float64 {
	var total float64
	for _, c := range s.Categories() {
		total += s[c]
	}
	return total
}
