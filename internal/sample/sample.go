package sample

import (
	"math"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/example/expense-tracker/pkg/expense"
)

// Categories used by both the built-in and the random sample data
var Categories = []string{"Food", "Transport", "Shopping"}

// Expenses returns the records a fresh data file is seeded with
func Expenses() []expense.Expense {
	return []expense.Expense{
		expense.New(expense.NewDate(15, 1, 2026), 50.00, "Food", "McDonalds"),
		expense.New(expense.NewDate(16, 1, 2026), 25.50, "Transport", "Delta Airlines"),
		expense.New(expense.NewDate(17, 1, 2026), 120.00, "Shopping", "Shoes"),
		expense.New(expense.NewDate(18, 1, 2026), 35.75, "Food", "Groceries"),
		expense.New(expense.NewDate(19, 1, 2026), 200.00, "Shopping", "Black Jacket"),
		expense.New(expense.NewDate(20, 1, 2026), 15.00, "Food", "Vanilla Latte"),
		expense.New(expense.NewDate(21, 1, 2026), 45.00, "Transport", "Uber to Centennial"),
	}
}

// Fake generates n random expenses. The same seed yields the same records.
func Fake(n int, seed int64) []expense.Expense {
	faker := gofakeit.New(seed)

	out := make([]expense.Expense, 0, n)
	for i := 0; i < n; i++ {
		date := expense.NewDate(faker.Number(1, 28), faker.Number(1, 12), faker.Number(2024, 2026))
		amount := math.Round(faker.Price(1, 250)*100) / 100
		out = append(out, expense.New(date, amount, faker.RandomString(Categories), faker.Company()))
	}
	return out
}
