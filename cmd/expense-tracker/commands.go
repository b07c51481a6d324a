package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/expense-tracker/internal/sample"
	"github.com/example/expense-tracker/pkg/expense"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		date        string
		amount      float64
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			d := today()
			if date != "" {
				var err error
				if d, err = expense.ParseDate(date); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("category") {
				category = a.categorizer.Categorize(description)
			}

			a.store.Add(d, amount, category, description)
			if err := a.save(); err != nil {
				return fmt.Errorf("expense added but failed to save to file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expense added (%s, %s) and saved to %s\n", category, money(amount), a.repo.Path())
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "expense date, DD/MM/YYYY or YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in currency units")
	cmd.Flags().StringVar(&category, "category", "", "category (default from category rules)")
	cmd.Flags().StringVar(&description, "description", "", "free text description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "View all expenses",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if a.store.Count() == 0 {
				fmt.Fprintln(w, "No expenses recorded yet.")
				return nil
			}
			fmt.Fprintln(w, "=== All Expenses ===")
			renderIndexed(w, a.store.All())
			return nil
		}),
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show INDEX",
		Short: "View the expense at a position",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			e, ok := a.store.At(index)
			if !ok {
				return errNoExpense(index, a.store.Count())
			}
			renderExpenses(cmd.OutOrStdout(), []expense.Expense{e})
			return nil
		}),
	}
}

func newFilterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter expenses by date range or category",
	}

	var from, to string
	byDate := &cobra.Command{
		Use:   "date",
		Short: "Expenses within an inclusive date range",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "=== Expenses from %s to %s ===\n", start, end)
			renderExpenses(w, a.store.FilterByDateRange(start, end))
			fmt.Fprintf(w, "Total: $%s\n", money(a.store.TotalBetween(start, end)))
			return nil
		}),
	}
	byDate.Flags().StringVar(&from, "from", "", "start date (inclusive)")
	byDate.Flags().StringVar(&to, "to", "", "end date (inclusive)")
	_ = byDate.MarkFlagRequired("from")
	_ = byDate.MarkFlagRequired("to")

	byCategory := &cobra.Command{
		Use:   "category NAME",
		Short: "Expenses in a category (exact, case sensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			filtered := a.store.FilterByCategory(args[0])
			fmt.Fprintf(w, "=== Expenses in category: %s ===\n", args[0])
			renderExpenses(w, filtered)
			fmt.Fprintf(w, "Total: $%s\n", money(expense.NewStore(filtered...).Total()))
			return nil
		}),
	}

	cmd.AddCommand(byDate, byCategory)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Search descriptions, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "=== Search results for: %s ===\n", args[0])
			renderExpenses(w, a.store.SearchByDescription(args[0]))
			return nil
		}),
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals per category",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if from == "" && to == "" {
				fmt.Fprintln(w, "=== Summary by Category ===")
				renderSummary(w, a.store.SummaryByCategory(), a.store.Total())
				return nil
			}

			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "=== Summary by Category from %s to %s ===\n", start, end)
			renderSummary(w, a.store.SummaryByCategoryBetween(start, end), a.store.TotalBetween(start, end))
			return nil
		}),
	}
	cmd.Flags().StringVar(&from, "from", "", "start date (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date (inclusive)")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func newTotalCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Total of all expenses",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "=== Total Expenses ===")
			if from == "" && to == "" {
				fmt.Fprintf(w, "Total: $%s\n", money(a.store.Total()))
				fmt.Fprintf(w, "Number of expenses: %d\n", a.store.Count())
				return nil
			}

			start, end, err := parseRange(from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Total: $%s\n", money(a.store.TotalBetween(start, end)))
			fmt.Fprintf(w, "Number of expenses: %d\n", len(a.store.FilterByDateRange(start, end)))
			return nil
		}),
	}
	cmd.Flags().StringVar(&from, "from", "", "start date (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date (inclusive)")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the expense at a position",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			e, _ := a.store.At(index)
			if !a.store.Delete(index) {
				return errNoExpense(index, a.store.Count())
			}
			if err := a.save(); err != nil {
				return fmt.Errorf("expense deleted but failed to save to file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %d: %s %s %s\n", index, e.Date(), money(e.Amount()), e.Description())
			return nil
		}),
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		fake int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Append sample expenses",
		Long: `Append the built-in sample expenses, or --fake N randomly generated ones.
A --seed other than zero makes the random expenses reproducible.
With --replace the existing expenses are discarded first, even when the data
file cannot be parsed.`,
		Args: cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			if fake < 0 {
				return fmt.Errorf("--fake must not be negative, got %d", fake)
			}
			records := sample.Expenses()
			if fake > 0 {
				records = sample.Fake(fake, seed)
			}
			if a.discardUnreadable {
				a.store.Replace(records)
			} else {
				for _, e := range records {
					a.store.Append(e)
				}
			}
			if err := a.save(); err != nil {
				return fmt.Errorf("expenses added but failed to save to file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d expenses, %d in total\n", len(records), a.store.Count())
			return nil
		}),
	}
	cmd.Flags().IntVar(&fake, "fake", 0, "number of random expenses to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for --fake (0 picks one)")
	cmd.Flags().BoolVar(&a.discardUnreadable, "replace", false, "discard existing expenses instead of appending")

	return cmd
}

func today() expense.Date {
	now := time.Now()
	return expense.NewDate(now.Day(), int(now.Month()), now.Year())
}

func parseRange(from, to string) (expense.Date, expense.Date, error) {
	start, err := expense.ParseDate(from)
	if err != nil {
		return expense.Date{}, expense.Date{}, fmt.Errorf("--from: %w", err)
	}
	end, err := expense.ParseDate(to)
	if err != nil {
		return expense.Date{}, expense.Date{}, fmt.Errorf("--to: %w", err)
	}
	return start, end, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return index, nil
}

var errNotFound = errors.New("expense not found")

func errNoExpense(index, count int) error {
	return fmt.Errorf("%w: no expense at index %d (have %d)", errNotFound, index, count)
}
