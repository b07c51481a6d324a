package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/example/expense-tracker/pkg/expense"
)

// money formats an amount with two decimal places
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func renderExpenses(w io.Writer, expenses []expense.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses found matching the criteria.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tAmount\tCategory\tDescription")
	fmt.Fprintln(tw, "----\t------\t--------\t-----------")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date(), money(e.Amount()), e.Category(), e.Description())
	}
	tw.Flush()
}

// renderIndexed prints expenses with their store position, the INDEX taken by show and delete
func renderIndexed(w io.Writer, expenses []expense.Expense) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDate\tAmount\tCategory\tDescription")
	for i, e := range expenses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, e.Date(), money(e.Amount()), e.Category(), e.Description())
	}
	tw.Flush()
}

func renderSummary(w io.Writer, summary expense.Summary, total float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Category\tTotal")
	for _, c := range summary.Categories() {
		fmt.Fprintf(tw, "%s\t$%s\n", c, money(summary[c]))
	}
	fmt.Fprintf(tw, "Overall Total\t$%s\n", money(total))
	tw.Flush()
}
