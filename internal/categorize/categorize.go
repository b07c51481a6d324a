package categorize

import (
	"fmt"
	"regexp"

	"github.com/example/expense-tracker/internal/config"
)

type rule struct {
	pattern  *regexp.Regexp
	category string
}

// Categorizer picks a category for a description from an ordered rule list
type Categorizer struct {
	rules    []rule
	fallback string
}

// New compiles the rules. The first matching rule wins; fallback is used when
// none match.
func New(rules []config.CategoryRule, fallback string) (*Categorizer, error) {
	c := &Categorizer{fallback: fallback}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid category rule %d (%s): %w", i, r.Category, err)
		}
		c.rules = append(c.rules, rule{pattern: re, category: r.Category})
	}
	return c, nil
}

// Categorize returns the category for description
func (c *Categorizer) Categorize(description string) string {
	for _, r := range c.rules {
		if r.pattern.MatchString(description) {
			return r.category
		}
	}
	return c.fallback
}
