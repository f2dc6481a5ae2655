// internal/catalog/catalog.go

// Package catalog holds the studio's fixed booking tables: procedure
// categories, the periods of the day and the weekdays a client can pick.
// The tables are loaded once and never mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ComingSoonMarker tags procedure labels that can be shown but not booked.
const ComingSoonMarker = "(em breve)"

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	ErrNoCategories = errors.New("catalog has no categories")
	ErrNoPeriods    = errors.New("catalog has no periods")
	ErrNoWeekDays   = errors.New("catalog has no week days")
)

type Procedure struct {
	Name       string `yaml:"name"`
	ComingSoon bool   `yaml:"coming_soon"`
}

// Available reports whether the procedure can be selected.
func (p Procedure) Available() bool {
	return !p.ComingSoon && !strings.Contains(p.Name, ComingSoonMarker)
}

type Category struct {
	Name       string      `yaml:"name"`
	ComingSoon bool        `yaml:"coming_soon"`
	Procedures []Procedure `yaml:"procedures"`
}

type Catalog struct {
	Categories []Category `yaml:"categories"`
	Periods    []string   `yaml:"periods"`
	WeekDays   []string   `yaml:"week_days"`

	categoryByProcedure map[string]string
	procedureByName     map[string]Procedure
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the embedded studio catalog. It panics if the embedded
// file is invalid, which can only happen at build time.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		cat, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}
	if err := cat.index(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) index() error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	if len(c.Periods) == 0 {
		return ErrNoPeriods
	}
	if len(c.WeekDays) == 0 {
		return ErrNoWeekDays
	}

	c.categoryByProcedure = make(map[string]string)
	c.procedureByName = make(map[string]Procedure)
	seenCategories := make(map[string]struct{}, len(c.Categories))
	for _, category := range c.Categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return fmt.Errorf("category name is required")
		}
		if _, ok := seenCategories[name]; ok {
			return fmt.Errorf("duplicate category %q", name)
		}
		seenCategories[name] = struct{}{}
		if len(category.Procedures) == 0 {
			return fmt.Errorf("category %q has no procedures", name)
		}
		for _, procedure := range category.Procedures {
			if strings.TrimSpace(procedure.Name) == "" {
				return fmt.Errorf("category %q has a procedure without a name", name)
			}
			if _, ok := c.procedureByName[procedure.Name]; ok {
				return fmt.Errorf("duplicate procedure %q", procedure.Name)
			}
			c.procedureByName[procedure.Name] = procedure
			c.categoryByProcedure[procedure.Name] = category.Name
		}
	}
	if err := checkUnique("period", c.Periods); err != nil {
		return err
	}
	return checkUnique("week day", c.WeekDays)
}

func checkUnique(kind string, values []string) error {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("empty %s", kind)
		}
		if _, ok := seen[value]; ok {
			return fmt.Errorf("duplicate %s %q", kind, value)
		}
		seen[value] = struct{}{}
	}
	return nil
}

// CategoryNames returns category labels in display order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, category := range c.Categories {
		names[i] = category.Name
	}
	return names
}

func (c *Catalog) Category(name string) (Category, bool) {
	for _, category := range c.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return Category{}, false
}

func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.Category(name)
	return ok
}

// ProcedureNames returns the names owned by category, or nil if unknown.
func (c *Catalog) ProcedureNames(category string) []string {
	cat, ok := c.Category(category)
	if !ok {
		return nil
	}
	names := make([]string, len(cat.Procedures))
	for i, procedure := range cat.Procedures {
		names[i] = procedure.Name
	}
	return names
}

func (c *Catalog) CategoryOf(procedure string) (string, bool) {
	category, ok := c.categoryByProcedure[procedure]
	return category, ok
}

func (c *Catalog) Procedure(name string) (Procedure, bool) {
	procedure, ok := c.procedureByName[name]
	return procedure, ok
}

// IsComingSoon reports whether a procedure label can never be selected.
// Labels carrying the marker count even when they are not in the catalog.
func (c *Catalog) IsComingSoon(name string) bool {
	if strings.Contains(name, ComingSoonMarker) {
		return true
	}
	procedure, ok := c.procedureByName[name]
	return ok && !procedure.Available()
}

func (c *Catalog) HasPeriod(period string) bool {
	return slices.Contains(c.Periods, period)
}

func (c *Catalog) HasWeekDay(day string) bool {
	return slices.Contains(c.WeekDays, day)
}
