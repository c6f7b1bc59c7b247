// Package encoder turns form values into the numeric feature record the
// attrition classifier was trained on.
package encoder

import (
	"errors"
	"fmt"
)

// Field names a frequency-encoded categorical feature.
type Field string

// Categorical fields.
const (
	BusinessTravel Field = "BusinessTravel"
	Department     Field = "Department"
	EducationField Field = "EducationField"
	JobRole        Field = "JobRole"
	MaritalStatus  Field = "MaritalStatus"
)

// Fields lists every categorical field in a stable order.
var Fields = []Field{BusinessTravel, Department, EducationField, JobRole, MaritalStatus}

// ErrInvalidTable is returned when a frequency table definition is unusable.
var ErrInvalidTable = errors.New("invalid frequency table")

// Category is one entry of a frequency table column.
type Category struct {
	Name      string
	Frequency float64
}

// Table maps (field, category) to the share of that category in the training
// population. A Table is never mutated after construction.
type Table struct {
	freqs      map[Field]map[string]float64
	categories map[Field][]string
	defaults   map[Field]string
}

// NewTable builds a table from ordered categories per field. The first
// category of each field is its default unless overridden in defaults.
func NewTable(columns map[Field][]Category, defaults map[Field]string) (*Table, error) {
	t := &Table{
		freqs:      make(map[Field]map[string]float64, len(Fields)),
		categories: make(map[Field][]string, len(Fields)),
		defaults:   make(map[Field]string, len(Fields)),
	}

	for _, field := range Fields {
		column := columns[field]
		if len(column) == 0 {
			return nil, fmt.Errorf("%w: field %s has no categories", ErrInvalidTable, field)
		}

		freqs := make(map[string]float64, len(column))
		names := make([]string, 0, len(column))
		for _, c := range column {
			if c.Name == "" {
				return nil, fmt.Errorf("%w: field %s has an unnamed category", ErrInvalidTable, field)
			}
			if c.Frequency < 0 || c.Frequency > 1 {
				return nil, fmt.Errorf("%w: %s/%s frequency %v outside [0,1]", ErrInvalidTable, field, c.Name, c.Frequency)
			}
			if _, dup := freqs[c.Name]; dup {
				return nil, fmt.Errorf("%w: %s/%s listed twice", ErrInvalidTable, field, c.Name)
			}
			freqs[c.Name] = c.Frequency
			names = append(names, c.Name)
		}

		def := names[0]
		if d, ok := defaults[field]; ok && d != "" {
			if _, known := freqs[d]; !known {
				return nil, fmt.Errorf("%w: default %q is not a %s category", ErrInvalidTable, d, field)
			}
			def = d
		}

		t.freqs[field] = freqs
		t.categories[field] = names
		t.defaults[field] = def
	}

	return t, nil
}

// DefaultTable returns the frequencies measured on the training population.
func DefaultTable() *Table {
	t, err := NewTable(defaultColumns(), nil)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultColumns() map[Field][]Category {
	return map[Field][]Category{
		BusinessTravel: {
			{"Travel_Rarely", 0.709},
			{"Travel_Frequently", 0.188},
			{"Non-Travel", 0.102},
		},
		Department: {
			{"Research & Development", 0.653},
			{"Sales", 0.303},
			{"Human Resources", 0.042},
		},
		EducationField: {
			{"Life Sciences", 0.412},
			{"Medical", 0.315},
			{"Marketing", 0.108},
			{"Technical Degree", 0.089},
			{"Other", 0.055},
			{"Human Resources", 0.018},
		},
		JobRole: {
			{"Sales Executive", 0.221},
			{"Research Scientist", 0.198},
			{"Laboratory Technician", 0.176},
			{"Manufacturing Director", 0.098},
			{"Healthcare Representative", 0.089},
			{"Manager", 0.069},
			{"Sales Representative", 0.056},
			{"Research Director", 0.054},
			{"Human Resources", 0.035},
		},
		MaritalStatus: {
			{"Married", 0.457},
			{"Single", 0.320},
			{"Divorced", 0.221},
		},
	}
}

// Frequency returns the tabulated frequency of category within field.
func (t *Table) Frequency(field Field, category string) (float64, bool) {
	f, ok := t.freqs[field][category]
	return f, ok
}

// Encode returns the frequency of category, or of the field's default
// category when category is not in the table.
func (t *Table) Encode(field Field, category string) float64 {
	if f, ok := t.Frequency(field, category); ok {
		return f
	}
	return t.freqs[field][t.defaults[field]]
}

// Categories returns the categories of field in display order.
func (t *Table) Categories(field Field) []string {
	return append([]string(nil), t.categories[field]...)
}

// Default returns the default category of field.
func (t *Table) Default(field Field) string {
	return t.defaults[field]
}

// Has reports whether category is a known category of field.
func (t *Table) Has(field Field, category string) bool {
	_, ok := t.Frequency(field, category)
	return ok
}
