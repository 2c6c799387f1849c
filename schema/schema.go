// Package schema has configs, models and profile tables for all parts of plotsense.
package schema

import "time"

// Row is a single record of column name to raw value. Values may be
// strings, numbers, booleans or nil; missing keys count as missing values.
type Row map[string]any

// ValueCount is one entry of a categorical distribution.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NumericStats holds descriptive statistics for a numeric field.
// StdDev is the population standard deviation and the quartiles use the
// nearest-rank method (index = floor(n*q)); both choices are kept for
// output compatibility with existing consumers.
type NumericStats struct {
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Mean      float64    `json:"mean"`
	Median    float64    `json:"median"`
	StdDev    float64    `json:"stdDev"`
	Quartiles [3]float64 `json:"quartiles"` // Q1, median, Q3
}

// DatetimeStats holds the resolved time range of a datetime field.
type DatetimeStats struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// DistributionStats holds value frequencies for categorical, text and
// boolean fields. Distribution is sorted by count descending and capped
// at 20 entries.
type DistributionStats struct {
	Distribution []ValueCount `json:"distribution"`
	Mode         string       `json:"mode"`
}

// FieldStatistics is discriminated by the owning field's DataType:
// exactly one of the typed sections is populated.
type FieldStatistics struct {
	Count       int                `json:"count"`     // non-missing values
	NullCount   int                `json:"nullCount"` // Count + NullCount = total rows
	UniqueCount int                `json:"uniqueCount"`
	Numeric     *NumericStats      `json:"numeric,omitempty"`
	Datetime    *DatetimeStats     `json:"datetime,omitempty"`
	Categorical *DistributionStats `json:"categorical,omitempty"`
}

// FieldSchema describes one inferred column. Instances are created fresh
// on every inference call and never mutated afterwards.
type FieldSchema struct {
	Name       string          `json:"name"`
	DataType   DataType        `json:"dataType"`
	Nullable   bool            `json:"nullable"`
	Unique     bool            `json:"unique"`
	Examples   []string        `json:"examples"` // up to 5 sample values
	Statistics FieldStatistics `json:"statistics"`
}

// DataSchema is the inferred shape of a whole dataset. Field order
// follows input column order.
type DataSchema struct {
	Fields      []FieldSchema `json:"fields"`
	RowCount    int           `json:"rowCount"`
	ColumnCount int           `json:"columnCount"`
}

// FieldsOfType returns the fields whose inferred type matches t,
// preserving column order.
func (s *DataSchema) FieldsOfType(t DataType) []FieldSchema {
	var out []FieldSchema
	for _, f := range s.Fields {
		if f.DataType == t {
			out = append(out, f)
		}
	}
	return out
}

// HasType reports whether at least one field has the given type.
func (s *DataSchema) HasType(t DataType) bool {
	for _, f := range s.Fields {
		if f.DataType == t {
			return true
		}
	}
	return false
}

// Field returns the field with the given name, if present.
func (s *DataSchema) Field(name string) (FieldSchema, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}
