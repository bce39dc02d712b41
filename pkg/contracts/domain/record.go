package domain

import (
	"strconv"
	"time"
)

// ValueKind tags the dynamic type carried by a Value.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindString
	KindNumber
	KindDate
)

// Value is a tagged cell value inside an imported record. Missing marks a
// column that existed in the header but had no cell in the row.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Date time.Time
}

// String wraps a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// DateValue wraps a date cell.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// Missing is the absent-cell value.
var Missing = Value{Kind: KindMissing}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// AsNumber returns the numeric interpretation of the value. String values
// that parse as floats count as numeric; everything else does not.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(v.Str, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text renders the value as a display label. Missing renders as "".
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Record is one row of imported tabular or JSON data prior to transformation:
// a mapping from column name to a tagged value, preserving column order.
// No schema is enforced across rows.
type Record struct {
	columns []string
	values  map[string]Value
}

// NewRecord creates a record with the given column order. Values default to
// Missing until set.
func NewRecord(columns ...string) Record {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Record{columns: cols, values: make(map[string]Value, len(columns))}
}

// Set assigns a column value, appending the column if it is new.
func (r *Record) Set(column string, v Value) {
	if _, ok := r.values[column]; !ok {
		found := false
		for _, c := range r.columns {
			if c == column {
				found = true
				break
			}
		}
		if !found {
			r.columns = append(r.columns, column)
		}
	}
	r.values[column] = v
}

// Columns returns the record's column names in order.
func (r Record) Columns() []string {
	cols := make([]string, len(r.columns))
	copy(cols, r.columns)
	return cols
}

// Get returns the value for a column, or Missing if the column is absent.
func (r Record) Get(column string) Value {
	if v, ok := r.values[column]; ok {
		return v
	}
	return Missing
}

// Has reports whether the column carries a non-missing value.
func (r Record) Has(column string) bool {
	v, ok := r.values[column]
	return ok && !v.IsMissing()
}

// Lookup returns the first non-missing value among the candidate keys, in
// order. The precedence is the caller's, not the record's.
func (r Record) Lookup(keys ...string) (Value, bool) {
	for _, k := range keys {
		if v, ok := r.values[k]; ok && !v.IsMissing() {
			return v, true
		}
	}
	return Missing, false
}

// NumberOr returns the first numeric value among the candidate keys, or def
// when no key yields a number.
func (r Record) NumberOr(def float64, keys ...string) float64 {
	if v, ok := r.Lookup(keys...); ok {
		if f, numeric := v.AsNumber(); numeric {
			return f
		}
	}
	return def
}

// LabelOr returns the first present value rendered as text, or def when no
// candidate key is present.
func (r Record) LabelOr(def string, keys ...string) string {
	if v, ok := r.Lookup(keys...); ok {
		return v.Text()
	}
	return def
}
