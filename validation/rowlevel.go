// Package validation implements the step-aware row-level validation
// layer, the custom-table-validator registry, and the five-layer
// orchestration of the validation substrate (spec §4.3).
package validation

import (
	"fmt"
	"reflect"

	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/schema"
)

// RowBatchSize is the default number of rows validated per batch
// (spec §4.3: "processes rows in batches, ≈10 000 rows").
const RowBatchSize = 10000

// MaxErrorsPerRule caps how many row-level errors are reported for a
// single rule; further violations of that rule are dropped uncounted
// (spec §4.3: "collects up to a bounded number of errors, ≈10").
const MaxErrorsPerRule = 10

// ProgressFunc is invoked after each row batch, letting callers log
// progress on large tables (spec §4.3: "progress is logged on tables
// larger than ~100 000 rows").
type ProgressFunc func(batchStart, batchEnd, totalRows int)

// RowLevelOptions configures one row-level validation pass.
type RowLevelOptions struct {
	Step             string
	BatchSize        int
	MaxErrorsPerRule int
	OnProgress       ProgressFunc
}

// CheckRowLevel validates required fields (for the given step) and
// range constraints for every row of table, processing rows in
// batches and capping the number of reported errors per rule (spec
// §4.3 layer 3).
func CheckRowLevel(table string, rows interface{}, spec *schema.Spec, opts RowLevelOptions) []*canonerrors.CanonError {
	if opts.BatchSize <= 0 {
		opts.BatchSize = RowBatchSize
	}
	if opts.MaxErrorsPerRule <= 0 {
		opts.MaxErrorsPerRule = MaxErrorsPerRule
	}

	v := reflect.ValueOf(rows)
	total := v.Len()

	errCountByRule := make(map[string]int)
	var errs []*canonerrors.CanonError

	emit := func(rule string, build func() *canonerrors.CanonError) {
		if errCountByRule[rule] >= opts.MaxErrorsPerRule {
			return
		}
		errCountByRule[rule]++
		errs = append(errs, build())
	}

	pkField, _ := primaryKey(spec)

	for batchStart := 0; batchStart < total; batchStart += opts.BatchSize {
		batchEnd := batchStart + opts.BatchSize
		if batchEnd > total {
			batchEnd = total
		}

		for i := batchStart; i < batchEnd; i++ {
			row := v.Index(i)
			id := idOf(row, pkField)

			for _, field := range spec.Fields {
				fieldVal := row.FieldByName(field.GoName)
				present := fieldVal.Kind() != reflect.Ptr || !fieldVal.IsNil()

				if !present {
					if field.RequiredIn(opts.Step) {
						rule := fmt.Sprintf("required:%s", field.Column)
						emit(rule, func() *canonerrors.CanonError {
							return canonerrors.NewRequiredFieldError(table, field.Column, id, opts.Step)
						})
					}
					continue
				}

				numeric, ok := asFloat64(fieldVal)
				if !ok {
					continue
				}

				if field.GE != nil && numeric < *field.GE {
					rule := fmt.Sprintf("range:%s", field.Column)
					emit(rule, func() *canonerrors.CanonError {
						return canonerrors.NewRangeError(table, field.Column, numeric, id, fmt.Sprintf("ge=%v", *field.GE))
					})
				}
				if field.LE != nil && numeric > *field.LE {
					rule := fmt.Sprintf("range:%s", field.Column)
					emit(rule, func() *canonerrors.CanonError {
						return canonerrors.NewRangeError(table, field.Column, numeric, id, fmt.Sprintf("le=%v", *field.LE))
					})
				}
			}
		}

		if opts.OnProgress != nil {
			opts.OnProgress(batchStart, batchEnd, total)
		}
	}

	return errs
}

func primaryKey(spec *schema.Spec) (schema.Field, bool) {
	unique := spec.UniqueFields()
	if len(unique) == 0 {
		return schema.Field{}, false
	}
	return unique[0], true
}

func idOf(row reflect.Value, pk schema.Field) int64 {
	field, ok := pk, pk.GoName != ""
	if !ok {
		return 0
	}
	v := row.FieldByName(field.GoName)
	if !v.IsValid() {
		return 0
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Int64 {
		return v.Int()
	}
	return 0
}

// asFloat64 reads a numeric field (dereferencing pointers), returning
// ok=false for non-numeric kinds such as strings or time.Time.
func asFloat64(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
