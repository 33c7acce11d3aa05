package keyregistry

import (
	"fmt"
	"reflect"

	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/schema"
)

// rowValue extracts the Go value of a struct field, dereferencing a
// pointer (returning ok=false for a nil pointer).
func rowValue(row reflect.Value, goName string) (interface{}, bool) {
	field := row.FieldByName(goName)
	if !field.IsValid() {
		return nil, false
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return nil, false
		}
		return field.Elem().Interface(), true
	}
	return field.Interface(), true
}

// rowID extracts an int64 row identifier, assumed to be the table's
// unique primary-key field, for use in error context.
func rowID(row reflect.Value, spec *schema.Spec) int64 {
	unique := spec.UniqueFields()
	if len(unique) == 0 {
		return 0
	}
	v, ok := rowValue(row, unique[0].GoName)
	if !ok {
		return 0
	}
	if id, ok := v.(int64); ok {
		return id
	}
	return 0
}

func sliceOf(rows interface{}) reflect.Value {
	v := reflect.ValueOf(rows)
	return v
}

// CheckUnique validates that every unique-marked field of table holds
// distinct non-null values (spec §4.3 layer 1), registering each seen
// value in reg as a side effect so later foreign-key checks can
// resolve against it.
func CheckUnique(table string, rows interface{}, spec *schema.Spec, reg *Registry) []*canonerrors.CanonError {
	var errs []*canonerrors.CanonError

	v := sliceOf(rows)
	unique := spec.UniqueFields()

	for _, field := range unique {
		for i := 0; i < v.Len(); i++ {
			row := v.Index(i)
			value, ok := rowValue(row, field.GoName)
			if !ok {
				continue
			}

			id := rowID(row, spec)
			if _, duplicate := reg.Register(table, field.Column, value, id); duplicate {
				errs = append(errs, canonerrors.NewUniquenessError(table, field.Column, value, id))
			}
		}
	}

	return errs
}

// CheckForeignKeys validates that every non-null FK value of table is
// a member of its parent's unique-key set (spec §4.3 layer 2). If the
// parent table has not been materialized in reg, the check for that
// field is skipped cleanly.
func CheckForeignKeys(table string, rows interface{}, spec *schema.Spec, reg *Registry) []*canonerrors.CanonError {
	var errs []*canonerrors.CanonError

	v := sliceOf(rows)

	for _, field := range spec.FKFields() {
		if !reg.HasTable(field.FK.Table) {
			continue
		}

		for i := 0; i < v.Len(); i++ {
			row := v.Index(i)
			value, ok := rowValue(row, field.GoName)
			if !ok {
				continue
			}

			if !reg.Contains(field.FK.Table, field.FK.Column, value) {
				id := rowID(row, spec)
				errs = append(errs, canonerrors.NewForeignKeyError(table, field.Column, field.FK.Table, field.FK.Column, value, id))
			}
		}
	}

	return errs
}

// CheckRequiredChildren verifies that every row in parentRows has at
// least one child row referencing it via the given FK field on
// childRows (spec §4.3 layer 5, spec invariant 3).
func CheckRequiredChildren(parentTable string, parentRows interface{}, parentSpec *schema.Spec, childTable string, childRows interface{}, childFK schema.Field) []*canonerrors.CanonError {
	var errs []*canonerrors.CanonError

	parentUnique := parentSpec.UniqueFields()
	if len(parentUnique) == 0 {
		return errs
	}
	pkField := parentUnique[0]

	referenced := make(map[interface{}]bool)
	cv := sliceOf(childRows)
	for i := 0; i < cv.Len(); i++ {
		if value, ok := rowValue(cv.Index(i), childFK.GoName); ok {
			referenced[value] = true
		}
	}

	pv := sliceOf(parentRows)
	for i := 0; i < pv.Len(); i++ {
		row := pv.Index(i)
		value, ok := rowValue(row, pkField.GoName)
		if !ok {
			continue
		}
		if !referenced[value] {
			id := rowID(row, parentSpec)
			errs = append(errs, canonerrors.NewRequiredChildError(parentTable, id, childTable).
				WithContext("missing_parent_key", fmt.Sprintf("%v", value)))
		}
	}

	return errs
}
