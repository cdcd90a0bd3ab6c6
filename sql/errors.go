// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidType is thrown when there is an unexpected type at some part of
	// the execution tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrInvalidChildrenNumber is returned when the WithChildren method of a
	// node or expression is called with an invalid number of arguments.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrInvalidChildType is returned when the WithChildren method of a
	// node or expression is called with an invalid child type. This error is indicative of a bug.
	ErrInvalidChildType = errors.NewKind("%T: invalid child type, got %T, expected %T")

	// ErrNodeNotWritten is returned when the children are printed before the node.
	ErrNodeNotWritten = errors.NewKind("treeprinter: a child was written before the node")

	// ErrNodeAlreadyWritten is returned when the node has already been written.
	ErrNodeAlreadyWritten = errors.NewKind("treeprinter: node already written")

	// ErrChildrenAlreadyWritten is returned when the children have already been written.
	ErrChildrenAlreadyWritten = errors.NewKind("treeprinter: children already written")

	// ErrColumnNotFound is returned when a column reference cannot be bound in
	// any scope visible from the plan node.
	ErrColumnNotFound = errors.NewKind("Unknown column '%s' in '%s'")

	// ErrAmbiguousColumnName is returned when a column reference matches more
	// than one column.
	ErrAmbiguousColumnName = errors.NewKind("%s is ambiguous: %s.")

	// ErrUnsupportedColumnName is returned for column names with more parts
	// than catalog.db.table.column.
	ErrUnsupportedColumnName = errors.NewKind("Unsupported column name: %s, it has %d name parts")

	// ErrUnsupportedStarQualifier is returned for qualified stars with more
	// parts than catalog.db.table.
	ErrUnsupportedStarQualifier = errors.NewKind("Not supported qualifier: %s.*")

	// ErrUnknownStarQualifier is returned when no relation in scope exposes
	// the qualifier of a star.
	ErrUnknownStarQualifier = errors.NewKind("unknown qualifier: %s.*")

	// ErrAllSlotsExcepted is returned when a * EXCEPT clause removes every column.
	ErrAllSlotsExcepted = errors.NewKind("All slots in * EXCEPT clause are excepted")

	// ErrDuplicateReplaceColumn is returned when a * REPLACE clause targets
	// the same column twice.
	ErrDuplicateReplaceColumn = errors.NewKind("Duplicate replace column name: %s")

	// ErrReplaceColumnExcepted is returned when a * REPLACE target is also excepted.
	ErrReplaceColumnExcepted = errors.NewKind("Replace column name: %v is in excepts")

	// ErrInvalidReplaceColumn is returned when a * REPLACE target is not one
	// of the columns the star expands to.
	ErrInvalidReplaceColumn = errors.NewKind("Invalid replace column name: %v")

	// ErrStarReplaceInAggregate is returned for * REPLACE in aggregate outputs.
	ErrStarReplaceInAggregate = errors.NewKind("* REPLACE in agg clause is not supported, use * EXCEPT instead")

	// ErrSetOperationColumnCount is returned when the operands of a set
	// operation have different arities.
	ErrSetOperationColumnCount = errors.NewKind("Operands have unequal number of columns:\n'%s' has %d column(s)\n'%s' has %d column(s)")

	// ErrSetOperationAllNotSupported is returned for INTERSECT ALL and EXCEPT ALL.
	ErrSetOperationAllNotSupported = errors.NewKind("INTERSECT and EXCEPT does not support ALL qualified")

	// ErrSetOperationIncompatibleTypes is returned when a column of a set
	// operation has no common type across operands.
	ErrSetOperationIncompatibleTypes = errors.NewKind("can not find a common type for column %d of set operation: %s and %s")

	// ErrNotTableGenerating is returned when a LATERAL VIEW uses a function
	// that does not generate rows.
	ErrNotTableGenerating = errors.NewKind("%s is not a TableGeneratingFunction")

	// ErrNotTableValuedFunction is returned when a function used as a
	// relation is not table valued.
	ErrNotTableValuedFunction = errors.NewKind("%s is not a TableValuedFunction")

	// ErrInvalidGeneratorOutput is returned when a generator output name is
	// not of the form table.column.
	ErrInvalidGeneratorOutput = errors.NewKind("generator output must be named as table.column, got %s")

	// ErrExpandNonStruct is returned when column aliases are given for a
	// generator that does not produce a struct.
	ErrExpandNonStruct = errors.NewKind("Only support expand struct type generator output, but got %s")

	// ErrExpandAliasCount is returned when the number of column aliases of a
	// generator does not match its struct fields.
	ErrExpandAliasCount = errors.NewKind("%s produces %d fields but %d column aliases were given")

	// ErrDuplicateAliasOrTable should be returned when a query contains a duplicate alias / table name.
	ErrDuplicateAliasOrTable = errors.NewKind("Not unique table/alias: '%s'")

	// ErrDefaultInSelect is returned when DEFAULT is used in an inline table
	// of a SELECT statement.
	ErrDefaultInSelect = errors.NewKind("Default expression can't exist in SELECT statement at row %d")

	// ErrEmptyInlineTable is returned for an inline table with no rows.
	ErrEmptyInlineTable = errors.NewKind("inline table must have at least one row")

	// ErrUnknownQueryStructure is returned when a QUALIFY clause sits over a
	// plan shape that is not supported.
	ErrUnknownQueryStructure = errors.NewKind("unknown query structure")

	// ErrGroupingColumnNotInGroupBy is returned when a GROUPING or
	// GROUPING_ID function references a column outside every grouping set.
	ErrGroupingColumnNotInGroupBy = errors.NewKind("Column in %s does not exist in GROUP BY clause.")

	// ErrInvalidBooleanCast is returned when a predicate has no implicit
	// conversion to boolean.
	ErrInvalidBooleanCast = errors.NewKind("can not cast from origin type %s to target type=BOOLEAN: %s")

	// ErrFunctionNotFound is thrown when a function is not found
	ErrFunctionNotFound = errors.NewKind("function: '%s' not found")

	// ErrInvalidArgumentNumber is returned when the number of arguments to call a
	// function is different from the function arity.
	ErrInvalidArgumentNumber = errors.NewKind("function '%s' expected %v arguments, %v received")

	// ErrInvalidArgumentType is returned when a function receives arguments
	// of a type it cannot operate on.
	ErrInvalidArgumentType = errors.NewKind("function '%s' received invalid argument types: %s")

	// ErrInvalidTableFunctionProperty is returned when a table valued
	// function receives an invalid or missing property.
	ErrInvalidTableFunctionProperty = errors.NewKind("table function '%s': invalid property %s")

	// ErrUnresolvedPlan is returned when a plan still contains unbound nodes
	// once analysis finished.
	ErrUnresolvedPlan = errors.NewKind("plan is not resolved because of node '%s'")
)

var analysisErrors = []*errors.Kind{
	ErrColumnNotFound,
	ErrAmbiguousColumnName,
	ErrUnsupportedColumnName,
	ErrUnsupportedStarQualifier,
	ErrUnknownStarQualifier,
	ErrAllSlotsExcepted,
	ErrDuplicateReplaceColumn,
	ErrReplaceColumnExcepted,
	ErrInvalidReplaceColumn,
	ErrStarReplaceInAggregate,
	ErrSetOperationColumnCount,
	ErrSetOperationAllNotSupported,
	ErrSetOperationIncompatibleTypes,
	ErrNotTableGenerating,
	ErrNotTableValuedFunction,
	ErrInvalidGeneratorOutput,
	ErrExpandNonStruct,
	ErrExpandAliasCount,
	ErrDuplicateAliasOrTable,
	ErrDefaultInSelect,
	ErrEmptyInlineTable,
	ErrUnknownQueryStructure,
	ErrGroupingColumnNotInGroupBy,
	ErrInvalidBooleanCast,
	ErrFunctionNotFound,
	ErrInvalidArgumentNumber,
	ErrInvalidArgumentType,
	ErrInvalidTableFunctionProperty,
	ErrUnresolvedPlan,
}

// RegisterAnalysisError adds a kind to the set recognised by IsAnalysisError.
// It is meant to be called from package initialisation only.
func RegisterAnalysisError(kinds ...*errors.Kind) {
	analysisErrors = append(analysisErrors, kinds...)
}

// IsAnalysisError returns whether the error was raised because the statement
// is semantically invalid, as opposed to an internal failure.
func IsAnalysisError(err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range analysisErrors {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
