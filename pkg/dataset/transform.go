package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/gobwas/glob"
)

// Type identifies a column's element type.
type Type = series.Type

// Supported column types for CastColumns.
const (
	TypeString Type = series.String
	TypeInt    Type = series.Int
	TypeFloat  Type = series.Float
	TypeBool   Type = series.Bool
)

// CleanColumnNames normalizes column names, optionally lowercasing them
// and replacing spaces with underscores.
func CleanColumnNames(df dataframe.DataFrame, lowercase, underscoreSpaces bool) dataframe.DataFrame {
	for _, name := range df.Names() {
		cleaned := name
		if lowercase {
			cleaned = strings.ToLower(cleaned)
		}
		if underscoreSpaces {
			cleaned = strings.ReplaceAll(cleaned, " ", "_")
		}
		if cleaned != name {
			df = df.Rename(cleaned, name)
		}
	}
	return df
}

// RenameColumns renames columns via an old-to-new mapping. Every old
// name must exist.
func RenameColumns(df dataframe.DataFrame, mapping map[string]string) (dataframe.DataFrame, error) {
	names := df.Names()
	for old, replacement := range mapping {
		if !containsString(names, old) {
			return dataframe.DataFrame{}, fmt.Errorf("cannot rename %q: column not found", old)
		}
		df = df.Rename(replacement, old)
		if df.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to rename %q: %w", old, df.Err)
		}
	}
	return df, nil
}

// SelectColumns returns a dataframe restricted to the given columns, in
// the given order.
func SelectColumns(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, error) {
	selected := df.Select(columns)
	if selected.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to select columns: %w", selected.Err)
	}
	return selected, nil
}

// SelectPattern returns the columns whose names match a glob pattern
// (e.g. "price_*"). At least one column must match.
func SelectPattern(df dataframe.DataFrame, pattern string) (dataframe.DataFrame, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("invalid column pattern %q: %w", pattern, err)
	}

	var matched []string
	for _, name := range df.Names() {
		if matcher.Match(name) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no columns match pattern %q", pattern)
	}

	return SelectColumns(df, matched)
}

// FilterByValues keeps the rows whose column value is one of values.
func FilterByValues(df dataframe.DataFrame, column string, values ...string) (dataframe.DataFrame, error) {
	filtered := df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.In,
		Comparando: values,
	})
	if filtered.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to filter by %q: %w", column, filtered.Err)
	}
	return filtered, nil
}

// DropDuplicates removes duplicate rows, keeping the first occurrence.
// When subset is non-empty only those columns determine equality.
func DropDuplicates(df dataframe.DataFrame, subset ...string) (dataframe.DataFrame, error) {
	names := df.Names()
	keyIdx := make([]int, 0, len(subset))
	if len(subset) == 0 {
		for i := range names {
			keyIdx = append(keyIdx, i)
		}
	} else {
		for _, col := range subset {
			idx := indexOfString(names, col)
			if idx < 0 {
				return dataframe.DataFrame{}, fmt.Errorf("cannot deduplicate on %q: column not found", col)
			}
			keyIdx = append(keyIdx, idx)
		}
	}

	records := df.Records()
	kept := records[:1] // header
	seen := make(map[string]bool, len(records))
	for _, record := range records[1:] {
		parts := make([]string, len(keyIdx))
		for i, idx := range keyIdx {
			parts[i] = record[idx]
		}
		key := strings.Join(parts, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, record)
	}

	deduped := dataframe.LoadRecords(kept, dataframe.WithTypes(typeMap(df)))
	if deduped.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to deduplicate: %w", deduped.Err)
	}
	return deduped, nil
}

// FillMissing replaces every missing value with the given value, parsed
// per each column's type.
func FillMissing(df dataframe.DataFrame, value string) dataframe.DataFrame {
	for _, name := range df.Names() {
		col := df.Col(name)
		if !col.HasNaN() {
			continue
		}
		records := col.Records()
		for i, missing := range col.IsNaN() {
			if missing {
				records[i] = value
			}
		}
		df = df.Mutate(series.New(records, col.Type(), name))
	}
	return df
}

// FillForward propagates the last observed value into subsequent
// missing cells. Leading missing values are left as-is.
func FillForward(df dataframe.DataFrame) dataframe.DataFrame {
	return fillDirectional(df, true)
}

// FillBackward propagates the next observed value into preceding
// missing cells. Trailing missing values are left as-is.
func FillBackward(df dataframe.DataFrame) dataframe.DataFrame {
	return fillDirectional(df, false)
}

func fillDirectional(df dataframe.DataFrame, forward bool) dataframe.DataFrame {
	for _, name := range df.Names() {
		col := df.Col(name)
		if !col.HasNaN() {
			continue
		}

		records := col.Records()
		mask := col.IsNaN()
		if !forward {
			reverse(records)
			reverse(mask)
		}

		last := ""
		haveLast := false
		for i := range records {
			if mask[i] {
				if haveLast {
					records[i] = last
				}
				continue
			}
			last = records[i]
			haveLast = true
		}

		if !forward {
			reverse(records)
		}
		df = df.Mutate(series.New(records, col.Type(), name))
	}
	return df
}

// CastError reports a single column whose type conversion failed.
type CastError struct {
	Column string
	Err    error
}

func (e CastError) Error() string {
	return fmt.Sprintf("failed to cast column %q: %v", e.Column, e.Err)
}

// CastColumns converts columns to new types per the mapping. A column
// whose values do not convert is reported and left unchanged; the
// remaining columns are still processed. Mapped columns absent from the
// dataframe are skipped.
//
// Conversion goes through each value's string form, so casting a float
// column with fractional values to TypeInt is a reported failure, not
// a truncation. Round-trip the values yourself when narrowing is
// intended.
func CastColumns(df dataframe.DataFrame, mapping map[string]Type) (dataframe.DataFrame, []CastError) {
	var failures []CastError

	for _, name := range df.Names() {
		target, ok := mapping[name]
		if !ok {
			continue
		}

		col := df.Col(name)
		if col.Type() == target {
			continue
		}

		cast := series.New(col.Records(), target, name)
		if introducedNaN(col.IsNaN(), cast.IsNaN()) {
			failure := CastError{
				Column: name,
				Err:    fmt.Errorf("values do not convert to %s", target),
			}
			failures = append(failures, failure)
			log.WithField("column", name).Warn(failure.Err)
			continue
		}

		df = df.Mutate(cast)
	}

	return df, failures
}

// introducedNaN reports whether a cast produced missing values that the
// source column did not have.
func introducedNaN(before, after []bool) bool {
	for i := range after {
		if after[i] && !before[i] {
			return true
		}
	}
	return false
}

// JoinKind selects how Merge combines dataframes.
type JoinKind string

const (
	JoinInner JoinKind = "inner"
	JoinLeft  JoinKind = "left"
	JoinRight JoinKind = "right"
	JoinOuter JoinKind = "outer"
)

// Merge joins dataframes left to right on the given key columns.
func Merge(dfs []dataframe.DataFrame, how JoinKind, on ...string) (dataframe.DataFrame, error) {
	if len(dfs) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no dataframes to merge")
	}
	if len(on) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("merge requires at least one key column")
	}

	result := dfs[0]
	for _, df := range dfs[1:] {
		switch how {
		case JoinInner:
			result = result.InnerJoin(df, on...)
		case JoinLeft:
			result = result.LeftJoin(df, on...)
		case JoinRight:
			result = result.RightJoin(df, on...)
		case JoinOuter:
			result = result.OuterJoin(df, on...)
		default:
			return dataframe.DataFrame{}, fmt.Errorf("unsupported join kind %q", how)
		}
		if result.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to merge on %v: %w", on, result.Err)
		}
	}
	return result, nil
}

// Concat stacks dataframes row-wise, unioning their columns; cells
// absent from a source become missing values.
func Concat(dfs []dataframe.DataFrame) (dataframe.DataFrame, error) {
	if len(dfs) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no dataframes to concatenate")
	}

	result := dfs[0]
	for _, df := range dfs[1:] {
		result = result.Concat(df)
		if result.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to concatenate: %w", result.Err)
		}
	}
	return result, nil
}

// typeMap captures a dataframe's column types for reloads.
func typeMap(df dataframe.DataFrame) map[string]series.Type {
	names := df.Names()
	types := df.Types()
	m := make(map[string]series.Type, len(names))
	for i, name := range names {
		m[name] = types[i]
	}
	return m
}

func containsString(values []string, target string) bool {
	return indexOfString(values, target) >= 0
}

func indexOfString(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func reverse[T any](values []T) {
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
}
