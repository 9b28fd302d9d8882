package dataset

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Info summarizes a dataframe's shape and data quality.
type Info struct {
	Rows       int
	Cols       int
	Columns    []string
	Types      map[string]string
	Missing    map[string]int
	Duplicates int
}

// Describe collects shape, per-column types, missing-value counts and
// the number of duplicate rows.
func Describe(df dataframe.DataFrame) Info {
	names := df.Names()
	types := df.Types()

	info := Info{
		Rows:    df.Nrow(),
		Cols:    df.Ncol(),
		Columns: names,
		Types:   make(map[string]string, len(names)),
		Missing: make(map[string]int, len(names)),
	}

	for i, name := range names {
		info.Types[name] = string(types[i])

		missing := 0
		for _, isNaN := range df.Col(name).IsNaN() {
			if isNaN {
				missing++
			}
		}
		info.Missing[name] = missing
	}

	records := df.Records()
	seen := make(map[string]bool, len(records))
	for _, record := range records[1:] {
		key := strings.Join(record, "\x1f")
		if seen[key] {
			info.Duplicates++
		}
		seen[key] = true
	}

	return info
}

// Summary returns the dataframe library's statistical description
// (mean, median, quartiles and friends per column).
func Summary(df dataframe.DataFrame) dataframe.DataFrame {
	return df.Describe()
}

// ColumnMissing reports missing values for one column.
type ColumnMissing struct {
	Column  string
	Count   int
	Percent float64
}

// MissingReport lists the columns that have missing values, sorted by
// percentage descending.
func MissingReport(df dataframe.DataFrame) []ColumnMissing {
	rows := df.Nrow()
	if rows == 0 {
		return nil
	}

	var report []ColumnMissing
	for _, name := range df.Names() {
		count := 0
		for _, isNaN := range df.Col(name).IsNaN() {
			if isNaN {
				count++
			}
		}
		if count == 0 {
			continue
		}
		report = append(report, ColumnMissing{
			Column:  name,
			Count:   count,
			Percent: float64(count) / float64(rows) * 100,
		})
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].Percent > report[j].Percent
	})
	return report
}
