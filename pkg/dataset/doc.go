// Package dataset wraps tabular read, write and transform operations
// for automation scripts on top of the gota dataframe library.
//
// A Handler owns an output directory and dispatches between the
// supported formats (csv, xlsx, json, parquet, html) through a closed
// Format set:
//
//	handler, err := dataset.NewHandler("exports")
//	df, err := handler.ReadCSV("input.csv")
//	df = dataset.CleanColumnNames(df, true, true)
//	path, err := handler.SaveWithTimestamp(df, "result", dataset.FormatCSV)
//
// Transforms are package-level functions taking and returning
// dataframes; they follow the underlying library's copy semantics.
// CastColumns is the one operation with partial-failure handling: a
// column whose values do not convert is reported and skipped while the
// rest are still cast.
package dataset
