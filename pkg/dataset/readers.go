package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// ReadCSV reads a CSV file into a dataframe. Additional load options
// (delimiter, header handling, type detection) pass straight through to
// the dataframe library.
func (h *Handler) ReadCSV(path string, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file, options...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse CSV %s: %w", path, df.Err)
	}
	return df, nil
}

// ReadJSON reads a JSON array of records into a dataframe.
func (h *Handler) ReadJSON(path string, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	df := dataframe.ReadJSON(file, options...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse JSON %s: %w", path, df.Err)
	}
	return df, nil
}

// ReadExcel reads one sheet of an xlsx workbook into a dataframe. An
// empty sheet name selects the first sheet. The first row is treated as
// the header; a header-only sheet loads as an empty frame with the
// named columns.
func (h *Handler) ReadExcel(path, sheet string) (dataframe.DataFrame, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	if sheet == "" {
		sheet = file.GetSheetName(0)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read sheet %q from %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q in %s is empty", sheet, path)
	}
	if len(rows) == 1 {
		cols := make([]series.Series, len(rows[0]))
		for i, name := range rows[0] {
			cols[i] = series.New([]string{}, series.String, name)
		}
		return dataframe.New(cols...), nil
	}

	// GetRows trims trailing empty cells, so square the rows off to the
	// header width before loading
	width := len(rows[0])
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
		rows[i] = rows[i][:width]
	}

	df := dataframe.LoadRecords(rows)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to load sheet %q from %s: %w", sheet, path, df.Err)
	}
	return df, nil
}

// ReadParquet reads a Parquet file into a dataframe.
func (h *Handler) ReadParquet(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	rows, err := parquet.Read[map[string]any](file, stat.Size())
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read parquet %s: %w", path, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("parquet file %s contains no rows", path)
	}

	for _, row := range rows {
		normalizeRow(row)
	}

	df := dataframe.LoadMaps(rows)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to load parquet %s: %w", path, df.Err)
	}
	return df, nil
}

// normalizeRow converts decoded parquet values into the types the
// dataframe loader recognizes.
func normalizeRow(row map[string]any) {
	for key, value := range row {
		switch v := value.(type) {
		case int32:
			row[key] = int(v)
		case int64:
			row[key] = int(v)
		case float32:
			row[key] = float64(v)
		case []byte:
			row[key] = string(v)
		}
	}
}

// ReadHTML extracts every <table> in an HTML file as a dataframe. When
// match is non-empty only tables whose text contains it are returned,
// mirroring the usual dataframe-library match filter. At least one
// table must qualify.
func (h *Handler) ReadHTML(path, match string) ([]dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML %s: %w", path, err)
	}

	var (
		frames   []dataframe.DataFrame
		tableErr error
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if match != "" && !strings.Contains(table.Text(), match) {
			return true
		}

		records := tableRecords(table)
		if len(records) < 2 {
			return true
		}

		df := dataframe.LoadRecords(records)
		if df.Err != nil {
			tableErr = fmt.Errorf("failed to load HTML table from %s: %w", path, df.Err)
			return false
		}
		frames = append(frames, df)
		return true
	})
	if tableErr != nil {
		return nil, tableErr
	}

	if len(frames) == 0 {
		if match != "" {
			return nil, fmt.Errorf("no tables matching %q found in %s", match, path)
		}
		return nil, fmt.Errorf("no tables found in %s", path)
	}
	return frames, nil
}

// tableRecords flattens a <table> selection into rows of cell text.
func tableRecords(table *goquery.Selection) [][]string {
	var records [][]string
	width := 0

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if len(cells) > width {
			width = len(cells)
		}
		records = append(records, cells)
	})

	// Ragged rows break the loader, square them off
	for i := range records {
		for len(records[i]) < width {
			records[i] = append(records[i], "")
		}
	}
	return records
}
