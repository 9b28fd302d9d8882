package dataset

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// outputPath resolves name inside the output directory, appending the
// canonical extension and creating intermediate directories when the
// name contains a subpath.
func (h *Handler) outputPath(name string, format Format) (string, error) {
	path := filepath.Join(h.outputDir, addExtension(name, format))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create destination directory for %s: %w", path, err)
	}
	return path, nil
}

// SaveCSV writes df as CSV under the output directory and returns the
// written path. Write options pass through to the dataframe library.
func (h *Handler) SaveCSV(df dataframe.DataFrame, name string, options ...dataframe.WriteOption) (string, error) {
	path, err := h.outputPath(name, FormatCSV)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := df.WriteCSV(file, options...); err != nil {
		return "", fmt.Errorf("failed to write CSV %s: %w", path, err)
	}
	return path, nil
}

// SaveJSON writes df as a JSON array of records and returns the written
// path.
func (h *Handler) SaveJSON(df dataframe.DataFrame, name string) (string, error) {
	path, err := h.outputPath(name, FormatJSON)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := df.WriteJSON(file); err != nil {
		return "", fmt.Errorf("failed to write JSON %s: %w", path, err)
	}
	return path, nil
}

// SaveExcel writes df as an xlsx workbook with a single sheet (default
// "Sheet1") and returns the written path.
func (h *Handler) SaveExcel(df dataframe.DataFrame, name, sheet string) (string, error) {
	path, err := h.outputPath(name, FormatExcel)
	if err != nil {
		return "", err
	}

	if sheet == "" {
		sheet = "Sheet1"
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if sheet != "Sheet1" {
		if err := workbook.SetSheetName("Sheet1", sheet); err != nil {
			return "", fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	for i, record := range df.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		row := make([]interface{}, len(record))
		for j, value := range record {
			row[j] = value
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return path, nil
}

// SaveParquet writes df as a Parquet file and returns the written path.
// Column types map onto optional int64/double/boolean/string fields.
func (h *Handler) SaveParquet(df dataframe.DataFrame, name string) (string, error) {
	path, err := h.outputPath(name, FormatParquet)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[map[string]any](file, parquetSchema(df))
	if _, err := writer.Write(df.Maps()); err != nil {
		return "", fmt.Errorf("failed to write parquet %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize parquet %s: %w", path, err)
	}
	return path, nil
}

// parquetSchema maps the dataframe's column types onto a parquet schema.
func parquetSchema(df dataframe.DataFrame) *parquet.Schema {
	group := parquet.Group{}
	names := df.Names()
	types := df.Types()

	for i, name := range names {
		var node parquet.Node
		switch types[i] {
		case series.Int:
			node = parquet.Int(64)
		case series.Float:
			node = parquet.Leaf(parquet.DoubleType)
		case series.Bool:
			node = parquet.Leaf(parquet.BooleanType)
		default:
			node = parquet.String()
		}
		group[name] = parquet.Optional(node)
	}

	return parquet.NewSchema("dataset", group)
}

// SaveHTML renders df as an HTML table and returns the written path.
func (h *Handler) SaveHTML(df dataframe.DataFrame, name string) (string, error) {
	path, err := h.outputPath(name, FormatHTML)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(renderHTMLTable(df)), 0o640); err != nil {
		return "", fmt.Errorf("failed to write HTML %s: %w", path, err)
	}
	return path, nil
}

// renderHTMLTable builds a plain <table> with a header row and one
// <tr> per record.
func renderHTMLTable(df dataframe.DataFrame) string {
	var b strings.Builder

	b.WriteString("<table border=\"1\" class=\"dataframe\">\n")
	b.WriteString("  <thead>\n    <tr>\n")
	for _, name := range df.Names() {
		fmt.Fprintf(&b, "      <th>%s</th>\n", html.EscapeString(name))
	}
	b.WriteString("    </tr>\n  </thead>\n")

	b.WriteString("  <tbody>\n")
	records := df.Records()
	for _, record := range records[1:] {
		b.WriteString("    <tr>\n")
		for _, value := range record {
			fmt.Fprintf(&b, "      <td>%s</td>\n", html.EscapeString(value))
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n</table>\n")

	return b.String()
}
