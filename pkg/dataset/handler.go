package dataset

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "dataset")

// DefaultOutputDir receives exported files when no directory is
// configured.
const DefaultOutputDir = "exports"

// Format identifies a supported file format. The set is closed:
// dispatch happens over an explicit mapping and unsupported strings are
// rejected by ParseFormat rather than failing on lookup.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "xlsx"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatHTML    Format = "html"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatExcel, FormatJSON, FormatParquet, FormatHTML}
}

// ParseFormat converts a format name (file extension, case-insensitive)
// into a Format, rejecting anything outside the supported set.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel:
		return FormatExcel, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatParquet:
		return FormatParquet, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: csv, xlsx, json, parquet, html)", name)
	}
}

// Handler reads, writes and transforms tabular datasets. Exports land
// in OutputDir, which is created when missing.
type Handler struct {
	outputDir string
}

// NewHandler creates a handler exporting to outputDir (DefaultOutputDir
// when empty). The directory is created immediately.
func NewHandler(outputDir string) (*Handler, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &Handler{outputDir: outputDir}, nil
}

// OutputDir returns the directory exports are written to.
func (h *Handler) OutputDir() string {
	return h.outputDir
}

// Save writes df under name in the given format, appending the
// canonical extension when absent, and returns the written path.
func (h *Handler) Save(df dataframe.DataFrame, name string, format Format) (string, error) {
	switch format {
	case FormatCSV:
		return h.SaveCSV(df, name)
	case FormatExcel:
		return h.SaveExcel(df, name, "")
	case FormatJSON:
		return h.SaveJSON(df, name)
	case FormatParquet:
		return h.SaveParquet(df, name)
	case FormatHTML:
		return h.SaveHTML(df, name)
	default:
		return "", fmt.Errorf("unsupported format %q (supported: csv, xlsx, json, parquet, html)", format)
	}
}

// SaveWithTimestamp appends a _YYYYMMDD_HHMMSS suffix to name before
// dispatching to the matching format writer.
func (h *Handler) SaveWithTimestamp(df dataframe.DataFrame, name string, format Format) (string, error) {
	stamped := fmt.Sprintf("%s_%s", name, time.Now().Format("20060102_150405"))
	return h.Save(df, stamped, format)
}

// addExtension appends "." + ext when name does not already end in it.
func addExtension(name string, format Format) string {
	suffix := "." + string(format)
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}
