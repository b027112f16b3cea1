package constants

import (
	"path/filepath"
	"strings"
)

// FileFormat is the coarse ingestion format inferred from a file name.
type FileFormat string

const (
	CSV      FileFormat = "CSV"
	TEXT     FileFormat = "TEXT"
	WORKBOOK FileFormat = "WORKBOOK"
	PDF      FileFormat = "PDF"
	IMAGE    FileFormat = "IMAGE"
	UNKNOWN  FileFormat = "UNKNOWN"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its FileFormat.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "csv":
		return CSV
	case "tsv", "txt", "json":
		return TEXT
	case "xlsx", "xls", "xlsm":
		return WORKBOOK
	case "pdf":
		return PDF
	case "png", "jpg", "jpeg", "webp":
		return IMAGE
	default:
		return UNKNOWN
	}
}

// FormatForFile infers the FileFormat from a file name.
func FormatForFile(name string) FileFormat {
	return MapExtToFormat(filepath.Ext(name))
}
