package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/tzplanner/internal/domain"
	"github.com/pkordes/tzplanner/internal/workbook"
)

// Export formats accepted by ?format=.
const (
	formatXLSX = "xlsx"
	formatCSV  = "csv"
	formatJSON = "json"
)

// GetExport handles GET /export.
// ?format=xlsx (default) downloads the two-sheet workbook, csv returns the
// conversion table only and json returns both tables.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = formatXLSX
	}
	if format != formatXLSX && format != formatCSV && format != formatJSON {
		writeError(w, http.StatusBadRequest, codeValidation, "format must be one of xlsx, csv, json")
		return
	}

	exp, err := s.export.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	switch format {
	case formatJSON:
		writeJSON(w, http.StatusOK, exp)
	case formatCSV:
		s.writeCSV(w, r, exp)
	default:
		s.writeWorkbook(w, r, exp)
	}
}

// writeWorkbook buffers the workbook so encoding failures can still be
// reported as a 500 before any bytes are sent.
func (s *Server) writeWorkbook(w http.ResponseWriter, r *http.Request, exp domain.Export) {
	b, err := workbook.Encode(exp)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", workbook.ContentType)
	w.Header().Set("Content-Disposition", attachment(s.exportFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(b)
}

func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, exp domain.Export) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(workbook.ConversionHeaders)
	for _, row := range exp.Conversions {
		//nolint:errcheck
		cw.Write(csvRecord(workbook.ConversionRecord(row)))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}

func csvRecord(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
