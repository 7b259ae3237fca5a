// Package ingest turns a raw CSV product export into normalized catalog
// records. The pipeline is tolerant by design: one malformed row never
// aborts the batch, and every degradation is tallied into a summary that is
// reported to the caller instead of raised as an error.
package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vitasearch/catalog-explorer/models"
)

// Severity classifies the overall outcome of one ingestion run.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning" // rows kept, but optional fields were missing
	SeverityError   Severity = "error"   // at least one row dropped, or a fatal condition
)

// Summary is the pipeline's sole diagnostic surface. It is returned, never
// thrown; the caller decides how to present it.
type Summary struct {
	TotalRows         int            `json:"totalRows"`
	SuccessCount      int            `json:"successCount"`
	ErrorCount        int            `json:"errorCount"`
	EmptyFieldCount   int            `json:"emptyFieldCount"` // rows with at least one empty optional field
	EmptyFieldsReport map[string]int `json:"emptyFieldsReport,omitempty"`
	MissingColumns    []string       `json:"missingColumns,omitempty"` // optional columns absent from the header
	Severity          Severity       `json:"severity"`
	Message           string         `json:"message"`
	Fatal             bool           `json:"fatal"`
}

// Ingest parses a full CSV export into products. Fatal conditions (fewer
// than two non-blank lines, or an unresolvable required column) return an
// empty product set with an error summary; everything else degrades per row.
func Ingest(content string) ([]models.Product, Summary) {
	lines := nonBlankLines(content)
	if len(lines) < 2 {
		return nil, fatalSummary("CSV must contain a header row and at least one data row")
	}

	cols := resolveColumns(tokenizeLine(lines[0]))
	if missing := cols.missingRequired(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, key := range missing {
			names[i] = string(key)
		}
		return nil, fatalSummary(fmt.Sprintf("required column(s) not found in header: %s", strings.Join(names, ", ")))
	}

	now := time.Now()
	summary := Summary{
		TotalRows:         len(lines) - 1,
		EmptyFieldsReport: make(map[string]int),
		MissingColumns:    missingOptional(cols),
	}
	products := make([]models.Product, 0, len(lines)-1)
	seenIDs := make(map[string]struct{}, len(lines)-1)

	for i, line := range lines[1:] {
		rowNum := i + 1
		product, skip, empties := normalizeRow(tokenizeLine(line), cols, rowNum, now)
		if skip != skipNone {
			summary.ErrorCount++
			continue
		}
		if _, dup := seenIDs[product.ID]; dup {
			// Source ids are supposed to be unique; a repeat gets a
			// synthetic id rather than clobbering the earlier record.
			product.ID = syntheticID(rowNum)
		}
		seenIDs[product.ID] = struct{}{}

		if len(empties) > 0 {
			summary.EmptyFieldCount++
			for _, name := range empties {
				summary.EmptyFieldsReport[name]++
			}
		}
		summary.SuccessCount++
		products = append(products, *product)
	}

	summary.Severity, summary.Message = classify(summary)
	return products, summary
}

// missingOptional lists the optional schema fields with no header column,
// in a stable order.
func missingOptional(cols Columns) []string {
	var missing []string
	for key, idx := range cols {
		if idx == columnAbsent {
			missing = append(missing, string(key))
		}
	}
	sort.Strings(missing)
	return missing
}

// nonBlankLines splits content on newlines and drops whitespace-only lines.
func nonBlankLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) != "" {
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
	}
	return lines
}

func classify(s Summary) (Severity, string) {
	switch {
	case s.ErrorCount > 0:
		return SeverityError, fmt.Sprintf("imported %d of %d rows; %d row(s) were invalid and skipped",
			s.SuccessCount, s.TotalRows, s.ErrorCount)
	case s.EmptyFieldCount > 0:
		return SeverityWarning, fmt.Sprintf("imported all %d rows; %d row(s) had empty optional fields filled with defaults",
			s.SuccessCount, s.EmptyFieldCount)
	default:
		return SeveritySuccess, fmt.Sprintf("imported all %d rows", s.SuccessCount)
	}
}

func fatalSummary(msg string) Summary {
	return Summary{
		Severity: SeverityError,
		Message:  msg,
		Fatal:    true,
	}
}
