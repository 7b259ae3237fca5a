package ingest

import "strings"

// tokenizeLine splits one CSV line into raw field values, honoring
// RFC 4180-style quoting: an unquoted comma separates fields, a quoted comma
// is literal, and a doubled quote inside a quoted field emits one literal
// quote. Fields are trimmed of surrounding whitespace.
//
// Unbalanced quotes are not an error; the remainder of the line is simply
// consumed as quoted content.
func tokenizeLine(line string) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote: emit one and skip the pair.
				buf.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(buf.String()))

	return fields
}
