package ingest

import "strings"

// SplitLine splits one CSV line into fields. Double-quoted fields may
// contain commas; a literal quote inside a quoted field is written as two
// consecutive quotes. Fields are trimmed of surrounding whitespace after
// unquoting.
func SplitLine(line string) []string {
	result := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// headerAliases maps normalized header spellings to the canonical field
// names the row schema uses.
var headerAliases = map[string]string{
	"imageurl": "imageUrl",
	"dealurl":  "dealUrl",
}

// NormalizeHeaders lower-cases headers, strips stray quote characters and
// whitespace, then applies the alias table. Unrecognized headers pass
// through unchanged; row building ignores them.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.NewReplacer(`"`, "", "'", "").Replace(h)
		h = strings.ToLower(strings.TrimSpace(h))
		if alias, ok := headerAliases[h]; ok {
			h = alias
		}
		out[i] = h
	}
	return out
}

// splitLines breaks the file into non-blank lines, preserving order.
func splitLines(text string) []string {
	lines := make([]string, 0, 64)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
