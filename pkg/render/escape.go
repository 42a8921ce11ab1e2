package render

import "strings"

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		writeEscaped(&buf, r, false)
	}
	return buf.String()
}

// escapeAttr escapes an attribute value. Beyond escapeHTML it also encodes
// the whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		writeEscaped(&buf, r, true)
	}
	return buf.String()
}

func writeEscaped(buf *strings.Builder, r rune, attr bool) {
	switch r {
	case '&':
		buf.WriteString("&amp;")
	case '<':
		buf.WriteString("&lt;")
	case '>':
		buf.WriteString("&gt;")
	case '"':
		buf.WriteString("&quot;")
	case '\'':
		buf.WriteString("&#39;")
	case '\n':
		if attr {
			buf.WriteString("&#10;")
			return
		}
		buf.WriteRune(r)
	case '\r':
		if attr {
			buf.WriteString("&#13;")
			return
		}
		buf.WriteRune(r)
	case '\t':
		if attr {
			buf.WriteString("&#9;")
			return
		}
		buf.WriteRune(r)
	default:
		buf.WriteRune(r)
	}
}
