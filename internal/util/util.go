// internal/util/util.go
package util

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// FormatThousands renders an integer with comma separators, e.g. 1234567 -> "1,234,567".
func FormatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// WrapToWidth wraps the given text to a specified width, breaking long words.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		runeCount := 0
		words := strings.Fields(line)
		for _, w := range words {
			wLen := utf8.RuneCountInString(w)
			if runeCount > 0 && runeCount+1+wLen <= width {
				cur.WriteByte(' ')
				cur.WriteString(w)
				runeCount += 1 + wLen
				continue
			}
			if runeCount == 0 && wLen <= width {
				cur.WriteString(w)
				runeCount = wLen
				continue
			}
			if runeCount > 0 {
				out = append(out, cur.String())
				cur.Reset()
				runeCount = 0
			}
			if wLen <= width {
				cur.WriteString(w)
				runeCount = wLen
			} else {
				r := []rune(w)
				for start := 0; start < len(r); start += width {
					end := start + width
					if end > len(r) {
						end = len(r)
					}
					if end-start == width && end < len(r) {
						out = append(out, string(r[start:end]))
					} else {
						cur.WriteString(string(r[start:end]))
						runeCount = end - start
					}
				}
			}
		}
		if runeCount > 0 {
			out = append(out, cur.String())
		}
	}
	return strings.Join(out, "\n")
}
