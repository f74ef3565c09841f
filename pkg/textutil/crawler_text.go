// Package textutil provides shared text cleanup helpers for scraped content.
package textutil

import "strings"

// Clean collapses all whitespace runs into single spaces and trims the ends.
// Scraped node text tends to carry stray newlines and NBSP-padded indentation.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// ContainsAny reports whether s contains at least one of the keywords.
// The caller is expected to lower-case s once; keywords are matched as-is.
func ContainsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// FirstToken returns the first whitespace-separated token of s, cleaned.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
