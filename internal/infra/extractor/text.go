package extractor

import "strings"

// decodeText decodes b as UTF-8, dropping any invalid byte sequences.
func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
