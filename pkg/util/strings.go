package util

import "strings"

// unsafeNameChars are replaced when a display name becomes a file name.
const unsafeNameChars = `/\:*?"<>|`

// SafeFileName maps a display name to something usable as a single path
// element. Path separators and reserved characters become "_"; an empty or
// dot-only result becomes "unnamed".
func SafeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(unsafeNameChars, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if strings.Trim(mapped, ".") == "" {
		return "unnamed"
	}
	return mapped
}
