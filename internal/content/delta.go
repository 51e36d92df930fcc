package content

import "strings"

// ComputeDelta returns the normalized text of currentRich that is new since lastSavedRich.
// A nil lastSavedRich means the notebook was never saved, so everything is new.
//
// Appending is detected exactly. Any other edit falls back to a positional word scan:
// everything from the first word that differs is treated as new, so an insertion near
// the start reports the rest of the document as well.
func ComputeDelta(currentRich string, lastSavedRich *string) string {
	current := Normalize(currentRich)
	if lastSavedRich == nil {
		return current
	}

	previous := Normalize(*lastSavedRich)
	if current == previous {
		return ""
	}
	if strings.HasPrefix(current, previous) {
		return strings.TrimSpace(current[len(previous):])
	}

	currentWords := strings.Fields(current)
	previousWords := strings.Fields(previous)
	i := 0
	for i < len(currentWords) && i < len(previousWords) && currentWords[i] == previousWords[i] {
		i++
	}
	return strings.TrimSpace(strings.Join(currentWords[i:], " "))
}
