package plan

import (
	"regexp"
	"strings"
)

var (
	propertyRegex = regexp.MustCompile(`^\*\*(.+?)\*\*:\s*(.+)$`)
	checkboxRegex = regexp.MustCompile(`^\[[ xX]\]\s*`)
)

// Keyword sets that open a labeled list inside a section body. Matching
// is a case-insensitive substring test against the whole line.
var (
	dependencyKeywords  = []string{"dependencies", "requires", "depends on", "prerequisites"}
	criteriaKeywords    = []string{"acceptance criteria", "success criteria", "completion criteria"}
	deliverableKeywords = []string{"deliverables", "outputs", "artifacts"}
)

// extractProperties scans a section body for **Key**: value lines and
// returns them keyed by the lower-cased, underscore-normalized key. The
// leading narrative text of the body, if any, is stored under
// "description": every non-empty line that is not a property or header
// line and precedes the first bullet.
func extractProperties(body string) map[string]string {
	props := make(map[string]string)

	for _, line := range strings.Split(body, "\n") {
		if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
			key := strings.ReplaceAll(strings.ToLower(matches[1]), " ", "_")
			props[key] = strings.TrimSpace(matches[2])
		}
	}

	var descLines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if propertyRegex.MatchString(line) {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "-") {
			break
		}
		descLines = append(descLines, line)
	}
	if len(descLines) > 0 {
		props["description"] = strings.Join(descLines, " ")
	}

	return props
}

// parseCommaList splits a comma-separated property value into trimmed,
// non-empty tokens.
func parseCommaList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// collectList extracts a labeled sub-list from a section body. A line
// containing one of the keywords (case-insensitive) opens collection;
// while collecting, bullet lines are stripped of their marker and an
// optional checkbox and appended to the result. The first non-empty,
// non-bullet, unindented line closes collection.
//
// Each list kind is scanned independently over the full body; a keyword
// hit while already collecting restarts collection, so a bullet that
// itself contains a keyword (e.g. "- Requires completion of Issue 1")
// is consumed as a marker line rather than a list entry.
func collectList(body string, keywords []string) []string {
	var result []string
	collecting := false

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if containsAny(strings.ToLower(trimmed), keywords) {
			collecting = true
			continue
		}

		if !collecting {
			continue
		}

		if strings.HasPrefix(trimmed, "-") {
			entry := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			entry = strings.TrimSpace(checkboxRegex.ReplaceAllString(entry, ""))
			if entry != "" {
				result = append(result, entry)
			}
			continue
		}

		if trimmed != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			collecting = false
		}
	}

	return result
}
