package texting

import (
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z0-9+#-]*\\n(.*?)```")

// ExtractCode pulls source code out of a model response. When the response
// contains fenced blocks the largest one wins, otherwise prose lines are
// stripped and whatever resembles code is kept.
func ExtractCode(response string) string {
	matches := fencedBlock.FindAllStringSubmatch(response, -1)
	if len(matches) > 0 {
		best := ""
		for _, match := range matches {
			if len(match[1]) > len(best) {
				best = match[1]
			}
		}
		return strings.TrimSpace(best)
	}

	var kept []string
	for _, line := range strings.Split(response, "\n") {
		if isProseLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// isProseLine flags explanation sentences models like to wrap around code.
func isProseLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	openers := []string{
		"here is", "here's", "this code", "this function", "the following",
		"note that", "explanation", "in this implementation", "sure", "certainly",
	}
	for _, opener := range openers {
		if strings.HasPrefix(lower, opener) {
			return true
		}
	}

	return false
}
