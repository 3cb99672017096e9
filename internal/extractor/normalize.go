package extractor

import (
	"regexp"
	"strings"
)

var (
	// ―12― style page numbers printed in the footer.
	pageNumberRe = regexp.MustCompile(`^―[0-9０-９]+―$`)
	// （3―24） style folio markers.
	folioRe = regexp.MustCompile(`^（[0-9０-９]+―[0-9０-９]+）$`)
)

// runningHeaders are fragments of the subject header that the text layer
// splits off onto their own lines.
var runningHeaders = map[string]struct{}{
	"化学": {},
	"学":  {},
	"化":  {},
}

// NormalizeText trims every line, drops blank lines and known page
// boilerplate, and keeps the remaining lines in order.
func NormalizeText(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isBoilerplate(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

func isBoilerplate(line string) bool {
	if pageNumberRe.MatchString(line) || folioRe.MatchString(line) {
		return true
	}
	_, ok := runningHeaders[line]
	return ok
}
