package dispatch

import (
	"net/url"
	"regexp"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

var windowsPath = regexp.MustCompile(`^"?[A-Za-z]:\\`)

// ParseDropPayload extracts file paths from text a terminal pasted when
// files were dropped on it. Unix payloads are split with shell quoting rules
// and fall back to one path per line when the quoting is unbalanced.
// Windows payloads are one path per line, optionally double-quoted.
// file:// URIs are reduced to their local path.
func ParseDropPayload(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var fields []string
	if windowsPath.MatchString(text) {
		fields = splitLines(text)
		for i, f := range fields {
			fields[i] = strings.Trim(f, `"`)
		}
	} else if split, err := shlex.Split(text, true); err == nil {
		fields = split
	} else {
		fields = splitLines(text)
	}

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(fromFileURI(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func splitLines(text string) []string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func fromFileURI(s string) string {
	if !strings.HasPrefix(s, "file://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Path == "" {
		return s
	}
	return u.Path
}
