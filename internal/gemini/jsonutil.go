package gemini

import (
	"regexp"
	"strings"
)

// Model output is requested as JSON but still arrives fenced or with
// trailing commas often enough to clean it first.
var (
	jsonBlockPattern      = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	jsonObjectPattern     = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	jsonArrayBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\[.*\\])\\s*```")
	jsonArrayPattern      = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
	trailingCommaPattern  = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSON returns the JSON object or array in content, or "" when there is none.
// Whichever of '{' and '[' appears first decides the shape.
func extractJSON(content string) string {
	obj := strings.IndexByte(content, '{')
	arr := strings.IndexByte(content, '[')

	var raw string
	switch {
	case arr >= 0 && (obj < 0 || arr < obj):
		raw = firstMatch(content, jsonArrayBlockPattern, jsonArrayPattern)
	case obj >= 0:
		raw = firstMatch(content, jsonBlockPattern, jsonObjectPattern)
	}
	if raw == "" {
		return ""
	}
	return cleanJSON(raw)
}

func firstMatch(content string, block, bare *regexp.Regexp) string {
	if m := block.FindStringSubmatch(content); len(m) > 1 {
		return m[1]
	}
	return bare.FindString(content)
}

// cleanJSON removes // comments outside strings and trailing commas.
func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return trailingCommaPattern.ReplaceAllString(strings.Join(lines, "\n"), "$1")
}

func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}

	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
