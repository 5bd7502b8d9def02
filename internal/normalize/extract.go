// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package normalize

import (
	"regexp"
	"strings"
)

var (
	jsonFence  = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)```")
	anyFenceRe = regexp.MustCompile("```([\\s\\S]*?)```")
	fenceLabel = regexp.MustCompile(`^[A-Za-z0-9_+-]+$`)

	doubledQuotes  = regexp.MustCompile(`""([^"\s][^"]*)""`)
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// labeledFence returns the interior of the first ```json fenced block.
func labeledFence(text string) (string, bool) {
	m := jsonFence.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// anyFence returns the interior of the first fenced block of any kind,
// dropping a language label on the opening line.
func anyFence(text string) (string, bool) {
	m := anyFenceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	body := m[1]
	if first, rest, found := strings.Cut(body, "\n"); found && fenceLabel.MatchString(strings.TrimSpace(first)) {
		body = rest
	}
	return strings.TrimSpace(body), true
}

// braceSpan returns the greedy span from the first '{' to the last '}'.
func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repair applies the fixed sequence of textual fixes used before the one
// retry of a failed candidate.
func repair(s string) string {
	s = unescapeQuotes(s)
	s = escapeStringControls(s)
	return trailingCommas.ReplaceAllString(s, "$1")
}

// unescapeQuotes undoes doubled quoting. An object that was serialized
// twice ({\"a\":1}) has its backslash-escaped quotes restored, and
// ""key"" style doubling collapses to "key".
func unescapeQuotes(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, `{\"`) || strings.HasPrefix(trimmed, `[\"`) {
		s = strings.ReplaceAll(s, `\\`, "\x00")
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, "\x00", `\`)
	}
	return doubledQuotes.ReplaceAllString(s, `"$1"`)
}

// escapeStringControls escapes raw line breaks and tabs that appear inside
// double-quoted string literals.
func escapeStringControls(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			case r == '\n':
				b.WriteString(`\n`)
				continue
			case r == '\r':
				b.WriteString(`\r`)
				continue
			case r == '\t':
				b.WriteString(`\t`)
				continue
			}
		} else if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
