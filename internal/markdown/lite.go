// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"regexp"
	"strings"
)

// liteRule is one global substitution of the lite renderer.
type liteRule struct {
	re   *regexp.Regexp
	repl string
	fn   func(string) string
}

// liteRules run in slice order over the whole text. Later rules must not
// re-match markup produced by earlier ones, so the order is fixed.
var liteRules = []liteRule{
	{re: regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]+(.+?)[ \t]*$`), repl: "<li>$1</li>"},
	{re: regexp.MustCompile(`(?m)(?:^<li>.*</li>(?:\n|$))+`), fn: wrapListRun},
	{re: regexp.MustCompile(`\*\*(.+?)\*\*`), repl: "<strong>$1</strong>"},
	{re: regexp.MustCompile(`__(.+?)__`), repl: "<strong>$1</strong>"},
	{re: regexp.MustCompile(`\*([^*\n]+)\*`), repl: "<em>$1</em>"},
	{re: regexp.MustCompile(`\b_([^_\n]+)_\b`), repl: "<em>$1</em>"},
	{re: regexp.MustCompile(`(?m)^#####[ \t]+(.+)$`), repl: "<h5>$1</h5>"},
	{re: regexp.MustCompile(`(?m)^####[ \t]+(.+)$`), repl: "<h4>$1</h4>"},
	{re: regexp.MustCompile(`(?m)^###[ \t]+(.+)$`), repl: "<h3>$1</h3>"},
	{re: regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`), repl: `<a href="$2">$1</a>`},
	{re: regexp.MustCompile("```[A-Za-z0-9_+-]*\\n?([\\s\\S]*?)```"), repl: "<pre><code>$1</code></pre>"},
	{re: regexp.MustCompile("`([^`\\n]+)`"), repl: "<code>$1</code>"},
}

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
	blockTags      = []string{"<ul", "<li", "<h", "<pre", "<code"}
)

// wrapListRun wraps a run of consecutive <li> lines in a single <ul>,
// keeping the run's trailing newline outside the list.
func wrapListRun(run string) string {
	trailing := ""
	if strings.HasSuffix(run, "\n") {
		run = strings.TrimSuffix(run, "\n")
		trailing = "\n"
	}
	return "<ul>" + strings.ReplaceAll(run, "\n", "") + "</ul>" + trailing
}

// RenderLite converts a small markdown subset to HTML with a fixed chain of
// regular-expression substitutions: list items, bold, italic, h3-h5
// headings, links, fenced code and inline code. The result is then split on
// blank lines and every paragraph that does not already start with a block
// tag is wrapped in <p>.
func RenderLite(text string) string {
	text = normalizeNewlines(text)

	for _, r := range liteRules {
		if r.fn != nil {
			text = r.re.ReplaceAllStringFunc(text, r.fn)
			continue
		}
		text = r.re.ReplaceAllString(text, r.repl)
	}

	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if hasBlockPrefix(para) {
			out = append(out, para)
			continue
		}
		out = append(out, "<p>"+para+"</p>")
	}
	return strings.Join(out, "\n")
}

func hasBlockPrefix(s string) bool {
	for _, tag := range blockTags {
		if strings.HasPrefix(s, tag) {
			return true
		}
	}
	return false
}
