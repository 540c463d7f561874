package usecase

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"portfolio-site/internal/domain"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthYear renders "2023-04" or "2023-04-17" as "April 2023". Anything
// else is returned unchanged.
func monthYear(s string) string {
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Format("January 2006")
		}
	}
	return s
}

// linkLabel shortens a URL to its registrable domain, e.g.
// "https://www.credly.com/badges/x" becomes "credly.com".
func linkLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

// RichBlock is one flattened block of a rich-text document.
type RichBlock struct {
	Tag  string // p, h, li, pre or quote
	Text string
}

// flattenRichText walks an editor document and returns its text blocks in
// document order. Marks and attributes are dropped.
func flattenRichText(doc domain.RichText) []RichBlock {
	var out []RichBlock
	var walk func(node map[string]any, tag string)
	walk = func(node map[string]any, tag string) {
		typ, _ := node["type"].(string)
		switch typ {
		case "paragraph", "heading", "codeBlock":
			t := map[string]string{"paragraph": tag, "heading": "h", "codeBlock": "pre"}[typ]
			if t == "" {
				t = "p"
			}
			if text := strings.TrimSpace(nodeText(node)); text != "" {
				out = append(out, RichBlock{Tag: t, Text: text})
			}
		case "listItem":
			if text := strings.TrimSpace(nodeText(node)); text != "" {
				out = append(out, RichBlock{Tag: "li", Text: text})
			}
		case "blockquote":
			for _, child := range children(node) {
				walk(child, "quote")
			}
		default:
			for _, child := range children(node) {
				walk(child, tag)
			}
		}
	}
	if doc != nil {
		walk(doc, "")
	}
	return out
}

func children(node map[string]any) []map[string]any {
	raw, _ := node["content"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, c := range raw {
		if m, ok := c.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func nodeText(node map[string]any) string {
	if typ, _ := node["type"].(string); typ == "hardBreak" {
		return "\n"
	}
	if s, ok := node["text"].(string); ok {
		return s
	}
	var b strings.Builder
	kids := children(node)
	for i, c := range kids {
		if i > 0 && isBlock(c) {
			b.WriteString(" ")
		}
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func isBlock(node map[string]any) bool {
	typ, _ := node["type"].(string)
	return typ == "paragraph" || typ == "bulletList" || typ == "orderedList" || typ == "listItem"
}

var templateFuncs = template.FuncMap{
	"monthYear": monthYear,
	"linkLabel": linkLabel,
	"join":      strings.Join,
	"rich":      flattenRichText,
	"hasPrefix": strings.HasPrefix,
}
