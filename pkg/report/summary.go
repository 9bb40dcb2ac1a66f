package report

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Sriram-PR/seo-audit/pkg/config"
)

// maxSummaryDetails caps the detail list in human-readable summaries.
// The JSON report always carries every detail.
const maxSummaryDetails = 200

// Markdown renders a human-readable summary of r.
func Markdown(origin string, r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# SEO analysis for %s\n\n", origin)

	b.WriteString("## Totals\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	if r.Sitemaps != nil {
		fmt.Fprintf(&b, "| Sitemap locations | %d |\n", r.Sitemaps.Total)
		fmt.Fprintf(&b, "| Unique sitemap URLs | %d |\n", len(r.Sitemaps.URLs))
	}
	if r.PageData != nil {
		fmt.Fprintf(&b, "| Pages scheduled | %d |\n", r.PageData.Total)
		fmt.Fprintf(&b, "| Pages without error | %d |\n", r.PageData.TotalWithoutError)
		fmt.Fprintf(&b, "| Pages with error | %d |\n", r.PageData.TotalWithError)
		fmt.Fprintf(&b, "| Multilingual | %t |\n", r.PageData.IsMultiLang)
	}
	b.WriteString("\n")

	if r.PageData != nil && len(r.PageData.ByError) > 0 {
		b.WriteString("## Errors by status\n\n")
		keys := make([]string, 0, len(r.PageData.ByError))
		for k := range r.PageData.ByError {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: %d\n", k, r.PageData.ByError[k].Total)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Findings\n\n")
	if len(r.Analysis.Overall) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}
	for _, o := range r.Analysis.Overall {
		fmt.Fprintf(&b, "- %s\n", o)
	}

	b.WriteString("\n## Details\n\n")
	for i, d := range r.Analysis.Details {
		if i == maxSummaryDetails {
			fmt.Fprintf(&b, "\n_%d more in the JSON report._\n", len(r.Analysis.Details)-maxSummaryDetails)
			break
		}
		fmt.Fprintf(&b, "1. %s\n", escapeMarkdown(d))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "<", "&lt;", ">", "&gt;")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderHTML converts a Markdown summary into a standalone HTML page.
func RenderHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("rendering summary: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	out.WriteString(html.EscapeString(title))
	out.WriteString("</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}


// WriteSummaries writes the summary formats enabled in cfg next to the JSON
// report and returns the written paths.
func WriteSummaries(cfg *config.AppConfig, origin string, r *Report) ([]string, error) {
	if len(cfg.SummaryFormats) == 0 {
		return nil, nil
	}
	base := BaseName(origin)
	markdown := Markdown(origin, r)

	var paths []string
	if cfg.WantsSummary(config.SummaryMarkdown) {
		p, err := writeFile(cfg.OutputDir, base+".md", []byte(markdown))
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	if cfg.WantsSummary(config.SummaryHTML) {
		html, err := RenderHTML("SEO analysis for "+origin, markdown)
		if err != nil {
			return paths, err
		}
		p, err := writeFile(cfg.OutputDir, base+".html", html)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
