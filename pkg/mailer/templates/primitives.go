package templates

import (
	"fmt"
	"strings"
)

// Markdown building blocks shared by all template bodies. Buttons use the
// inline syntax handled by the goldmark button extension; badges are code
// spans styled by the layout; tables are GFM pipe tables handled by the
// goldmark table extension.

func mdButton(label, url string) string {
	return fmt.Sprintf("[!button|%s](%s)", label, url)
}

func mdLink(label, url string) string {
	return fmt.Sprintf("[%s](%s)", label, url)
}

func mdBadge(text string) string {
	return "`" + text + "`"
}

func mdDivider() string {
	return "---"
}

func mdHeading(text string) string {
	return "## " + text
}

func mdList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func mdTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// blocks joins markdown blocks with blank lines, skipping empty ones.
func blocks(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n") + "\n"
}

// money renders an amount with its currency symbol, e.g. money("$", "100")
// returns "$100".
func money(currency, amount string) string {
	return currency + amount
}

// textLink renders a link for the plaintext body as "Label: URL".
func textLink(label, url string) string {
	if url == "" {
		return ""
	}
	return label + ": " + url
}

// textLines joins non-empty plaintext lines and terminates with a newline.
func textLines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n") + "\n"
}
