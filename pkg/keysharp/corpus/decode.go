package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
)

// Extensions lists the file extensions the loader understands.
var Extensions = []string{".txt", ".html", ".htm", ".jsonl"}

// Supported reports whether the file name has a known extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode turns the raw file contents into corpus text according to the
// extension of name.
func Decode(name string, r io.Reader, logger *log.Logger) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(data), nil
	case ".html", ".htm":
		return decodeHTML(r)
	case ".jsonl":
		return decodeJSONL(name, r, logger)
	default:
		return "", fmt.Errorf("%s: unsupported extension: %w", name, internalerr.ErrInvalidInput)
	}
}

// blockElements break the text flow. A newline is written around each one
// so words in adjacent blocks stay apart.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "title": true,
	"tr": true, "ul": true,
}

// decodeHTML returns the visible text of an HTML document. Inline elements
// are joined as written; block elements are separated by single newlines.
func decodeHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	breakLine := func() {
		s := buf.String()
		if s != "" && s[len(s)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
			block = blockElements[n.Data]
		}
		if block {
			breakLine()
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			breakLine()
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

// document is one JSONL line. Only the text body is analyzed.
type document struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// decodeJSONL joins the text of every document with newlines. Malformed
// lines are skipped with a warning.
func decodeJSONL(name string, r io.Reader, logger *log.Logger) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var parts []string
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var doc document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			if logger != nil {
				logger.Warn("skipping malformed line", "file", name, "line", line, "err", err)
			}
			continue
		}
		if doc.Text == "" {
			continue
		}
		parts = append(parts, doc.Text)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no documents with text in %s: %w", name, internalerr.ErrInvalidInput)
	}

	return strings.Join(parts, "\n"), nil
}
