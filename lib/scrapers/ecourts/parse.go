package ecourts

import (
	"encoding/json"
	"log/slog"
	"strings"

	"causelist-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the portal marks "-- Select --" entries with a zero value
const placeholderOption = "0"

type option struct {
	Value string
	Text  string
}

// extractOptions locates a select control by trying each selector in
// priority order, returning the non-placeholder options of the first
// control that exists. No matching control yields nil.
func extractOptions(doc *goquery.Document, selectors ...string) []option {
	for _, selector := range selectors {
		control := doc.Find(selector).First()
		if control.Length() == 0 {
			continue
		}
		return optionValues(control)
	}
	return nil
}

// parseOptionFragment reads options out of a bare markup fragment, the
// shape the portal embeds inside its JSON payloads.
func parseOptionFragment(markup string) []option {
	doc, err := htmlutil.Fragment(markup)
	if err != nil {
		slog.Warn("failed to parse option fragment", "err", err)
		return nil
	}
	return optionValues(doc.Selection)
}

func optionValues(control *goquery.Selection) []option {
	var opts []option
	control.Find("option").Each(func(_ int, o *goquery.Selection) {
		value := strings.TrimSpace(o.AttrOr("value", ""))
		text := strings.TrimSpace(o.Text())
		if value == "" || value == placeholderOption {
			return
		}
		opts = append(opts, option{Value: value, Text: text})
	})
	return opts
}

// extractJSONPayload pulls the JSON object out of a portal response.
// Responses are sometimes prefixed with debug noise, so parsing starts
// at the first plausible object boundary. Anything unparseable yields
// an empty map, never an error.
func extractJSONPayload(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return map[string]any{}
	}
	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, `{"`)
		if start < 0 {
			return map[string]any{}
		}
		text = text[start:]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		slog.Warn("failed to decode portal json payload", "err", err)
		return map[string]any{}
	}
	if payload == nil {
		return map[string]any{}
	}
	return payload
}

// extractTableRows returns the data rows of the first table in the
// markup: header row skipped, cell text trimmed, rows with fewer than
// minCols cells dropped.
func extractTableRows(markup string, minCols int) [][]string {
	doc, err := htmlutil.Fragment(markup)
	if err != nil {
		slog.Warn("failed to parse table fragment", "err", err)
		return nil
	}

	var rows [][]string
	doc.Find("table").First().Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			// portal cells occasionally carry stray control characters
			cells = append(cells, strings.TrimSpace(htmlutil.RemoveNonPrintable(td.Text())))
		})
		if len(cells) >= minCols {
			rows = append(rows, cells)
		}
	})
	return rows
}
