package track

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReportKind says which recognized field the report body carried.
type ReportKind int

const (
	ReportNone ReportKind = iota
	ReportTyped
	ReportCustom
)

// ReportPayload is the parsed report body. The body is a flat JSON
// object; the two recognized keys are reportType and customReport,
// everything else is ignored. When both appear the last recognized key
// in document order determines the payload (last key wins). Empty
// string values are skipped, matching the presence checks tracking
// clients rely on.
type ReportPayload struct {
	Kind        ReportKind
	Type        string
	Description string
}

// ParseReport walks the JSON object in document order so that key
// precedence is well defined regardless of Go map iteration.
func ParseReport(r io.Reader) (ReportPayload, error) {
	var p ReportPayload

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return p, fmt.Errorf("failed to read report body: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return p, fmt.Errorf("report body is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return p, fmt.Errorf("failed to read report field: %w", err)
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return p, fmt.Errorf("failed to read report value: %w", err)
		}
		s, ok := value.(string)
		if !ok || s == "" {
			continue
		}

		switch key {
		case "reportType":
			p = ReportPayload{Kind: ReportTyped, Type: s}
		case "customReport":
			p = ReportPayload{Kind: ReportCustom, Description: s}
		}
	}

	return p, nil
}
