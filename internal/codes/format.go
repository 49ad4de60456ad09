package codes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
)

// Format is a textual layout for a list of codes.
type Format string

// Supported layouts.
const (
	FormatNumbered Format = "numbered"
	FormatRaw      Format = "raw"
	FormatSpace    Format = "space"
	FormatComma    Format = "comma"
)

// Display strings shared by the UI and the CLI.
const (
	NumberedHeader    = "--- Pokémon TCG Codes (copy this block) ---"
	EmptyBlockMessage = "No codes in this block"
	EmptyStoreMessage = "No codes found"
)

var formatOrder = []Format{FormatNumbered, FormatRaw, FormatSpace, FormatComma}

var formatLabels = map[Format]string{
	FormatNumbered: "Numbered List",
	FormatRaw:      "Raw Codes (One per line)",
	FormatSpace:    "Space-Separated",
	FormatComma:    "Comma-Separated",
}

// Formats returns every layout in selector order.
func Formats() []Format {
	out := make([]Format, len(formatOrder))
	copy(out, formatOrder)
	return out
}

// Label is the human readable name of the layout.
func (f Format) Label() string {
	if label, ok := formatLabels[f]; ok {
		return label
	}
	return string(f)
}

// Valid reports whether f is a known layout.
func (f Format) Valid() bool {
	_, ok := formatLabels[f]
	return ok
}

// Next cycles to the following layout.
func (f Format) Next() Format {
	for i, candidate := range formatOrder {
		if candidate == f {
			return formatOrder[(i+1)%len(formatOrder)]
		}
	}
	return FormatNumbered
}

// ParseFormat accepts a layout key or its label, case-insensitively.
func ParseFormat(s string) (Format, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, f := range formatOrder {
		if needle == string(f) || needle == strings.ToLower(f.Label()) {
			return f, nil
		}
	}
	switch needle {
	case "list", "numbered-list":
		return FormatNumbered, nil
	case "lines", "one-per-line":
		return FormatRaw, nil
	case "spaces", "space-separated":
		return FormatSpace, nil
	case "csv", "commas", "comma-separated":
		return FormatComma, nil
	}
	return "", fmt.Errorf("%w: %q (want numbered, raw, space or comma)", common.ErrInvalidFormat, s)
}

// Render lays out a block for on-screen display. Numbered output carries
// the fixed header; an empty block renders EmptyBlockMessage.
func Render(b Block, f Format) string {
	if b.Empty() {
		return EmptyBlockMessage
	}
	if f == FormatNumbered {
		return NumberedHeader + "\n\n" + numbered(b.Codes, b.Start)
	}
	return join(b.Codes, f)
}

// RenderClipboard lays out a block for copying. It matches Render without
// the numbered header.
func RenderClipboard(b Block, f Format) string {
	if b.Empty() {
		return ""
	}
	if f == FormatNumbered {
		return numbered(b.Codes, b.Start)
	}
	return join(b.Codes, f)
}

func numbered(codes []string, start int) string {
	var sb strings.Builder
	for i, code := range codes {
		sb.WriteString(strconv.Itoa(start + i + 1))
		sb.WriteString(". ")
		sb.WriteString(code)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func join(codes []string, f Format) string {
	switch f {
	case FormatSpace:
		return strings.Join(codes, " ")
	case FormatComma:
		return strings.Join(codes, ",")
	default:
		return strings.Join(codes, "\n")
	}
}
