package codes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
)

// Container is an export file format.
type Container string

// Supported export containers.
const (
	ContainerText     Container = "txt"
	ContainerMarkdown Container = "md"
)

// Export document strings.
const (
	MarkdownTitle      = "# Pokémon TCG Codes"
	EmptyExportMessage = "No codes available to export."
	DefaultExportBase  = "pokemon_tcg_codes"
)

var markdownSections = map[Format]string{
	FormatNumbered: "Numbered List",
	FormatRaw:      "Raw Codes",
	FormatSpace:    "Space-Separated",
	FormatComma:    "Comma-Separated",
}

// ExportResult describes the outcome of ExportFile.
type ExportResult struct {
	Path      string
	Container Container
	Message   string
	Count     int
}

// Written reports whether a file was produced.
func (r ExportResult) Written() bool {
	return r.Count > 0
}

// ParseContainer accepts "txt", "md", "markdown" or a file name whose
// extension names the container.
func ParseContainer(s string) (Container, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimPrefix(ext, ".")
	}
	switch name {
	case "txt", "text":
		return ContainerText, nil
	case "md", "markdown":
		return ContainerMarkdown, nil
	}
	return "", fmt.Errorf("%w: export container %q (want txt or md)", common.ErrInvalidFormat, s)
}

// DefaultFileName is the suggested export file name for c.
func DefaultFileName(c Container) string {
	return DefaultExportBase + "." + string(c)
}

// WriteText writes one code per line.
func WriteText(w io.Writer, codes []string) error {
	bw := bufio.NewWriter(w)
	for _, code := range codes {
		if _, err := bw.WriteString(code + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMarkdown writes a document with a title, a count line and one
// section rendering codes in layout f.
func WriteMarkdown(w io.Writer, codes []string, f Format) error {
	if !f.Valid() {
		f = FormatNumbered
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", MarkdownTitle)
	fmt.Fprintf(bw, "*Exported from CodeDex Pro - %d codes*\n\n", len(codes))
	fmt.Fprintf(bw, "## %s\n\n", markdownSections[f])

	switch f {
	case FormatNumbered:
		for i, code := range codes {
			fmt.Fprintf(bw, "%d. `%s`\n", i+1, code)
		}
	case FormatRaw:
		bw.WriteString("```\n")
		for _, code := range codes {
			bw.WriteString(code + "\n")
		}
		bw.WriteString("```\n")
	default:
		bw.WriteString("```\n")
		bw.WriteString(join(codes, f))
		bw.WriteString("\n```\n")
	}

	return bw.Flush()
}

// ExportFile writes the full code list to path. Plain text ignores f;
// markdown renders its section in layout f. An empty list writes nothing
// and reports EmptyExportMessage.
func ExportFile(path string, c Container, codes []string, f Format) (ExportResult, error) {
	result := ExportResult{Path: path, Container: c}
	if len(codes) == 0 {
		result.Message = EmptyExportMessage
		return result, nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".codedex-export-*")
	if err != nil {
		return result, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	switch c {
	case ContainerMarkdown:
		err = WriteMarkdown(tmp, codes, f)
	default:
		err = WriteText(tmp, codes)
	}
	if err != nil {
		_ = tmp.Close()
		return result, fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return result, fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return result, fmt.Errorf("failed to set export file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return result, fmt.Errorf("failed to write export file %s: %w", path, err)
	}

	result.Count = len(codes)
	result.Message = fmt.Sprintf("Successfully exported %d codes to %s", len(codes), path)
	return result, nil
}
