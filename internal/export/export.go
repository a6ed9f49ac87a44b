// Package export writes finished recipes to files and renders them for
// terminals.
package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/temirov/llm-recipes/internal/fsops"
	"github.com/temirov/llm-recipes/internal/markup"
	"github.com/temirov/llm-recipes/internal/recipe"
)

const (
	extensionHTML     = ".html"
	extensionHTM      = ".htm"
	extensionText     = ".txt"
	extensionMarkdown = ".md"

	exportFilePermissions = 0o644
	defaultWordWrap       = 80

	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"

	unsupportedExtensionErrorFormat = "unsupported export extension %q (use .html, .txt or .md)"
	writeExportErrorFormat          = "export recipe to %s: %w"
	createRendererErrorFormat       = "create terminal renderer: %w"
	renderRecipeErrorFormat         = "render recipe: %w"
)

// Format identifies the content written for a target file.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// FormatForPath picks the export format from the file extension.
func FormatForPath(filesystem fsops.FS, path string) (Format, error) {
	switch strings.ToLower(filesystem.Ext(path)) {
	case extensionHTML, extensionHTM:
		return FormatHTML, nil
	case extensionText, extensionMarkdown:
		return FormatText, nil
	default:
		return "", fmt.Errorf(unsupportedExtensionErrorFormat, filesystem.Ext(path))
	}
}

// Content returns the bytes written for result in format. HTML falls back to
// formatting the raw text when the result carries no markup.
func Content(result recipe.Result, format Format) []byte {
	if format == FormatHTML {
		if result.HTML != "" {
			return []byte(result.HTML)
		}
		return []byte(markup.Format(result.RawText))
	}
	return []byte(result.RawText)
}

// Write saves result to path, choosing the content by extension.
func Write(filesystem fsops.FS, path string, result recipe.Result) error {
	format, err := FormatForPath(filesystem, path)
	if err != nil {
		return err
	}
	if err := fsops.NewOps(filesystem).WriteAtomic(path, Content(result, format), exportFilePermissions); err != nil {
		return fmt.Errorf(writeExportErrorFormat, path, err)
	}
	return nil
}

// RenderTerminal renders raw recipe text as styled terminal output. style is
// one of dark, light or notty; anything else renders dark.
func RenderTerminal(rawText string, style string, wordWrap int) (string, error) {
	switch style {
	case StyleDark, StyleLight, StyleNoTTY:
	default:
		style = StyleDark
	}
	if wordWrap <= 0 {
		wordWrap = defaultWordWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf(createRendererErrorFormat, err)
	}
	rendered, err := renderer.Render(rawText)
	if err != nil {
		return "", fmt.Errorf(renderRecipeErrorFormat, err)
	}
	return rendered, nil
}
