package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders result content as styled terminal text wrapped at width.
// A width of zero or less disables wrapping.
func Terminal(content string, width int) (string, error) {
	md, err := Markdown(content)
	if err != nil {
		return "", err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 0)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}
	return out, nil
}
