package render

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// CopyText writes the plain text of content to the system clipboard and
// returns the copied text.
func CopyText(content string) (string, error) {
	text, err := PlainText(content)
	if err != nil {
		return "", err
	}
	if err := writeClipboard(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return text, nil
}
