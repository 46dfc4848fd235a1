package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Reader reads text from the system clipboard.
type Reader interface {
	ReadText() (string, error)
}

// System reads the OS clipboard via github.com/atotto/clipboard.
type System struct{}

// ReadText returns the clipboard contents.
func (System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

var _ Reader = System{}
