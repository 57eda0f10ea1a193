package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without options the style follows the terminal background.
func NewRenderer(opts ...glamour.TermRendererOption) (func(string) (string, error), error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
