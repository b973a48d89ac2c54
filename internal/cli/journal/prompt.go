package journal

import (
	"github.com/charmbracelet/huh"
)

// promptReflection opens a multi-line huh form for a mindful writing entry.
var promptReflection = func() (string, error) {
	var content string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Mindful writing").
				Description("What is on your mind right now?").
				CharLimit(4000).
				Value(&content),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return content, nil
}
