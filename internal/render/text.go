package render

import (
	"fmt"
	"strings"

	"github.com/calvintech/inhouse-pos/internal/models"
)

// Text renders a section list as plain text, one blank line between
// sections. Used for email bodies and anywhere a PDF is overkill.
func Text(sections []models.DocumentSection) string {
	var b strings.Builder

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}

		if section.Title != "" {
			if section.Number > 0 {
				fmt.Fprintf(&b, "%d. %s\n", section.Number, section.Title)
			} else {
				b.WriteString(section.Title + "\n")
			}
		}
		if section.Body != "" {
			b.WriteString(section.Body + "\n")
		}
		for _, line := range section.Lines {
			if line.Index > 0 {
				b.WriteString("  ")
			}
			b.WriteString(line.Text + "\n")
		}
	}

	return b.String()
}
