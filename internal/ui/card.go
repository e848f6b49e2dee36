package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kindled/noaas/internal/reason"
)

// ReasonCard renders one reason inside a bordered card with its labels
// underneath, width-capped so long excuses wrap.
func ReasonCard(r reason.Reason) string {
	text := lipgloss.NewStyle().Width(56).Render(r.Text)

	meta := fmt.Sprintf("%s · %s · %s", r.Type, r.Tone, r.Topic)
	if len(r.Tags) > 0 {
		meta += "  [" + strings.Join(r.Tags, ", ") + "]"
	}

	body := text + "\n\n" + dimStyle.Render(meta) + "\n" + dimStyle.Render("id: "+r.ID)
	return cardStyle.Render(body)
}
