package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Barrsum/portfolio/internal/theme"
)

var (
	paletteTitle = lipgloss.NewStyle().Bold(true).Width(12)
	paletteLabel = lipgloss.NewStyle().Faint(true)
)

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the scene and hero text colors of every theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range theme.All() {
				fmt.Fprintln(cmd.OutOrStdout(), renderPalette(t))
			}
			return nil
		},
	}
}

// renderPalette draws one line of swatches for t.
func renderPalette(t theme.Theme) string {
	var b strings.Builder
	b.WriteString(paletteTitle.Render(t.DisplayName()))

	for _, hex := range theme.ScenePalette(t) {
		b.WriteString(swatch(hex))
	}

	hero := theme.HeroTextFor(t)
	b.WriteString(paletteLabel.Render(" text "))
	b.WriteString(swatch(hero.Color))
	b.WriteString(paletteLabel.Render(" glow "))
	b.WriteString(swatch(hero.Emissive))
	return b.String()
}

func swatch(hex string) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + hex + " "
}
