package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VxVxN/trendingcompanies/internal/models"
)

const cardWidth = 72

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	eventStyle = lipgloss.NewStyle().Italic(true)
)

// WriteCards prints one bordered card per company, the border tinted with the
// company's brand color.
func WriteCards(w io.Writer, companies []models.Company) error {
	if len(companies) == 0 {
		_, err := fmt.Fprintln(w, "No trending companies available at the moment.")
		return err
	}

	for _, company := range companies {
		if _, err := fmt.Fprintln(w, card(company)); err != nil {
			return err
		}
	}

	return nil
}

func card(c models.Company) string {
	lines := []string{
		nameStyle.Render(c.DisplayName),
		metaStyle.Render(strings.Join([]string{c.CompanyTicker, c.CompanyCountry, c.ReportingCurrency}, " · ")),
	}

	if c.Description != "" {
		lines = append(lines, "", c.Description)
	}

	if event := c.LatestEvent(); event != nil {
		lines = append(lines, "", "Latest Report: "+eventStyle.Render(event.Summary())+" ("+event.DisplayDate()+")")
	}

	if c.LiveURL != "" {
		lines = append(lines, "", "Investor Relations: "+c.LiveURL)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		PaddingLeft(1).
		Width(cardWidth)
	if c.ColorSettings.BrandColor != "" {
		style = style.BorderForeground(lipgloss.Color(c.ColorSettings.BrandColor))
	}

	return style.Render(strings.Join(lines, "\n"))
}
