package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/atlas/internal/model"
)

// CardWidth is the outer width of one card, border included.
const CardWidth = 34

// CardLines are the text rows of a country card, unstyled by the frame.
func CardLines(t Theme, f PopulationFormatter, c model.Country, inner int) []string {
	return []string{
		t.CardName.Render(truncate(c.Name, inner)),
		detail(t, "Population", f.Format(c.Population), inner),
		detail(t, "Region", c.Region, inner),
		detail(t, "Capital", c.Capital, inner),
		t.Muted.Render(truncate(c.Flag, inner)),
	}
}

// Card renders one framed country card.
func Card(t Theme, f PopulationFormatter, c model.Country) string {
	inner := CardWidth - 4
	return t.Card.Width(CardWidth - 2).Render(strings.Join(CardLines(t, f, c, inner), "\n"))
}

// Grid lays cards out in as many columns as fit in width.
func Grid(cards []string, width int) string {
	cols := width / (CardWidth + 1)
	if cols < 1 {
		cols = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := i + cols
		if end > len(cards) {
			end = len(cards)
		}
		row := make([]string, 0, 2*(end-i))
		for j, c := range cards[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// NoResults is the affordance for an empty filtered list.
func NoResults(t Theme) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		t.SymNoResult,
		t.Title.Render("No countries found"),
		t.Muted.Render("Try adjusting your search or filter"),
	)
}

// Unavailable is the muted note shown under NoResults when the load failed.
func Unavailable(t Theme, err error) string {
	if err == nil {
		return ""
	}
	return t.Muted.Render("(" + err.Error() + ")")
}

func detail(t Theme, label, value string, inner int) string {
	value = truncate(value, inner-len(label)-2)
	return t.Label.Render(label+":") + " " + t.Detail.Render(value)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
