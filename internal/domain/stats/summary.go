package stats

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Lines renders the dashboard summary, one statistic per line, with
// English digit grouping.
func (s Stats) Lines() []string {
	p := message.NewPrinter(language.English)
	neighbours := "0"
	if s.Count > 0 {
		neighbours = fmt.Sprintf("%.2f", s.AverageNeighbours)
	}
	return []string{
		p.Sprintf("Total number of countries: %d", s.Count),
		"Top 5 most common languages: " + strings.Join(s.TopLanguages, ", "),
		"Top 5 most common currencies: " + strings.Join(s.TopCurrencies, ", "),
		p.Sprintf("Average area: %d", s.AverageArea),
		p.Sprintf("Average population: %d", s.AveragePopulation),
		"Average number of neighbours: " + neighbours,
	}
}
