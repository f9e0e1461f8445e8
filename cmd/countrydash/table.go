package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/okian/countrydash/internal/domain/filter"
	"github.com/okian/countrydash/internal/domain/sorting"
	view "github.com/okian/countrydash/internal/domain/table"
	"github.com/okian/countrydash/pkg/logger"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tableFlags struct {
	search    string
	min, max  string
	sort      string
	direction string
}

func newTableCmd(c *cli) *cobra.Command {
	var f tableFlags
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the filtered and sorted country table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.table(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive search text")
	cmd.Flags().StringVar(&f.min, "min-population", "", "minimum population (default 0)")
	cmd.Flags().StringVar(&f.max, "max-population", "", "maximum population (default unbounded)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort column: name, currency, language, population, area")
	cmd.Flags().StringVar(&f.direction, "direction", "asc", "sort direction: asc or desc")
	return cmd
}

func (c *cli) table(ctx context.Context, out io.Writer, f tableFlags) error {
	criteria, err := filter.ParseCriteria(f.search, f.min, f.max)
	if err != nil {
		return err
	}
	key, err := sorting.ParseKey(f.sort)
	if err != nil {
		return err
	}
	dir, err := sorting.ParseDirection(f.direction)
	if err != nil {
		return err
	}

	svc := c.service("")
	if err := svc.Refresh(ctx); err != nil {
		c.log.Warn(ctx, "country records unavailable, showing empty table", logger.Error(err))
	}
	v, err := svc.Table(ctx, criteria, sorting.Spec{Key: key, Direction: dir})
	if err != nil {
		return err
	}
	if v.Invalid {
		_, err := fmt.Fprintln(out, errorStyle.Render(v.Message))
		return err
	}
	_, err = fmt.Fprintln(out, renderTable(v))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d of %d countries\n", len(v.Rows), v.Total)
	return err
}

func renderTable(v view.View) string {
	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = r.Cells()
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(v.Headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 3:
				return numericStyle
			default:
				return cellStyle
			}
		}).
		String()
}
