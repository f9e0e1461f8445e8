package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/okian/countrydash/internal/domain/chart"
	"github.com/okian/countrydash/internal/domain/stats"
	"github.com/okian/countrydash/pkg/logger"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	labelStyle = lipgloss.NewStyle().Width(24).MaxHeight(1).Align(lipgloss.Right).PaddingRight(1)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

func newDashboardCmd(c *cli) *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print aggregate statistics and the top 20 chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := chart.ParseMetric(metric)
			if err != nil {
				return err
			}
			return c.dashboard(cmd.Context(), cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().StringVarP(&metric, "metric", "m", string(chart.Population), "chart metric: population or area")
	return cmd
}

func (c *cli) dashboard(ctx context.Context, out io.Writer, metric chart.Metric) error {
	svc := c.service("")
	if err := svc.Refresh(ctx); err != nil {
		c.log.Warn(ctx, "country records unavailable, showing empty dashboard", logger.Error(err))
	}
	_, err := io.WriteString(out, renderDashboard(svc.Dashboard(ctx), svc.Chart(ctx, metric)))
	return err
}

func renderDashboard(s stats.Stats, series chart.Series) string {
	var b strings.Builder
	for _, line := range s.Lines() {
		b.WriteString(line + "\n")
	}

	b.WriteString(titleStyle.Render(series.Title) + "\n")
	b.WriteString(renderBars(series))
	return b.String()
}

func renderBars(series chart.Series) string {
	var highest float64
	for _, p := range series.Points {
		highest = math.Max(highest, p.Value)
	}
	p := message.NewPrinter(language.English)

	var b strings.Builder
	for _, pt := range series.Points {
		n := 0
		if highest > 0 {
			n = int(math.Round(pt.Value / highest * barWidth))
		}
		fmt.Fprintf(&b, "%s%s %s\n",
			labelStyle.Render(pt.Label),
			barStyle.Render(strings.Repeat("█", n)),
			p.Sprintf("%v", number.Decimal(pt.Value, number.MaxFractionDigits(3))),
		)
	}
	return b.String()
}
