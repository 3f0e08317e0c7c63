// Package chart renders dashboard and analytics charts as PNG images.
package chart

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iho/hosteltracker/internal/domain"
)

// Generator renders charts in the colors of a theme.
type Generator struct {
	background drawing.Color
	foreground drawing.Color
	accent     drawing.Color
	symbol     string
}

// NewGenerator creates a generator for theme, labelling amounts with the
// currency symbol.
func NewGenerator(theme domain.Theme, symbol string) *Generator {
	g := &Generator{
		background: chart.ColorWhite,
		foreground: chart.ColorBlack,
		accent:     drawing.ColorFromHex("4f46e5"),
		symbol:     symbol,
	}
	if theme == domain.ThemeDark {
		g.background = drawing.ColorFromHex("0f172a")
		g.foreground = drawing.ColorFromHex("e2e8f0")
		g.accent = drawing.ColorFromHex("818cf8")
	}
	return g
}

func (g *Generator) backgroundStyle() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    40,
			Left:   20,
			Right:  20,
			Bottom: 20,
		},
		FillColor: g.background,
	}
}

func (g *Generator) textStyle() chart.Style {
	return chart.Style{
		FontSize:  11,
		FontColor: g.foreground,
	}
}

func (g *Generator) formatAmount(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%s%.0f", g.symbol, f)
	}
	return ""
}

// WeeklyBar renders one bar per day of the spending series.
func (g *Generator) WeeklyBar(points []domain.DailyPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no days to chart", domain.ErrInvalidInput)
	}

	bars := make([]chart.Value, len(points))
	peak := 0.0
	for i, p := range points {
		v := max(p.Amount.InexactFloat64(), 0)
		if v > peak {
			peak = v
		}
		bars[i] = chart.Value{
			Label: p.Label,
			Value: v,
			Style: chart.Style{
				FillColor:   g.accent,
				StrokeColor: g.accent,
			},
		}
	}
	if peak == 0 {
		// An all-zero range cannot be scaled.
		peak = 1
	}

	graph := chart.BarChart{
		Title:      "Spending, last 7 days",
		TitleStyle: g.textStyle(),
		Width:      700,
		Height:     400,
		BarWidth:   60,
		Background: g.backgroundStyle(),
		XAxis:      g.textStyle(),
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: peak},
			ValueFormatter: g.formatAmount,
			Style:          g.textStyle(),
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render weekly chart: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryPie renders each category's share of expenses.
func (g *Generator) CategoryPie(totals []domain.CategoryTotal) ([]byte, error) {
	sum := decimal.Zero
	for _, t := range totals {
		if t.Total.IsPositive() {
			sum = sum.Add(t.Total)
		}
	}

	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		if !t.Total.IsPositive() {
			continue
		}
		share := t.Total.Div(sum).Mul(decimal.NewFromInt(100)).InexactFloat64()
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.0f%%", t.Category, share),
			Value: t.Total.InexactFloat64(),
			Style: g.textStyle(),
		})
	}
	if len(values) == 0 {
		values = append(values, chart.Value{Label: "No expenses", Value: 1, Style: g.textStyle()})
	}

	pie := chart.PieChart{
		Title:      "Expenses by category",
		TitleStyle: g.textStyle(),
		Width:      500,
		Height:     500,
		Values:     values,
		Background: g.backgroundStyle(),
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
