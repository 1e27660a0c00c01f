// ABOUTME: Plain-text rendering of dashboard widgets
// ABOUTME: Metric, bar, pie and line widgets each get a compact terminal panel
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/socialpulse/models"
)

// sizeWidth maps widget sizes to bar widths.
var sizeWidth = map[string]int{
	models.SizeSmall:  10,
	models.SizeMedium: 20,
	models.SizeLarge:  30,
}

// RenderWidgets renders every widget of d in order.
func RenderWidgets(d models.Dashboard) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s (%d widgets)\n\n", strings.ToUpper(d.Name), len(d.Widgets)))
	for _, w := range d.Widgets {
		out.WriteString(RenderWidget(w))
		out.WriteString("\n")
	}
	return out.String()
}

func RenderWidget(w models.Widget) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("┌ %s [%s · %s] %s\n", w.Title, w.Type, w.Size, w.ID))

	width, ok := sizeWidth[w.Size]
	if !ok {
		width = sizeWidth[models.SizeMedium]
	}

	switch w.Type {
	case models.WidgetMetric:
		if len(w.Data) > 0 {
			p := w.Data[0]
			out.WriteString(fmt.Sprintf("│ %.0f  ▲ %.1f%%\n", p.Value, p.Change))
		}
	case models.WidgetBar:
		renderBars(&out, w.Data, width)
	case models.WidgetPie:
		renderShares(&out, w.Data, width)
	case models.WidgetLine:
		renderSeries(&out, w.Data)
	default:
		out.WriteString("│ (unsupported widget type)\n")
	}

	out.WriteString("└\n")
	return out.String()
}

func renderBars(out *strings.Builder, data []models.DataPoint, width int) {
	stacked := false
	limit := 0.0
	for _, p := range data {
		total := p.Value
		if p.Positive+p.Negative+p.Neutral > 0 {
			stacked = true
			total = p.Positive + p.Negative + p.Neutral
		}
		if total > limit {
			limit = total
		}
	}

	for _, p := range data {
		if stacked {
			out.WriteString(fmt.Sprintf("│ %-10s +%-3.0f -%-3.0f ~%-3.0f %s\n",
				p.Name, p.Positive, p.Negative, p.Neutral, bar(p.Positive, limit, width)))
			continue
		}
		out.WriteString(fmt.Sprintf("│ %-10s %s %.0f\n", p.Name, bar(p.Value, limit, width), p.Value))
	}
}

func renderShares(out *strings.Builder, data []models.DataPoint, width int) {
	total := 0.0
	for _, p := range data {
		total += p.Value
	}
	for _, p := range data {
		pct := 0.0
		if total > 0 {
			pct = p.Value / total * 100
		}
		out.WriteString(fmt.Sprintf("│ %-10s %s %3.0f%%\n", p.Name, bar(pct, 100, width), pct))
	}
}

// renderSeries draws a sparkline using eighth-block characters.
func renderSeries(out *strings.Builder, data []models.DataPoint) {
	if len(data) == 0 {
		return
	}
	ticks := []rune("▁▂▃▄▅▆▇█")
	lo, hi := data[0].Value, data[0].Value
	for _, p := range data {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}

	var line strings.Builder
	for _, p := range data {
		idx := 0
		if hi > lo {
			idx = int((p.Value - lo) / (hi - lo) * float64(len(ticks)-1))
		}
		line.WriteRune(ticks[idx])
	}

	out.WriteString(fmt.Sprintf("│ %s  %s→%s  %.0f→%.0f\n", line.String(), data[0].Name, data[len(data)-1].Name, data[0].Value, data[len(data)-1].Value))
}
