package web

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"userAnalytics/internal/dashboard"
)

const donutOuterRadius = 70 // percent of the container

type chartRenderer interface {
	Render(w io.Writer) error
}

// buildChart returns the echarts page for chart views. Text and table views
// have no chart and report false.
func buildChart(p dashboard.Page) (chartRenderer, bool) {
	switch p.Kind {
	case dashboard.KindHistogram:
		return histogramChart(p), true
	case dashboard.KindDonut:
		return donutChart(p), true
	case dashboard.KindBar:
		return barChart(p), true
	case dashboard.KindLine:
		return lineChart(p), true
	}
	return nil, false
}

func globalOpts(p dashboard.Page) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: p.Title, Width: "100%", Height: "460px"}),
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	}
}

func axisOpts(p dashboard.Page) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: p.XAxis}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YAxis}),
	}
}

func histogramChart(p dashboard.Page) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(p), axisOpts(p)...)...)

	labels := make([]string, len(p.Bins))
	data := make([]opts.BarData, len(p.Bins))
	for i, b := range p.Bins {
		labels[i] = fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
		data[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels).AddSeries(p.YAxis, data)
	return bar
}

func donutChart(p dashboard.Page) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOpts(p)...)

	data := make([]opts.PieData, len(p.Slices))
	for i, s := range p.Slices {
		data[i] = opts.PieData{Name: s.Label, Value: s.Count}
	}
	inner := p.Hole * donutOuterRadius
	pie.AddSeries("email_domain", data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{fmt.Sprintf("%.0f%%", inner), fmt.Sprintf("%d%%", donutOuterRadius)},
			}),
			charts.WithLabelOpts(opts.Label{Formatter: "{b}: {d}%"}),
		)
	return pie
}

func barChart(p dashboard.Page) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(p), axisOpts(p)...)...)

	labels := make([]string, len(p.Bars))
	data := make([]opts.BarData, len(p.Bars))
	for i, b := range p.Bars {
		labels[i] = fmt.Sprint(b.NameLength)
		data[i] = opts.BarData{Value: b.Count}
	}
	bar.SetXAxis(labels).AddSeries(p.YAxis, data)
	return bar
}

func lineChart(p dashboard.Page) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(p), axisOpts(p)...)...)

	labels := make([]string, len(p.Series))
	data := make([]opts.LineData, len(p.Series))
	for i, pt := range p.Series {
		labels[i] = pt.Date.Format("2006-01-02")
		data[i] = opts.LineData{Value: pt.Count}
	}
	line.SetXAxis(labels).AddSeries("user_count", data)
	return line
}
