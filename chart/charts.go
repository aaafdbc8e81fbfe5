package chart

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 网页曲线
type Charts struct {
	Curves
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	x := make([]string, len(c.Displacement))
	for i, d := range c.Displacement {
		x[i] = strconv.FormatFloat(d, 'g', 6, 64)
	}
	lineM := c.newLine("电压幅值", "差动输出电压幅值随位移变化曲线", "Voltage Magnitude (V)")
	lineM.SetXAxis(x).AddSeries("|E|", lineData(c.Magnitude), lineOpts)
	lineP := c.newLine("电压相位", "差动输出电压相位随位移变化曲线", "Voltage Phase Shift (Degrees)")
	lineP.SetXAxis(x).AddSeries("∠E", lineData(c.Phase), lineOpts)

	// 构建界面
	page := components.NewPage().SetPageTitle("LVDT")
	page.AddCharts(
		lineM,
		lineP,
	)
	return page.Render(w)
}

func (c *Charts) newLine(title, subtitle, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: c.XLabel(),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	return line
}

var lineOpts = charts.WithLineChartOpts(opts.LineChart{
	ShowSymbol: opts.Bool(true),
})

func lineData(v []float64) []opts.LineData {
	items := make([]opts.LineData, len(v))
	for i, t := range v {
		items[i].Value = t
	}
	return items
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { log.Println(err) }
