package analytic

import (
	"fmt"
	"image/color"

	"lvdt/geometry"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var regionColors = map[string]color.Color{
	geometry.RegionCore:    color.RGBA{R: 96, G: 96, B: 96, A: 255},
	geometry.RegionPrimary: color.RGBA{R: 214, G: 120, B: 40, A: 255},
	geometry.RegionTop:     color.RGBA{R: 60, G: 120, B: 200, A: 255},
	geometry.RegionBottom:  color.RGBA{R: 60, G: 170, B: 110, A: 255},
}

// Draw 把模型的区域与测量路径绘制为图片，格式由文件扩展名决定。
func Draw(m *geometry.Model, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("LVDT d = %g %s", m.Displacement, m.Problem.Units)
	p.X.Label.Text = "r"
	p.Y.Label.Text = "z"
	p.Legend.Top = true

	for _, r := range m.Rects {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: r.X1, Y: r.Y1}, {X: r.X2, Y: r.Y1}, {X: r.X2, Y: r.Y2}, {X: r.X1, Y: r.Y2},
		})
		if err != nil {
			return err
		}
		poly.Color = regionColors[r.Name]
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
		p.Legend.Add(r.Name, poly)
	}
	for _, c := range []geometry.Contour{m.Top, m.Bottom} {
		line, err := plotter.NewLine(plotter.XYs{{X: c.From.X, Y: c.From.Y}, {X: c.To.X, Y: c.To.Y}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(line)
	}
	return p.Save(4*vg.Inch, 6*vg.Inch, path)
}
