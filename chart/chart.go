// Package chart 绘制差动电压的幅值与相位曲线。
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"

	"lvdt/sweep"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// 输出文件名
const (
	MagnitudeFile = "emf_magnitude.png"
	PhaseFile     = "emf_phase.png"
)

// Curves 幅值与相位随位移变化的曲线数据。
type Curves struct {
	Displacement []float64
	Magnitude    []float64 // V
	Phase        []float64 // 度
	Units        string
}

// FromResult 从扫描结果取曲线数据。
func FromResult(r *sweep.Result, units string) Curves {
	return Curves{
		Displacement: r.Displacement,
		Magnitude:    r.Magnitude,
		Phase:        r.Phase,
		Units:        units,
	}
}

// Validate 检查各序列长度一致。
func (c Curves) Validate() error {
	n := len(c.Displacement)
	if n == 0 {
		return fmt.Errorf("曲线数据为空")
	}
	if len(c.Magnitude) != n || len(c.Phase) != n {
		return fmt.Errorf("曲线数据长度不一致: %d/%d/%d", n, len(c.Magnitude), len(c.Phase))
	}
	return nil
}

// XLabel 横轴标签。
func (c Curves) XLabel() string { return fmt.Sprintf("Distance (%s)", c.Units) }

// MagnitudePlot 幅值曲线。
func (c Curves) MagnitudePlot() (*plot.Plot, error) {
	return linePlot(c.Displacement, c.Magnitude, c.XLabel(), "Voltage Magnitude (V)",
		color.RGBA{R: 31, G: 119, B: 180, A: 255})
}

// PhasePlot 相位曲线。
func (c Curves) PhasePlot() (*plot.Plot, error) {
	return linePlot(c.Displacement, c.Phase, c.XLabel(), "Voltage Phase Shift (Degrees)",
		color.RGBA{R: 255, G: 127, B: 14, A: 255})
}

// SavePNG 把两条曲线分别保存到 dir 下，返回写出的文件。
func SavePNG(dir string, c Curves) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mag, err := c.MagnitudePlot()
	if err != nil {
		return nil, err
	}
	phase, err := c.PhasePlot()
	if err != nil {
		return nil, err
	}
	files := []string{filepath.Join(dir, MagnitudeFile), filepath.Join(dir, PhaseFile)}
	for i, p := range []*plot.Plot{mag, phase} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, files[i]); err != nil {
			return nil, fmt.Errorf("保存曲线失败 %s: %w", files[i], err)
		}
	}
	return files, nil
}

func linePlot(x, y []float64, xLabel, yLabel string, c color.Color) (*plot.Plot, error) {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", yLabel, err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = c

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid(), line)
	return p, nil
}
