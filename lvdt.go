package lvdt

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"lvdt/chart"
	"lvdt/config"
	"lvdt/phasor"
	"lvdt/solver"
	"lvdt/sweep"
)

// Header 导出表格的表头。
const Header = "# displacement top bottom re im magnitude phase"

// Simulation LVDT 位移扫描仿真
type Simulation struct {
	Config *config.Config
	Open   solver.Opener
	Pacer  sweep.Pacer
	Logger *log.Logger // 为空时使用 log.Default()
}

// Run 打开求解会话执行完整扫描，结束后关闭会话。
func (sim *Simulation) Run(ctx context.Context) (res *sweep.Result, err error) {
	if sim.Open == nil {
		return nil, fmt.Errorf("未指定求解器")
	}
	err = solver.With(ctx, sim.Open, func(s solver.Session) error {
		sw, err := sweep.New(sim.Config, s, sim.Pacer)
		if err != nil {
			return err
		}
		if sim.Logger != nil {
			sw.Logger = sim.Logger
		}
		res, err = sw.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Plot 把幅值与相位曲线保存到输出目录。
func (sim *Simulation) Plot(res *sweep.Result) ([]string, error) {
	return chart.SavePNG(sim.Config.OutputDir, chart.FromResult(res, sim.Config.Units))
}

// Export 导出扫描结果表格
func Export(filename string, res *sweep.Result) error {
	if res.Len() != len(res.EMF) {
		return fmt.Errorf("扫描结果长度不一致: %w", phasor.ErrLength)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	writer.WriteString(Header)
	writer.WriteRune('\n')
	for i := 0; i < res.Len(); i++ {
		row := []float64{
			res.Displacement[i], res.Top[i], res.Bottom[i],
			real(res.EMF[i]), imag(res.EMF[i]), res.Magnitude[i], res.Phase[i],
		}
		for j, v := range row {
			if j > 0 {
				writer.WriteRune(' ')
			}
			writer.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		writer.WriteRune('\n')
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// Load 加载导出的扫描结果表格
func Load(filename string) (*sweep.Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	res := &sweep.Result{}
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 7 {
			return nil, fmt.Errorf("%s:%d: 需要 7 列，实际 %d 列", filename, n, len(fields))
		}
		var row [7]float64
		for i, f := range fields {
			if row[i], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
			}
		}
		res.Displacement = append(res.Displacement, row[0])
		res.Top = append(res.Top, row[1])
		res.Bottom = append(res.Bottom, row[2])
		res.EMF = append(res.EMF, complex(row[3], row[4]))
		res.Magnitude = append(res.Magnitude, row[5])
		res.Phase = append(res.Phase, row[6])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if res.Len() == 0 {
		return nil, fmt.Errorf("%s: 没有数据", filename)
	}
	return res, nil
}
