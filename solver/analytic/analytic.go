// Package analytic 提供不依赖外部求解器的闭式近似求解会话。
//
// 次级线圈中心截面的磁通按以下近似计算：
//
//	B0  = μ0·N·I / h                        (初级线圈内部轴向磁密)
//	g   = (1 + (z/R)²)^(-3/2)               (离开初级中心 z 处的衰减)
//	k   = 1 + (μa-1)·(rc/a)²·overlap/h2      (铁芯与次级线圈重叠部分的增强)
//	φ   = B0·g·k·a²/2                        (半径 a 圆盘的每弧度磁通)
//
// 上下两个次级线圈完全对称，铁芯居中时差动输出严格为零。
package analytic

import (
	"context"
	"fmt"
	"math"
	"os"

	"lvdt/config"
	"lvdt/geometry"
	"lvdt/solver"
)

// mu0 真空磁导率(H/m)。
const mu0 = 4 * math.Pi * 1e-7

// ApparentMu 开路磁路中铁芯的表观相对磁导率，远小于材料磁导率。
var ApparentMu = 40.0

// Session 闭式近似求解会话。
type Session struct {
	cfg    *config.Config
	Bitmap bool // 是否输出场图
}

var _ solver.Session = (*Session)(nil)

// Open 打开会话并创建输出目录。
func Open(_ context.Context, cfg *config.Config) (*Session, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	return &Session{cfg: cfg, Bitmap: true}, nil
}

// Opener 供 solver.With 使用。
func Opener(cfg *config.Config) solver.Opener {
	return func(ctx context.Context) (solver.Session, error) { return Open(ctx, cfg) }
}

// Solve 计算两个次级线圈的每弧度磁通，并按需输出场图。
func (s *Session) Solve(ctx context.Context, m *geometry.Model, index int) (solver.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return solver.Measurement{}, err
	}
	if err := m.Validate(); err != nil {
		return solver.Measurement{}, err
	}
	top, err := Flux(m, m.Top, geometry.RegionTop)
	if err != nil {
		return solver.Measurement{}, err
	}
	bottom, err := Flux(m, m.Bottom, geometry.RegionBottom)
	if err != nil {
		return solver.Measurement{}, err
	}
	if s.Bitmap {
		if err := Draw(m, s.cfg.BitmapName(index)); err != nil {
			return solver.Measurement{}, fmt.Errorf("场图输出失败: %w", err)
		}
	}
	return solver.Measurement{Top: top, Bottom: bottom}, nil
}

// Close 无外部资源。
func (s *Session) Close() error { return nil }

// Flux 近似计算路径 c 上的每弧度磁通，coil 为路径所在的次级线圈区域。
func Flux(m *geometry.Model, c geometry.Contour, coil string) (solver.LineIntegral, error) {
	scale, ok := config.UnitLength(m.Problem.Units)
	if !ok {
		return solver.LineIntegral{}, fmt.Errorf("未知长度单位: %q", m.Problem.Units)
	}
	primary, ok := m.Rect(geometry.RegionPrimary)
	if !ok {
		return solver.LineIntegral{}, fmt.Errorf("模型缺少初级线圈")
	}
	core, ok := m.Rect(geometry.RegionCore)
	if !ok {
		return solver.LineIntegral{}, fmt.Errorf("模型缺少铁芯")
	}
	secondary, ok := m.Rect(coil)
	if !ok {
		return solver.LineIntegral{}, fmt.Errorf("模型缺少次级线圈 %q", coil)
	}
	ampereTurns := 0.0
	for _, l := range m.Labels {
		if l.Block.Circuit == geometry.NoCircuit || !primary.Contains(l.At) {
			continue
		}
		circuit, _ := m.Circuit(l.Block.Circuit)
		ampereTurns += float64(l.Block.Turns) * circuit.Current
	}

	b0 := mu0 * ampereTurns / (primary.Height() * scale)
	z := math.Abs(c.From.Y - primary.Center().Y)
	r := primary.Center().X
	g := math.Pow(1+(z/r)*(z/r), -1.5)

	a := c.Length()
	rc := math.Min(core.Outer(), a)
	k := 1 + (ApparentMu-1)*(rc/a)*(rc/a)*core.AxialOverlap(secondary)/secondary.Height()

	radius := a * scale
	flux := b0 * g * k * radius * radius / 2
	return solver.LineIntegral{flux, flux / radius}, nil
}
