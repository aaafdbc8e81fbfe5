package geometry

import (
	"fmt"
	"math"
)

// NoCircuit 未连接电路时的电路名。
const NoCircuit = "<None>"

// Point 二维坐标点（轴对称问题中 X 为半径，Y 为轴向）。
type Point struct{ X, Y float64 }

// Problem 问题定义，对应 mi_probdef。
type Problem struct {
	Frequency float64 // 频率(Hz)
	Units     string  // 长度单位
	Type      string  // "planar" 或 "axi"
	Precision float64 // 线性求解精度
	Depth     float64 // 平面问题深度，轴对称时为 0
	MinAngle  float64 // 网格最小角(度)
}

// Rect 矩形区域，(X1,Y1) 与 (X2,Y2) 为对角顶点。
type Rect struct {
	Name           string
	X1, Y1, X2, Y2 float64
}

// Width 径向宽度。
func (r Rect) Width() float64 { return math.Abs(r.X2 - r.X1) }

// Height 轴向高度。
func (r Rect) Height() float64 { return math.Abs(r.Y2 - r.Y1) }

// Bottom 轴向下边界。
func (r Rect) Bottom() float64 { return math.Min(r.Y1, r.Y2) }

// Top 轴向上边界。
func (r Rect) Top() float64 { return math.Max(r.Y1, r.Y2) }

// Inner 内半径。
func (r Rect) Inner() float64 { return math.Min(r.X1, r.X2) }

// Outer 外半径。
func (r Rect) Outer() float64 { return math.Max(r.X1, r.X2) }

// Center 几何中心。
func (r Rect) Center() Point { return Point{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2} }

// Contains 判断点是否在矩形内（含边界）。
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Inner() && p.X <= r.Outer() && p.Y >= r.Bottom() && p.Y <= r.Top()
}

// AxialOverlap 两个矩形的轴向重叠长度。
func (r Rect) AxialOverlap(o Rect) float64 {
	return math.Max(0, math.Min(r.Top(), o.Top())-math.Max(r.Bottom(), o.Bottom()))
}

// BlockProp 区域属性，对应 mi_setblockprop。
type BlockProp struct {
	Material string  // 材料名称
	AutoMesh bool    // 自动网格
	MeshSize float64 // 网格尺寸（AutoMesh 为假时有效）
	Circuit  string  // 所属电路
	MagDir   float64 // 磁化方向
	Group    int     // 分组
	Turns    int     // 匝数
}

// Label 区域标签。
type Label struct {
	At    Point
	Block BlockProp
}

// Circuit 电路定义，对应 mi_addcircprop。
type Circuit struct {
	Name    string
	Current float64 // 电流(A)
	Series  bool    // 串联
}

// Contour 线积分路径。
type Contour struct{ From, To Point }

// Length 路径长度。
func (c Contour) Length() float64 { return math.Hypot(c.To.X-c.From.X, c.To.Y-c.From.Y) }

// DensityPlot 场图显示参数，对应 mo_showdensityplot。
type DensityPlot struct {
	Legend bool
	Gray   bool
	Upper  float64
	Lower  float64
	Type   string // "mag"、"real" 或 "imag"
}

// Model 一个扫描点的完整求解模型。
type Model struct {
	Displacement float64
	Problem      Problem
	Materials    []string
	Rects        []Rect
	Circuits     []Circuit
	Labels       []Label
	OpenBoundary bool // 默认开放边界(ABC)
	Density      DensityPlot
	Top          Contour // 上次级线圈测量路径
	Bottom       Contour // 下次级线圈测量路径
}

// Rect 按名称查找矩形区域。
func (m *Model) Rect(name string) (Rect, bool) {
	for _, r := range m.Rects {
		if r.Name == name {
			return r, true
		}
	}
	return Rect{}, false
}

// Circuit 按名称查找电路。
func (m *Model) Circuit(name string) (Circuit, bool) {
	for _, c := range m.Circuits {
		if c.Name == name {
			return c, true
		}
	}
	return Circuit{}, false
}

// Validate 检查模型一致性。
func (m *Model) Validate() error {
	if m.Problem.Frequency < 0 {
		return fmt.Errorf("频率不能为负: %v", m.Problem.Frequency)
	}
	if m.Problem.Type != "axi" && m.Problem.Type != "planar" {
		return fmt.Errorf("未知问题类型: %q", m.Problem.Type)
	}
	imported := make(map[string]bool, len(m.Materials))
	for _, name := range m.Materials {
		if _, ok := GetMaterial(name); !ok {
			return fmt.Errorf("材料未注册: %q", name)
		}
		imported[name] = true
	}
	for _, r := range m.Rects {
		if r.Width() == 0 || r.Height() == 0 {
			return fmt.Errorf("矩形区域 %q 退化: %+v", r.Name, r)
		}
		if m.Problem.Type == "axi" && r.Inner() < 0 {
			return fmt.Errorf("轴对称问题中矩形区域 %q 越过对称轴", r.Name)
		}
	}
	for _, l := range m.Labels {
		if !imported[l.Block.Material] {
			return fmt.Errorf("标签 (%g, %g) 的材料未导入: %q", l.At.X, l.At.Y, l.Block.Material)
		}
		if l.Block.Circuit != NoCircuit {
			if _, ok := m.Circuit(l.Block.Circuit); !ok {
				return fmt.Errorf("标签 (%g, %g) 引用未定义电路: %q", l.At.X, l.At.Y, l.Block.Circuit)
			}
		}
	}
	if m.Top.Length() == 0 || m.Bottom.Length() == 0 {
		return fmt.Errorf("测量路径长度为零")
	}
	return nil
}
