package geometry

import (
	"lvdt/config"
)

// 区域名称
const (
	RegionCore      = "core"
	RegionPrimary   = "primary"
	RegionTop       = "secondary_top"
	RegionBottom    = "secondary_bottom"
	PrimaryCircuit  = "Primary"
	coreHalfLength  = 0.2  // 铁芯半长
	coreRadius      = 0.04 // 铁芯半径
	coilInner       = 0.05 // 线圈内半径
	coilOuter       = 0.1  // 线圈外半径
	coilMid         = 0.075
	primaryHalf     = 0.1  // 初级线圈半高
	secondaryNear   = 0.11 // 次级线圈近端
	secondaryFar    = 0.31 // 次级线圈远端
	secondaryCenter = 0.21 // 次级线圈中心轴向位置
	airLabelRadius  = 0.3  // 空气标签半径
	densityUpper    = 0.15 // 场图上限(T)
)

// Build 生成位移 d 下的 LVDT 模型。
// 铁芯随 d 平移，线圈固定：初级居中，两个次级线圈对称分布在上下两侧。
func Build(cfg *config.Config, d float64) (*Model, error) {
	m := &Model{
		Displacement: d,
		Problem: Problem{
			Frequency: cfg.Frequency,
			Units:     cfg.Units,
			Type:      "axi",
			Precision: cfg.Precision,
			Depth:     0,
			MinAngle:  cfg.BoundaryAngle,
		},
		Materials: []string{Air.Name, PureIron.Name, Copper30.Name},
		Rects: []Rect{
			{Name: RegionCore, X1: 0, Y1: d - coreHalfLength, X2: coreRadius, Y2: d + coreHalfLength},
			{Name: RegionPrimary, X1: coilInner, Y1: -primaryHalf, X2: coilOuter, Y2: primaryHalf},
			{Name: RegionTop, X1: coilInner, Y1: secondaryNear, X2: coilOuter, Y2: secondaryFar},
			{Name: RegionBottom, X1: coilInner, Y1: -secondaryFar, X2: coilOuter, Y2: -secondaryNear},
		},
		Circuits: []Circuit{
			{Name: PrimaryCircuit, Current: cfg.Current, Series: true},
		},
		Labels: []Label{
			{At: Point{airLabelRadius, 0}, Block: passive(Air.Name)},
			{At: Point{coreRadius / 2, d}, Block: passive(PureIron.Name)},
			{At: Point{coilMid, secondaryCenter}, Block: passive(Copper30.Name)},
			{At: Point{coilMid, -secondaryCenter}, Block: passive(Copper30.Name)},
			{At: Point{coilMid, 0}, Block: BlockProp{
				Material: Copper30.Name,
				AutoMesh: true,
				Circuit:  PrimaryCircuit,
				Turns:    cfg.PrimaryTurns,
			}},
		},
		OpenBoundary: true,
		Density:      DensityPlot{Legend: true, Upper: densityUpper, Lower: 0, Type: "mag"},
		Top:          Contour{From: Point{0, secondaryCenter}, To: Point{coilInner, secondaryCenter}},
		Bottom:       Contour{From: Point{0, -secondaryCenter}, To: Point{coilInner, -secondaryCenter}},
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// passive 无电路连接的自动网格区域。
func passive(material string) BlockProp {
	return BlockProp{Material: material, AutoMesh: true, Circuit: NoCircuit}
}
