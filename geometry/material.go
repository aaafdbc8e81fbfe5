package geometry

import (
	"log"
	"sort"
)

// Material 材料库条目。
// 名称与求解器材料库一致，其余参数供解析求解使用。
type Material struct {
	Name  string  // 材料库名称
	Mu    float64 // 相对磁导率
	Sigma float64 // 电导率(MS/m)
}

// 已注册材料。
var materialList = map[string]Material{}

// AddMaterial 注册材料，重复注册视为编程错误。
func AddMaterial(m Material) Material {
	if _, ok := materialList[m.Name]; ok {
		log.Fatalf("材料重复注册: %s", m.Name)
	}
	materialList[m.Name] = m
	return m
}

// GetMaterial 按名称查找材料。
func GetMaterial(name string) (Material, bool) {
	m, ok := materialList[name]
	return m, ok
}

// Materials 已注册材料名称（有序）。
func Materials() []string {
	names := make([]string, 0, len(materialList))
	for name := range materialList {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 材料库
var (
	Air      = AddMaterial(Material{Name: "Air", Mu: 1})
	PureIron = AddMaterial(Material{Name: "Pure Iron", Mu: 14872, Sigma: 10.44})
	Copper30 = AddMaterial(Material{Name: "30 AWG", Mu: 1, Sigma: 58})
)
