package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 问题单位与对应的米数，单位名与求解器 mi_probdef 的参数一致。
var unitMeters = map[string]float64{
	"inches":      0.0254,
	"millimeters": 1e-3,
	"centimeters": 1e-2,
	"meters":      1,
	"mils":        2.54e-5,
	"micrometers": 1e-6,
}

// UnitLength 长度单位对应的米数。
func UnitLength(units string) (float64, bool) {
	m, ok := unitMeters[units]
	return m, ok
}

// Solver 外部求解器启动配置。
type Solver struct {
	Command string   `yaml:"command"` // 可执行文件
	Args    []string `yaml:"args"`    // 附加参数（位于脚本参数之前）
	Hide    bool     `yaml:"hide"`    // 隐藏主窗口
}

// Config 仿真配置。
// 所有物理常数与扫描参数都集中在这里，避免散落在流程中。
type Config struct {
	Frequency      float64 `yaml:"frequency"`       // 激励频率(Hz)
	PrimaryTurns   int     `yaml:"primary_turns"`   // 初级匝数
	SecondaryTurns int     `yaml:"secondary_turns"` // 次级匝数
	Current        float64 `yaml:"current"`         // 初级激励电流(A)
	SweepMin       float64 `yaml:"sweep_min"`       // 位移下限
	SweepMax       float64 `yaml:"sweep_max"`       // 位移上限
	SweepCount     int     `yaml:"sweep_count"`     // 扫描点数
	Precision      float64 `yaml:"precision"`       // 线性求解精度
	BoundaryAngle  float64 `yaml:"boundary_angle"`  // 网格最小角约束(度)
	Units          string  `yaml:"units"`           // 长度单位
	ProjectFile    string  `yaml:"project_file"`    // 求解器工程文件
	BitmapPrefix   string  `yaml:"bitmap_prefix"`   // 场图文件前缀
	OutputDir      string  `yaml:"output_dir"`      // 输出目录
	Solver         Solver  `yaml:"solver"`          // 求解器
}

// Default 默认配置。
func Default() *Config {
	return &Config{
		Frequency:      60,
		PrimaryTurns:   200,
		SecondaryTurns: 200,
		Current:        1,
		SweepMin:       -0.1,
		SweepMax:       0.1,
		SweepCount:     50,
		Precision:      1e-8,
		BoundaryAngle:  30,
		Units:          "inches",
		ProjectFile:    "lvdt_sweep.fem",
		BitmapPrefix:   "Bplot",
		OutputDir:      ".",
		Solver: Solver{
			Command: "femm.exe",
		},
	}
}

// Load 从 YAML 文件加载配置，未给出的字段保留默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("配置文件解析失败 %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置文件无效 %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查配置取值范围。
func (cfg *Config) Validate() error {
	switch {
	case !(cfg.Frequency > 0) || math.IsInf(cfg.Frequency, 0):
		return fmt.Errorf("频率必须为正数: %v", cfg.Frequency)
	case !(cfg.Current > 0) || math.IsInf(cfg.Current, 0):
		return fmt.Errorf("激励电流必须为有限正数: %v", cfg.Current)
	case cfg.PrimaryTurns <= 0:
		return fmt.Errorf("初级匝数必须为正数: %d", cfg.PrimaryTurns)
	case cfg.SecondaryTurns <= 0:
		return fmt.Errorf("次级匝数必须为正数: %d", cfg.SecondaryTurns)
	case cfg.SweepCount < 2:
		return fmt.Errorf("扫描点数至少为 2: %d", cfg.SweepCount)
	case !(cfg.SweepMin < cfg.SweepMax):
		return fmt.Errorf("扫描范围无效: [%v, %v]", cfg.SweepMin, cfg.SweepMax)
	case !(cfg.Precision > 0):
		return fmt.Errorf("求解精度必须为正数: %v", cfg.Precision)
	case !(cfg.BoundaryAngle > 0 && cfg.BoundaryAngle <= 90):
		return fmt.Errorf("边界角度超出范围 (0, 90]: %v", cfg.BoundaryAngle)
	case unitMeters[cfg.Units] == 0:
		return fmt.Errorf("未知长度单位: %q", cfg.Units)
	case cfg.BitmapPrefix == "":
		return fmt.Errorf("场图文件前缀不能为空")
	case cfg.ProjectFile == "":
		return fmt.Errorf("工程文件名不能为空")
	}
	return nil
}

// Omega 角频率(rad/s)。
func (cfg *Config) Omega() float64 { return 2 * math.Pi * cfg.Frequency }

// BitmapName 第 i 个扫描点的场图文件路径。
func (cfg *Config) BitmapName(i int) string {
	return filepath.Join(cfg.OutputDir, cfg.BitmapPrefix+"_"+strconv.Itoa(i)+".png")
}

// ProjectPath 工程文件路径。
func (cfg *Config) ProjectPath() string {
	return filepath.Join(cfg.OutputDir, cfg.ProjectFile)
}
