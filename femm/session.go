// Package femm 通过 Lua 脚本驱动外部 FEMM 求解器。
//
// 每个扫描点生成一个脚本，以 -lua-script 启动求解器进程，脚本结束时退出进程，
// 测量结果通过结果文件传回。工程文件每次覆盖，场图按扫描序号保存。
package femm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lvdt/config"
	"lvdt/geometry"
	"lvdt/solver"
)

// Session FEMM 求解会话。
type Session struct {
	cfg     *config.Config
	command string // 已解析的可执行文件
	output  string // 输出目录（绝对路径）
	scratch string // 脚本与结果文件临时目录
}

var _ solver.Session = (*Session)(nil)

// Open 打开会话：解析求解器命令，创建输出目录与临时目录。
func Open(_ context.Context, cfg *config.Config) (*Session, error) {
	command, err := exec.LookPath(cfg.Solver.Command)
	if err != nil {
		return nil, fmt.Errorf("找不到求解器 %q: %w", cfg.Solver.Command, err)
	}
	// 求解器在输出目录中运行，相对路径需先固定
	if command, err = filepath.Abs(command); err != nil {
		return nil, err
	}
	output, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	scratch, err := os.MkdirTemp("", "lvdt-femm-")
	if err != nil {
		return nil, fmt.Errorf("创建临时目录失败: %w", err)
	}
	return &Session{cfg: cfg, command: command, output: output, scratch: scratch}, nil
}

// Opener 供 solver.With 使用。
func Opener(cfg *config.Config) solver.Opener {
	return func(ctx context.Context) (solver.Session, error) { return Open(ctx, cfg) }
}

// Plan 第 index 个扫描点的文件位置。
func (s *Session) Plan(index int) Plan {
	return Plan{
		Index:   index,
		Project: filepath.Join(s.output, s.cfg.ProjectFile),
		Bitmap:  filepath.Join(s.output, filepath.Base(s.cfg.BitmapName(index))),
		Result:  filepath.Join(s.scratch, fmt.Sprintf("result_%d.txt", index)),
		Hide:    s.cfg.Solver.Hide,
	}
}

// Solve 写出脚本并运行求解器，进程结束后读取测量结果。
// 取消 ctx 会结束求解器进程。
func (s *Session) Solve(ctx context.Context, m *geometry.Model, index int) (solver.Measurement, error) {
	if s.scratch == "" {
		return solver.Measurement{}, fmt.Errorf("会话已关闭")
	}
	plan := s.Plan(index)
	script := filepath.Join(s.scratch, fmt.Sprintf("sweep_%d.lua", index))
	if err := s.writeScript(script, m, plan); err != nil {
		return solver.Measurement{}, err
	}
	// 旧结果不能冒充本次结果
	if err := os.Remove(plan.Result); err != nil && !os.IsNotExist(err) {
		return solver.Measurement{}, err
	}

	args := append(append([]string{}, s.cfg.Solver.Args...), "-lua-script="+script)
	if s.cfg.Solver.Hide {
		args = append(args, "-windowhide")
	}
	cmd := exec.CommandContext(ctx, s.command, args...)
	cmd.Dir = s.output
	var out bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &out
	if err := cmd.Run(); err != nil {
		return solver.Measurement{}, fmt.Errorf("求解器运行失败: %w: %s", err, strings.TrimSpace(out.String()))
	}

	f, err := os.Open(plan.Result)
	if err != nil {
		return solver.Measurement{}, fmt.Errorf("求解器未生成结果文件: %w", err)
	}
	defer f.Close()
	return ParseResult(f)
}

func (s *Session) writeScript(path string, m *geometry.Model, plan Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteScript(f, m, plan); err != nil {
		f.Close()
		return fmt.Errorf("写出脚本失败: %w", err)
	}
	return f.Close()
}

// Close 删除临时目录，工程文件与场图保留在输出目录。
func (s *Session) Close() error {
	if s.scratch == "" {
		return nil
	}
	err := os.RemoveAll(s.scratch)
	s.scratch = ""
	return err
}
