package sweep

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lvdt/config"
	"lvdt/geometry"
	"lvdt/solver"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDone       = errors.New("sweep: 扫描已完成")
	ErrIncomplete = errors.New("sweep: 扫描未完成")
)

// Displacements 生成 [lo, hi] 上 n 个等间距位移点，包含两个端点。
func Displacements(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("扫描点数至少为 2: %d", n)
	}
	if !(lo < hi) {
		return nil, fmt.Errorf("扫描范围无效: [%v, %v]", lo, hi)
	}
	points := floats.Span(make([]float64, n), lo, hi)
	points[n-1] = hi
	return points, nil
}

// Sweep 位移扫描驱动。
// 每一步依次完成 建模 -> 求解 -> 测量，后一步必须等前一步结束，
// 因为求解会话只有一个当前文档与当前解。不能并发使用。
type Sweep struct {
	Logger *log.Logger // 进度日志

	cfg     *config.Config
	session solver.Session
	pacer   Pacer
	points  []float64
	record  Record
	err     error // 第一次失败，之后的 Step 直接返回
}

// New 创建扫描，pacer 为空时不等待。
func New(cfg *config.Config, session solver.Session, pacer Pacer) (*Sweep, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	points, err := Displacements(cfg.SweepMin, cfg.SweepMax, cfg.SweepCount)
	if err != nil {
		return nil, err
	}
	if pacer == nil {
		pacer = Auto{}
	}
	return &Sweep{
		Logger:  log.Default(),
		cfg:     cfg,
		session: session,
		pacer:   pacer,
		points:  points,
		record: Record{
			Displacement: make([]float64, 0, len(points)),
			Top:          make([]float64, 0, len(points)),
			Bottom:       make([]float64, 0, len(points)),
		},
	}, nil
}

// Points 全部位移点。
func (s *Sweep) Points() []float64 { return append([]float64(nil), s.points...) }

// Len 扫描点数。
func (s *Sweep) Len() int { return len(s.points) }

// Next 下一个待测扫描序号。
func (s *Sweep) Next() int { return s.record.Len() }

// Done 是否全部测量完成。
func (s *Sweep) Done() bool { return s.Next() >= len(s.points) }

// Step 测量下一个扫描点。
// 失败不重试，之后的调用返回同一个错误。
func (s *Sweep) Step(ctx context.Context) (Sample, error) {
	if s.err != nil {
		return Sample{}, s.err
	}
	if s.Done() {
		return Sample{}, ErrDone
	}
	i := s.Next()
	sample, err := s.step(ctx, i)
	if err != nil {
		s.err = fmt.Errorf("扫描点 %d (位移 %g): %w", i, s.points[i], err)
		return Sample{}, s.err
	}
	s.record.Update(sample)
	s.Logger.Printf("扫描点 %d/%d 位移=%g 上=%g 下=%g", i+1, len(s.points), sample.Displacement,
		sample.Measurement.Top.Flux(), sample.Measurement.Bottom.Flux())
	return sample, nil
}

func (s *Sweep) step(ctx context.Context, i int) (Sample, error) {
	d := s.points[i]
	model, err := geometry.Build(s.cfg, d)
	if err != nil {
		return Sample{}, fmt.Errorf("建模失败: %w", err)
	}
	if err := s.pacer.Wait(ctx, PromptContinue); err != nil {
		return Sample{}, err
	}
	m, err := s.session.Solve(ctx, model, i)
	if err != nil {
		return Sample{}, fmt.Errorf("求解失败: %w", err)
	}
	return Sample{Index: i, Displacement: d, Measurement: m}, nil
}

// Run 执行剩余的全部扫描点并返回结果。
func (s *Sweep) Run(ctx context.Context) (*Result, error) {
	for !s.Done() {
		if _, err := s.Step(ctx); err != nil {
			return nil, err
		}
	}
	return s.Result()
}

// Result 计算扫描结果，扫描未完成时返回 ErrIncomplete。
func (s *Sweep) Result() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.Done() {
		return nil, fmt.Errorf("已测 %d/%d: %w", s.Next(), len(s.points), ErrIncomplete)
	}
	return NewResult(s.record, s.cfg.SecondaryTurns, s.cfg.Omega())
}
