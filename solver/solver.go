package solver

import (
	"context"
	"errors"
	"fmt"

	"lvdt/geometry"
)

// LineIntegral 线积分结果，按求解器 B.n 线积分的顺序 [总量, 平均值] 成对返回。
type LineIntegral [2]float64

// Flux 每弧度磁通（取第一个分量）。
func (l LineIntegral) Flux() float64 { return l[0] }

// Measurement 单个扫描点的测量结果。
type Measurement struct {
	Top    LineIntegral // 上次级线圈
	Bottom LineIntegral // 下次级线圈
}

// Session 求解会话。
// 会话内部状态（当前文档与解）在多次 Solve 之间共享，不能并发使用。
type Session interface {
	// Solve 求解模型并测量两个次级线圈的磁通，index 为扫描序号。
	Solve(ctx context.Context, model *geometry.Model, index int) (Measurement, error)
	// Close 释放会话占用的外部资源。
	Close() error
}

// Opener 打开求解会话。
type Opener func(ctx context.Context) (Session, error)

// With 打开会话并执行 fn，无论 fn 成功、失败还是 panic 都会关闭会话。
func With(ctx context.Context, open Opener, fn func(Session) error) (err error) {
	s, err := open(ctx)
	if err != nil {
		return fmt.Errorf("打开求解会话失败: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("关闭求解会话失败: %w", cerr))
		}
	}()
	return fn(s)
}
