package sweep

import (
	"fmt"

	"lvdt/phasor"
	"lvdt/solver"
)

// Sample 单个扫描点。
type Sample struct {
	Index        int                // 扫描序号
	Displacement float64            // 铁芯位移
	Measurement  solver.Measurement // 测量值
}

// Record 记录扫描过程中的测量值。
type Record struct {
	Displacement []float64 // 位移列
	Top          []float64 // 上次级每弧度磁通
	Bottom       []float64 // 下次级每弧度磁通
}

// Update 追加一个扫描点。
func (r *Record) Update(s Sample) {
	r.Displacement = append(r.Displacement, s.Displacement)
	r.Top = append(r.Top, s.Measurement.Top.Flux())
	r.Bottom = append(r.Bottom, s.Measurement.Bottom.Flux())
}

// Len 已记录点数。
func (r *Record) Len() int { return len(r.Displacement) }

// Result 扫描结果：测量值与差动输出一一对应。
type Result struct {
	Record
	phasor.Response
}

// NewResult 由测量记录计算差动输出。
func NewResult(rec Record, turns int, omega float64) (*Result, error) {
	if len(rec.Top) != rec.Len() || len(rec.Bottom) != rec.Len() {
		return nil, fmt.Errorf("测量记录长度不一致: 位移 %d 上 %d 下 %d: %w",
			rec.Len(), len(rec.Top), len(rec.Bottom), phasor.ErrLength)
	}
	resp, err := phasor.Compute(rec.Top, rec.Bottom, turns, omega)
	if err != nil {
		return nil, err
	}
	return &Result{Record: rec, Response: *resp}, nil
}

// Len 结果点数。
func (r *Result) Len() int { return r.Record.Len() }
