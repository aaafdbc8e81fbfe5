package sweep

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"lvdt/config"
	"lvdt/geometry"
	"lvdt/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearSession 磁通随铁芯位移线性变化的假会话。
type linearSession struct {
	models  []*geometry.Model
	indices []int
	failAt  int
	closed  bool
}

func (s *linearSession) Solve(_ context.Context, m *geometry.Model, index int) (solver.Measurement, error) {
	if s.failAt >= 0 && index == s.failAt {
		return solver.Measurement{}, errors.New("solution diverged")
	}
	s.models = append(s.models, m)
	s.indices = append(s.indices, index)
	d := m.Displacement
	return solver.Measurement{
		Top:    solver.LineIntegral{1e-6 * (1 + d), 0},
		Bottom: solver.LineIntegral{1e-6 * (1 - d), 0},
	}, nil
}

func (s *linearSession) Close() error {
	s.closed = true
	return nil
}

func newSweep(t *testing.T, cfg *config.Config, sess solver.Session, pacer Pacer) *Sweep {
	t.Helper()
	sw, err := New(cfg, sess, pacer)
	require.NoError(t, err)
	sw.Logger = log.New(io.Discard, "", 0)
	return sw
}

func TestDisplacements(t *testing.T) {
	points, err := Displacements(-0.1, 0.1, 50)
	require.NoError(t, err)
	require.Len(t, points, 50)
	assert.Equal(t, -0.1, points[0])
	assert.Equal(t, 0.1, points[49])
	step := 0.2 / 49
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i], points[i-1])
		assert.InDelta(t, step, points[i]-points[i-1], 1e-12)
	}

	_, err = Displacements(0.1, -0.1, 50)
	assert.Error(t, err)
	_, err = Displacements(-0.1, 0.1, 1)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	sess := &linearSession{failAt: -1}
	var prompts []string
	pacer := PacerFunc(func(ctx context.Context, prompt string) error {
		prompts = append(prompts, prompt)
		return nil
	})
	sw := newSweep(t, cfg, sess, pacer)

	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 50, res.Len())
	assert.Len(t, res.Magnitude, 50)
	assert.Len(t, res.Phase, 50)
	assert.Len(t, res.EMF, 50)
	assert.Len(t, prompts, 50)
	for _, p := range prompts {
		assert.Equal(t, PromptContinue, p)
	}

	// 每个扫描点只求解一次，且严格按顺序
	want := make([]int, 50)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, sess.indices)
	assert.Equal(t, sw.Points(), res.Displacement)
	for i, m := range sess.models {
		assert.Equal(t, res.Displacement[i], m.Displacement)
	}

	// 差动输出: E = -N·2π·ω·j·(2e-6·d)
	k := float64(cfg.SecondaryTurns) * 2 * math.Pi * cfg.Omega()
	for i, d := range res.Displacement {
		assert.InDelta(t, k*2e-6*math.Abs(d), res.Magnitude[i], 1e-12)
	}
	assert.InDelta(t, 90, res.Phase[0], 1e-9)
	assert.InDelta(t, -90, res.Phase[49], 1e-9)

	_, err = sw.Step(context.Background())
	assert.ErrorIs(t, err, ErrDone)
}

func TestStep(t *testing.T) {
	cfg := config.Default()
	cfg.SweepCount = 3
	sw := newSweep(t, cfg, &linearSession{failAt: -1}, nil)

	_, err := sw.Result()
	assert.ErrorIs(t, err, ErrIncomplete)

	for i := 0; i < 3; i++ {
		assert.False(t, sw.Done())
		s, err := sw.Step(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, s.Index)
	}
	assert.True(t, sw.Done())
	res, err := sw.Result()
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.1, 0, 0.1}, res.Displacement)
	assert.Equal(t, 0.0, res.Magnitude[1])
}

func TestStepFailFast(t *testing.T) {
	cfg := config.Default()
	cfg.SweepCount = 5
	sess := &linearSession{failAt: 2}
	sw := newSweep(t, cfg, sess, nil)

	_, err := sw.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solution diverged")
	assert.Equal(t, []int{0, 1}, sess.indices)

	// 不重试
	_, err2 := sw.Step(context.Background())
	assert.Equal(t, err, err2)
	assert.Equal(t, []int{0, 1}, sess.indices)
	_, err = sw.Result()
	assert.Error(t, err)
}

func TestStepPacerAbort(t *testing.T) {
	cfg := config.Default()
	sess := &linearSession{failAt: -1}
	stop := errors.New("operator quit")
	sw := newSweep(t, cfg, sess, PacerFunc(func(context.Context, string) error { return stop }))

	_, err := sw.Step(context.Background())
	assert.ErrorIs(t, err, stop)
	assert.Empty(t, sess.indices)
}

func TestStepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess := &linearSession{failAt: -1}
	sw := newSweep(t, config.Default(), sess, Auto{})
	_, err := sw.Step(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sess.indices)
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SweepCount = 0
	_, err := New(cfg, &linearSession{failAt: -1}, nil)
	assert.Error(t, err)
}

func TestNewResultLength(t *testing.T) {
	_, err := NewResult(Record{Displacement: []float64{0, 1}, Top: []float64{1}, Bottom: []float64{1, 2}}, 200, 1)
	assert.Error(t, err)
}
