package chart

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurves() Curves {
	return Curves{
		Displacement: []float64{-0.1, 0, 0.1},
		Magnitude:    []float64{0.02, 0, 0.02},
		Phase:        []float64{90, 0, -90},
		Units:        "inches",
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	files, err := SavePNG(dir, testCurves())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, MagnitudeFile),
		filepath.Join(dir, PhaseFile),
	}, files)
	for _, f := range files {
		assert.FileExists(t, f)
	}
}

func TestPlotLabels(t *testing.T) {
	c := testCurves()
	assert.Equal(t, "Distance (inches)", c.XLabel())

	mag, err := c.MagnitudePlot()
	require.NoError(t, err)
	assert.Equal(t, "Voltage Magnitude (V)", mag.Y.Label.Text)
	assert.Equal(t, "Distance (inches)", mag.X.Label.Text)

	phase, err := c.PhasePlot()
	require.NoError(t, err)
	assert.Equal(t, "Voltage Phase Shift (Degrees)", phase.Y.Label.Text)
}

func TestCurvesValidate(t *testing.T) {
	assert.NoError(t, testCurves().Validate())
	assert.Error(t, Curves{}.Validate())

	c := testCurves()
	c.Phase = c.Phase[:2]
	assert.Error(t, c.Validate())
	_, err := SavePNG(t.TempDir(), c)
	assert.Error(t, err)
}

func TestChartsRender(t *testing.T) {
	c := &Charts{Curves: testCurves()}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "<title>LVDT</title>")

	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")

	bad := &Charts{}
	assert.Error(t, bad.Render(&buf))
}
