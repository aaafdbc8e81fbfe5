// Package viewer 在窗口中显示曲线图片。
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

// Load 读取 PNG 图片。
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("图片解码失败 %s: %w", path, err)
	}
	return img, nil
}

// Show 打开窗口显示图片，窗口关闭后返回。
// 需在 Main 启动的 goroutine 中调用。
func Show(title string, img image.Image) error {
	window := new(app.Window)
	size := img.Bounds().Size()
	window.Option(app.Title(title), app.Size(unit.Dp(size.X), unit.Dp(size.Y)))
	src := paint.NewImageOp(img)

	var ops op.Ops
	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			paint.Fill(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			widget.Image{Src: src, Fit: widget.Contain, Position: layout.Center}.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// ShowFiles 依次显示图片文件，每个窗口关闭后再打开下一个。
func ShowFiles(files ...string) error {
	for _, f := range files {
		img, err := Load(f)
		if err != nil {
			return err
		}
		if err := Show(filepath.Base(f), img); err != nil {
			return err
		}
	}
	return nil
}

// Main 在新 goroutine 中运行 run，主 goroutine 交给窗口事件循环。
// run 返回后以其返回值退出进程。
func Main(run func() int) {
	go func() {
		os.Exit(run())
	}()
	app.Main()
}
