// Command lvdt 扫描 LVDT 铁芯位移，计算差动输出电压的幅值与相位并绘图。
//
// 用法:
//
//	lvdt [flags]
//
// 示例:
//
//	lvdt -config lvdt.yaml
//	lvdt -backend analytic -auto -export sweep.txt
//	lvdt -replot sweep.txt -serve localhost:8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lvdt"
	"lvdt/chart"
	"lvdt/config"
	"lvdt/femm"
	"lvdt/internal/prompt"
	"lvdt/internal/viewer"
	"lvdt/phasor"
	"lvdt/solver"
	"lvdt/solver/analytic"
	"lvdt/sweep"
)

type options struct {
	config  string
	backend string
	auto    bool
	replot  string
	export  string
	serve   string
	view    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	viewer.Main(func() int {
		code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
		if ctx.Err() != nil && code == 0 {
			code = 130
		}
		stop()
		return code
	})
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("lvdt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.config, "config", "", "YAML 配置文件")
	fs.StringVar(&o.backend, "backend", "femm", "求解器: femm 或 analytic")
	fs.BoolVar(&o.auto, "auto", false, "不等待回车")
	fs.StringVar(&o.replot, "replot", "", "从导出的表格重新绘图，不运行求解器")
	fs.StringVar(&o.export, "export", "", "导出扫描结果表格")
	fs.StringVar(&o.serve, "serve", "", "网页曲线发布地址（与 -auto 同用时服务到中断为止）")
	fs.BoolVar(&o.view, "view", false, "在窗口中显示曲线")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "多余的参数: %s\n", strings.Join(fs.Args(), " "))
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)
	if err := execute(ctx, o, stdin, stdout, logger); err != nil {
		logger.Println(err)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}
	return 0
}

func opener(backend string, cfg *config.Config) (solver.Opener, error) {
	switch backend {
	case "femm":
		return femm.Opener(cfg), nil
	case "analytic":
		return analytic.Opener(cfg), nil
	}
	return nil, fmt.Errorf("未知求解器: %q", backend)
}

func execute(ctx context.Context, o options, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return err
		}
	}
	var pacer sweep.Pacer = sweep.Auto{}
	if !o.auto {
		pacer = prompt.New(stdin, stdout)
	}
	sim := &lvdt.Simulation{Config: cfg, Pacer: pacer, Logger: logger}

	var res *sweep.Result
	var err error
	if o.replot != "" {
		res, err = lvdt.Load(o.replot)
	} else {
		if sim.Open, err = opener(o.backend, cfg); err != nil {
			return err
		}
		res, err = sim.Run(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%-12s %s\n", "位移", "差动电压")
	for i := 0; i < res.Len(); i++ {
		fmt.Fprintf(stdout, "%-12g %s\n", res.Displacement[i], phasor.FormatPolar(res.EMF[i]))
	}
	if o.export != "" {
		if err := lvdt.Export(o.export, res); err != nil {
			return fmt.Errorf("导出失败: %w", err)
		}
		logger.Printf("扫描结果已导出: %s", o.export)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	files, err := sim.Plot(res)
	if err != nil {
		return err
	}
	logger.Printf("曲线已保存: %s", strings.Join(files, ", "))

	if o.serve != "" {
		charts := &chart.Charts{Curves: chart.FromResult(res, cfg.Units)}
		ln, err := net.Listen("tcp", o.serve)
		if err != nil {
			return fmt.Errorf("网页服务启动失败: %w", err)
		}
		srv := &http.Server{Handler: http.HandlerFunc(charts.Handler)}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Println(err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Printf("网页曲线: http://%s", ln.Addr())
	}
	if o.view {
		if err := viewer.ShowFiles(files...); err != nil {
			return err
		}
	}
	// 批处理模式下网页服务持续到中断
	if o.serve != "" && o.auto {
		logger.Println("按 Ctrl-C 停止网页服务")
		<-ctx.Done()
		return nil
	}
	return pacer.Wait(ctx, sweep.PromptExit)
}
