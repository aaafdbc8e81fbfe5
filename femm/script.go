package femm

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"lvdt/geometry"
)

// Plan 单个扫描点脚本中的文件位置，均为绝对路径。
type Plan struct {
	Index   int    // 扫描序号
	Project string // 工程文件，每次覆盖
	Bitmap  string // 场图文件
	Result  string // 测量结果文件
	Hide    bool   // 隐藏主窗口
}

// scriptWriter 逐行写出 Lua 调用，记录第一个写错误。
type scriptWriter struct {
	w   *bufio.Writer
	err error
}

func (sw *scriptWriter) line(s string) {
	if sw.err != nil {
		return
	}
	if _, err := sw.w.WriteString(s); err != nil {
		sw.err = err
		return
	}
	sw.err = sw.w.WriteByte('\n')
}

// call 写出一次函数调用。
func (sw *scriptWriter) call(name string, args ...any) {
	sw.line(name + "(" + luaArgs(args...) + ")")
}

// WriteScript 写出求解一个扫描点的 Lua 脚本。
// 脚本建模、求解、测量两个次级线圈的线积分、保存场图，并把结果写入 plan.Result 后退出。
func WriteScript(w io.Writer, m *geometry.Model, plan Plan) error {
	sw := &scriptWriter{w: bufio.NewWriter(w)}
	sw.line(fmt.Sprintf("-- lvdt sweep point %d, displacement %s", plan.Index, luaNumber(m.Displacement)))
	if !plan.Hide {
		sw.call("main_maximize")
	}
	// 新建磁场文档
	sw.call("newdocument", 0)
	p := m.Problem
	sw.call("mi_probdef", p.Frequency, p.Units, p.Type, p.Precision, p.Depth, p.MinAngle)
	for _, name := range m.Materials {
		sw.call("mi_getmaterial", name)
	}
	for _, r := range m.Rects {
		sw.call("mi_drawrectangle", r.X1, r.Y1, r.X2, r.Y2)
	}
	for _, c := range m.Circuits {
		sw.call("mi_addcircprop", c.Name, c.Current, c.Series)
	}
	for _, l := range m.Labels {
		b := l.Block
		sw.call("mi_clearselected")
		sw.call("mi_addblocklabel", l.At.X, l.At.Y)
		sw.call("mi_selectlabel", l.At.X, l.At.Y)
		sw.call("mi_setblockprop", b.Material, b.AutoMesh, b.MeshSize, b.Circuit, b.MagDir, b.Group, b.Turns)
	}
	sw.call("mi_clearselected")
	if m.OpenBoundary {
		sw.call("mi_makeABC")
	}
	// 保存并求解
	sw.call("mi_saveas", luaPath(plan.Project))
	sw.call("mi_analyze")
	sw.call("mi_loadsolution")
	d := m.Density
	sw.call("mo_showdensityplot", d.Legend, d.Gray, d.Upper, d.Lower, d.Type)
	// 两次测量之间清除路径
	measure := func(prefix string, c geometry.Contour) {
		sw.call("mo_clearcontour")
		sw.call("mo_addcontour", c.From.X, c.From.Y)
		sw.call("mo_addcontour", c.To.X, c.To.Y)
		sw.line(prefix + "_a, " + prefix + "_b = mo_lineintegral(0)")
	}
	measure("top", m.Top)
	measure("bottom", m.Bottom)
	sw.call("mo_savebitmap", luaPath(plan.Bitmap))
	// 结果文件
	sw.line("handle = openfile(" + luaString(filepath.ToSlash(plan.Result)) + ", \"w\")")
	// 时谐问题的线积分为复数，实部与虚部分列写出
	for _, prefix := range []string{"top", "bottom"} {
		sw.line(fmt.Sprintf(`write(handle, re(%[1]s_a), " ", im(%[1]s_a), " ", re(%[1]s_b), " ", im(%[1]s_b), "\n")`, prefix))
	}
	sw.line("closefile(handle)")
	sw.call("quit")
	if sw.err != nil {
		return sw.err
	}
	return sw.w.Flush()
}

// luaPath 求解器接受正斜杠路径。
type luaPath string

func luaArgs(args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts[i] = luaString(v)
		case luaPath:
			parts[i] = luaString(filepath.ToSlash(string(v)))
		case float64:
			parts[i] = luaNumber(v)
		case int:
			parts[i] = strconv.Itoa(v)
		case bool:
			if v {
				parts[i] = "1"
			} else {
				parts[i] = "0"
			}
		default:
			panic(fmt.Sprintf("femm: 不支持的参数类型 %T", a))
		}
	}
	return strings.Join(parts, ", ")
}

func luaNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

var luaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

func luaString(s string) string { return `"` + luaEscaper.Replace(s) + `"` }
