package femm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lvdt/solver"
)

// fields 结果文件中的一行。
type fields []string

// float64 解析第 i 个字段。
func (f fields) float64(i int) (float64, error) {
	if i >= len(f) {
		return 0, fmt.Errorf("缺少第 %d 个字段", i+1)
	}
	v, err := strconv.ParseFloat(f[i], 64)
	if err != nil {
		return 0, fmt.Errorf("字段 %q 不是数值", f[i])
	}
	return v, nil
}

// lineIntegral 解析一对复数线积分结果 "re(a) im(a) re(b) im(b)"，保留实部。
func (f fields) lineIntegral() (l solver.LineIntegral, err error) {
	if len(f) != 4 {
		return l, fmt.Errorf("应有 4 个字段，得到 %d 个", len(f))
	}
	var v [4]float64
	for i := range v {
		if v[i], err = f.float64(i); err != nil {
			return l, err
		}
	}
	return solver.LineIntegral{v[0], v[2]}, nil
}

// ParseResult 解析求解脚本写出的结果：第一行为上次级线圈，第二行为下次级线圈，
// 每行为两个复数线积分的实部与虚部。
func ParseResult(r io.Reader) (solver.Measurement, error) {
	var rows []fields
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return solver.Measurement{}, err
	}
	if len(rows) != 2 {
		return solver.Measurement{}, fmt.Errorf("结果文件应有 2 行，得到 %d 行", len(rows))
	}
	top, err := rows[0].lineIntegral()
	if err != nil {
		return solver.Measurement{}, fmt.Errorf("上次级线圈结果: %w", err)
	}
	bottom, err := rows[1].lineIntegral()
	if err != nil {
		return solver.Measurement{}, fmt.Errorf("下次级线圈结果: %w", err)
	}
	return solver.Measurement{Top: top, Bottom: bottom}, nil
}
