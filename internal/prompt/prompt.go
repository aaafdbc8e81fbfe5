// Package prompt 控制台等待输入的节拍器。
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrQuit 输入 q 时中止。
var ErrQuit = errors.New("用户中止")

// Console 打印提示并等待一行输入。
// 输入由单个后台 goroutine 逐行读取，Wait 被取消后 Console 仍可继续使用。
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan string
	err   error // 读取结束原因，lines 关闭后有效
}

// New 创建控制台节拍器。
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Stdio 标准输入输出。
func Stdio() *Console { return New(os.Stdin, os.Stdout) }

func (c *Console) read() {
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if err == nil || line != "" {
			c.lines <- line
		}
		if err != nil {
			if err != io.EOF {
				c.err = err
			}
			return
		}
	}
}

// Wait 打印提示后等待回车；输入结束视为确认，输入 q 返回 ErrQuit。
// ctx 取消时立即返回，未读完的行留给下一次 Wait。
func (c *Console) Wait(ctx context.Context, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.once.Do(func() {
		c.lines = make(chan string)
		go c.read()
	})
	fmt.Fprint(c.out, prompt)
	select {
	case line, ok := <-c.lines:
		if !ok {
			return c.err
		}
		if strings.TrimSpace(line) == "q" {
			return ErrQuit
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return ctx.Err()
	}
}
