package sweep

import "context"

// 提示信息
const (
	PromptContinue = "Press enter to continue..."
	PromptExit     = "Press enter to exit..."
)

// Pacer 控制扫描节奏，每次求解前调用 Wait。
// 控制台实现会阻塞到操作员确认，测试与批处理使用 Auto。
type Pacer interface {
	Wait(ctx context.Context, prompt string) error
}

// PacerFunc 函数适配器。
type PacerFunc func(ctx context.Context, prompt string) error

// Wait 调用 f。
func (f PacerFunc) Wait(ctx context.Context, prompt string) error { return f(ctx, prompt) }

// Auto 不等待，仅检查上下文是否已取消。
type Auto struct{}

// Wait 实现 Pacer。
func (Auto) Wait(ctx context.Context, _ string) error { return ctx.Err() }
