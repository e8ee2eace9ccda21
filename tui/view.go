package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/file-organizer/pkg/report"
)

func (m *model) View() string {
	switch m.state {
	case StateSelect:
		return m.selectView()
	case StateRunning:
		return m.runningView()
	case StateResult:
		return m.resultView()
	default:
		return "未知状态"
	}
}

func (m *model) selectView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📂 文件整理工具") + "\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	b.WriteString(labelStyle.Render("1. 目录：") + "\n")
	if m.focus == FocusDirInput {
		b.WriteString(focusedStyle.Render(m.dirInput.View()) + "\n")
	} else {
		b.WriteString(normalStyle.Render(m.dirInput.View()) + "\n")
	}

	b.WriteString(labelStyle.Render("2. 操作：") + "\n")
	if m.focus == FocusActions {
		b.WriteString(focusedStyle.Render(m.actions.View()) + "\n")
	} else {
		b.WriteString(normalStyle.Render(m.actions.View()) + "\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.historyLine() + "\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("操作提示：") + "\n")
	b.WriteString("  • Tab 键切换焦点\n")
	b.WriteString("  • Enter 确认目录/执行操作\n")
	b.WriteString("  • u 撤销上一步移动\n")
	b.WriteString("  • Ctrl+C 退出程序\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m *model) runningView() string {
	var b strings.Builder

	item := actionItems[m.running].(actionItem)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s...", m.spinner.View(), item.title)) + "\n\n")
	b.WriteString(labelStyle.Render("目录：") + filePathStyle.Render(m.dir) + "\n\n")

	if m.total > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("进度：%d / %d", m.done, m.total)) + "\n")
		b.WriteString(m.progressBar.View() + "\n\n")
		b.WriteString(labelStyle.Render("当前文件：") + "\n")
		b.WriteString(filePathStyle.Render(m.current) + "\n")
	}

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) resultView() string {
	var b strings.Builder

	if m.failed() {
		b.WriteString(errorTitleStyle.Render("⚠️ "+m.status) + "\n\n")
	} else {
		b.WriteString(successTitleStyle.Render("✅ "+m.status) + "\n\n")
	}

	if details := m.renderDetails(); details != "" {
		b.WriteString(details + "\n")
	}
	b.WriteString(m.historyLine() + "\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("Enter 返回，u 撤销上一步，q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) failed() bool {
	if m.last.err != nil {
		return true
	}
	return m.last.result != nil && m.last.result.Failed() > 0
}

// renderDetails 复用文本报告的表格
func (m *model) renderDetails() string {
	var b strings.Builder
	w := report.NewTextWriter(&b)

	switch {
	case m.last.analysis != nil:
		_ = w.WriteAnalysis(m.last.analysis)
	case m.last.result != nil:
		_ = w.WriteResult(m.last.result)
	}
	return b.String()
}

func (m *model) historyLine() string {
	history := m.session.History()
	if len(history) == 0 {
		return hintStyle.Render("可撤销：0 步")
	}
	last := history[len(history)-1]
	return hintStyle.Render(fmt.Sprintf("可撤销：%d 步，最近一次 %s -> %s",
		len(history), last.OriginalPath, last.NewPath))
}
