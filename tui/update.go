package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateSelect:
			if model, cmd, handled := m.updateSelectPhase(msg); handled {
				return model, cmd
			}
		case StateResult:
			return m.updateResultPhase(msg)
		case StateRunning:
			// 运行中忽略按键，避免重复触发
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case progressMsg:
		m.done = msg.done
		m.total = msg.total
		m.current = msg.current
		if m.total > 0 {
			cmds = append(cmds, m.progressBar.SetPercent(float64(m.done)/float64(m.total)))
		}
		return m, tea.Batch(cmds...)

	case operationDoneMsg:
		m.state = StateResult
		m.last = msg
		m.status = m.describe(msg)
		logger.Get().Info().Msg(m.status)
		return m, nil

	case spinner.TickMsg:
		if m.state == StateRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case progress.FrameMsg:
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		return m, cmd
	}

	if m.state == StateSelect {
		var cmd tea.Cmd
		if m.focus == FocusDirInput {
			m.dirInput, cmd = m.dirInput.Update(msg)
		} else {
			m.actions, cmd = m.actions.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateSelectPhase 处理选择阶段的按键，handled 为 false 时交给输入框或列表
func (m *model) updateSelectPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.nextFocus()
		m.updateFocusState()
		return m, nil, true

	case "enter":
		model, cmd := m.handleEnterKey()
		return model, cmd, true

	case "u":
		if m.focus == FocusActions {
			return m, m.start(actionUndo), true
		}
	}

	return m, nil, false
}

func (m *model) updateResultPhase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "u":
		return m, m.start(actionUndo)
	case "enter", "esc":
		m.state = StateSelect
		m.focus = FocusActions
		m.updateFocusState()
	}
	return m, nil
}

func (m *model) nextFocus() {
	switch m.focus {
	case FocusDirInput:
		m.focus = FocusActions
	case FocusActions:
		m.focus = FocusDirInput
	}
}

func (m *model) updateFocusState() {
	if m.focus == FocusDirInput {
		m.dirInput.Focus()
	} else {
		m.dirInput.Blur()
	}

	m.actions.KeyMap.CursorUp.SetEnabled(m.focus == FocusActions)
	m.actions.KeyMap.CursorDown.SetEnabled(m.focus == FocusActions)
}

func (m *model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusDirInput:
		dir := strings.TrimSpace(m.dirInput.Value())
		if dir == "" {
			m.status = "请先输入目录"
			return m, nil
		}
		m.dir = dir
		m.status = ""
		m.focus = FocusActions
		m.updateFocusState()
		return m, nil

	case FocusActions:
		item, ok := m.actions.SelectedItem().(actionItem)
		if !ok {
			return m, nil
		}
		return m, m.start(item.action)
	}

	return m, nil
}

// start 在后台执行操作；会话忙时直接提示
func (m *model) start(a action) tea.Cmd {
	if a != actionUndo && m.dir == "" {
		m.status = "请先输入目录"
		m.focus = FocusDirInput
		m.updateFocusState()
		return nil
	}
	if m.session.Busy() {
		m.status = internal.ErrBusy.Error()
		return nil
	}

	m.state = StateRunning
	m.running = a
	m.done, m.total, m.current = 0, 0, ""

	return tea.Batch(
		m.spinner.Tick,
		m.progressBar.SetPercent(0),
		runAction(m.session, a, m.dir),
	)
}

func runAction(session *organizer.Session, a action, dir string) tea.Cmd {
	return func() tea.Msg {
		msg := operationDoneMsg{action: a}

		switch a {
		case actionCategory:
			msg.result, msg.err = session.OrganizeByCategory(dir)
		case actionExtension:
			msg.result, msg.err = session.OrganizeByExtensionFolder(dir)
		case actionAlphabetical:
			msg.result, msg.err = session.OrganizeAlphabetically(dir)
		case actionDate:
			msg.result, msg.err = session.OrganizeByDate(dir)
		case actionDuplicates:
			msg.result, msg.err = session.FindAndConsolidateDuplicates(dir)
		case actionAnalyze:
			msg.analysis, msg.err = session.Analyze(dir)
		case actionUndo:
			result, err := session.Undo()
			msg.undo, msg.err = &result, err
		}

		return msg
	}
}

// describe 生成一行状态说明
func (m *model) describe(msg operationDoneMsg) string {
	if msg.err != nil && msg.undo == nil {
		if errors.Is(msg.err, internal.ErrDirectoryNotFound) {
			return fmt.Sprintf("目录不存在或无法读取: %s", m.dir)
		}
		return fmt.Sprintf("操作失败: %v", msg.err)
	}

	switch {
	case msg.undo != nil:
		switch msg.undo.Status {
		case organizer.Undone:
			return fmt.Sprintf("已撤销: %s -> %s", msg.undo.Action.NewPath, msg.undo.Action.OriginalPath)
		case organizer.NothingToUndo:
			return "没有可以撤销的操作"
		case organizer.TargetMissing:
			return fmt.Sprintf("文件已不在 %s，该记录已丢弃", msg.undo.Action.NewPath)
		default:
			return fmt.Sprintf("撤销失败: %v", msg.err)
		}
	case msg.analysis != nil:
		return fmt.Sprintf("分析完成: %d 个文件，%d 个目录", msg.analysis.FileCount, msg.analysis.FolderCount)
	case msg.result != nil:
		return fmt.Sprintf("完成: 移动 %d 个，跳过 %d 个，失败 %d 个",
			msg.result.Moved, msg.result.Skipped, msg.result.Failed())
	default:
		return ""
	}
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	width, height := msg.Width, msg.Height

	m.dirInput.Width = width - 10
	m.actions.SetSize(width-4, min(height-10, len(actionItems)*3+4))
	m.progressBar.Width = width - 10
}

var _ list.Item = actionItem{}
