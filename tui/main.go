package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 启动交互界面；整个界面共用一个会话，撤销可以跨越多次整理
func Run(session *organizer.Session, dir string) error {
	logger.Get().Info().Str("session", session.ID()).Msg("启动 TUI 界面")

	m := initialModel(session, dir)
	p := tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen())

	// 整理在 tea.Cmd 的 goroutine 中执行，进度通过 Send 送回界面
	session.SetProgress(func(done, total int, current string) {
		p.Send(progressMsg{done: done, total: total, current: current})
	})

	_, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
