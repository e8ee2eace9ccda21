package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/file-organizer/pkg/organizer"
)

type State int

const (
	StateSelect State = iota
	StateRunning
	StateResult
)

type Focus int

const (
	FocusDirInput Focus = iota
	FocusActions
)

type action int

const (
	actionCategory action = iota
	actionExtension
	actionAlphabetical
	actionDate
	actionDuplicates
	actionAnalyze
	actionUndo
)

type actionItem struct {
	action action
	title  string
	desc   string
}

func (a actionItem) Title() string       { return a.title }
func (a actionItem) Description() string { return a.desc }
func (a actionItem) FilterValue() string { return a.title }

var actionItems = []list.Item{
	actionItem{actionCategory, "按分类整理", "Documents、Images、Videos… 完成后自动去重"},
	actionItem{actionExtension, "按扩展名整理", "移动到 <ext>_Files"},
	actionItem{actionAlphabetical, "按首字母整理", "移动到 Alphabetical/<字母>"},
	actionItem{actionDate, "按日期整理", "移动到 YYYY-MM"},
	actionItem{actionDuplicates, "查找重复文件", "保留第一个，其余移到 Duplicates"},
	actionItem{actionAnalyze, "分析目录", "文件数、总大小、各扩展名统计"},
	actionItem{actionUndo, "撤销上一步", "把最近一次移动的文件移回原处"},
}

type model struct {
	session *organizer.Session

	state   State
	focus   Focus
	dir     string
	running action

	done    int
	total   int
	current string
	last    operationDoneMsg
	status  string

	dirInput    textinput.Model
	actions     list.Model
	progressBar progress.Model
	spinner     spinner.Model
}

func initialModel(session *organizer.Session, dir string) model {
	dirInput := textinput.New()
	dirInput.Placeholder = "请输入要整理的目录（按回车确认）"
	dirInput.Prompt = "> "
	dirInput.PromptStyle = promptStyle
	dirInput.TextStyle = textStyle
	dirInput.SetValue(dir)

	actions := list.New(actionItems, list.NewDefaultDelegate(), 0, 16)
	actions.Title = "选择操作"
	actions.SetShowStatusBar(false)
	actions.SetFilteringEnabled(false)
	actions.Styles.Title = titleStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		session:     session,
		state:       StateSelect,
		focus:       FocusDirInput,
		dir:         dir,
		dirInput:    dirInput,
		actions:     actions,
		progressBar: progressBar,
		spinner:     s,
	}
	if dir != "" {
		m.focus = FocusActions
	}
	m.updateFocusState()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}
