package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/selector"
)

type selectMode int

const (
	selectModeBrowse selectMode = iota
	selectModeDetail
)

type selectModel struct {
	types  []selector.ProjectType
	outDir string
	cursor int
	width  int
	height int
	mode   selectMode

	filtering bool
	filter    textinput.Model
	current   selector.ProjectType

	statusMessage string
	fatalErr      error
}

type selectSaveMsg struct {
	message string
	err     error
}

var (
	selectTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	selectOKStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	selectSelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	selectPanelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectEssentialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	selectImportantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	selectOptionalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
)

func runSelect(args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	typesPath := fs.String("types", selector.DefaultTypesPath, "project types YAML path")
	outDir := fs.String("out", ".", "directory to write skill lists and prompts into")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("select requires an interactive terminal (TTY)")
	}

	types, err := selector.LoadTypes(strings.TrimSpace(*typesPath))
	if err != nil {
		return err
	}

	m := newSelectModel(types, strings.TrimSpace(*outDir))
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("select requires an interactive terminal (TTY)")
		}
		return err
	}
	if fm, ok := finalModel.(selectModel); ok {
		return fm.fatalErr
	}
	return nil
}

func newSelectModel(types []selector.ProjectType, outDir string) selectModel {
	filter := textinput.New()
	filter.Placeholder = "keyword (e.g. docker, auth, payment)"
	filter.CharLimit = 64
	return selectModel{
		types:  types,
		outDir: outDir,
		mode:   selectModeBrowse,
		filter: filter,
	}
}

// visibleTypes applies the keyword filter to the project-type list.
func (m selectModel) visibleTypes() []selector.ProjectType {
	keyword := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if keyword == "" {
		return m.types
	}
	out := make([]selector.ProjectType, 0, len(m.types))
	for _, pt := range m.types {
		if projectTypeMatches(pt, keyword) {
			out = append(out, pt)
		}
	}
	return out
}

func projectTypeMatches(pt selector.ProjectType, keyword string) bool {
	if strings.Contains(strings.ToLower(pt.Name), keyword) ||
		strings.Contains(strings.ToLower(pt.Description), keyword) {
		return true
	}
	for _, tier := range [][]string{pt.Essential, pt.Important, pt.Optional} {
		for _, s := range tier {
			if strings.Contains(strings.ToLower(s), keyword) {
				return true
			}
		}
	}
	return false
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case selectSaveMsg:
		if msg.err != nil {
			m.statusMessage = selectErrorStyle.Render(msg.err.Error())
		} else {
			m.statusMessage = selectOKStyle.Render(msg.message)
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case selectModeBrowse:
			return m.updateBrowse(msg)
		case selectModeDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m selectModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			m.cursor = 0
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	visible := m.visibleTypes()
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.statusMessage = ""
		return m, m.filter.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(visible) {
			m.current = visible[m.cursor]
			m.mode = selectModeDetail
			m.statusMessage = ""
		}
	}
	return m, nil
}

func (m selectModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "b":
		m.mode = selectModeBrowse
		m.statusMessage = ""
	case "s":
		return m, saveSkillListCmd(m.current, m.outDir)
	case "p":
		return m, savePromptCmd(m.current, m.outDir)
	}
	return m, nil
}

func saveSkillListCmd(pt selector.ProjectType, outDir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(outDir, selector.SkillListFileName(pt))
		if err := os.WriteFile(path, []byte(selector.SkillListMarkdown(pt)), 0o644); err != nil {
			return selectSaveMsg{err: fmt.Errorf("write skill list %s: %w", path, err)}
		}
		return selectSaveMsg{message: "skill list saved to " + path}
	}
}

func savePromptCmd(pt selector.ProjectType, outDir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(outDir, "claude_prompt.txt")
		if err := os.WriteFile(path, []byte(selector.KickoffPrompt(pt)), 0o644); err != nil {
			return selectSaveMsg{err: fmt.Errorf("write prompt %s: %w", path, err)}
		}
		return selectSaveMsg{message: "prompt saved to " + path}
	}
}

func (m selectModel) View() string {
	switch m.mode {
	case selectModeDetail:
		return m.viewDetail()
	default:
		return m.viewBrowse()
	}
}

func (m selectModel) viewBrowse() string {
	var b strings.Builder
	b.WriteString(selectTitleStyle.Render("Select Your Project Type"))
	b.WriteString("\n\n")
	if m.filtering || strings.TrimSpace(m.filter.Value()) != "" {
		b.WriteString("filter: " + m.filter.View())
		b.WriteString("\n\n")
	}
	visible := m.visibleTypes()
	if len(visible) == 0 {
		b.WriteString(selectMutedStyle.Render("no project types match the filter"))
		b.WriteString("\n")
	}
	for i, pt := range visible {
		line := fmt.Sprintf("%d. %s", i+1, pt.Name)
		if i == m.cursor {
			line = selectSelStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(selectMutedStyle.Render("   " + pt.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(selectMutedStyle.Render("up/down move · enter view skills · / filter · q quit"))
	if m.statusMessage != "" {
		b.WriteString("\n" + m.statusMessage)
	}
	return selectPanelStyle.Render(b.String())
}

func (m selectModel) viewDetail() string {
	pt := m.current
	var b strings.Builder
	b.WriteString(selectTitleStyle.Render("Project: " + pt.Name))
	b.WriteString("\n")
	b.WriteString(selectMutedStyle.Render(pt.Description))
	b.WriteString("\n\n")
	writeSkillTier(&b, selectEssentialStyle.Render("Essential Skills (Start Here)"), pt.Essential)
	writeSkillTier(&b, selectImportantStyle.Render("Important Skills (High Priority)"), pt.Important)
	writeSkillTier(&b, selectOptionalStyle.Render("Optional Skills (Nice to Have)"), pt.Optional)
	b.WriteString(selectMutedStyle.Render("s save skill list · p save prompt · b back · q quit"))
	if m.statusMessage != "" {
		b.WriteString("\n" + m.statusMessage)
	}
	return selectPanelStyle.Render(b.String())
}

func writeSkillTier(b *strings.Builder, title string, skills []string) {
	if len(skills) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, s := range skills {
		b.WriteString("  • " + s + "\n")
	}
	b.WriteString("\n")
}
