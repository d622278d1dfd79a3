package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type phase int

const (
	phaseLoading phase = iota
	phaseSetupWorld
	phaseSetupCharacter
	phasePlaying
	phaseGameOver
)

const (
	worldPlaceholder     = "Describe the world, e.g. a drowned city six months after the outbreak..."
	characterPlaceholder = "Describe your character, e.g. a night-shift nurse who never finished her shift..."
	actionPlaceholder    = "What do you do?"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api          *APIClient
	gameState    *world.GameState
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	phase        phase
	worldSetting string
	ready        bool
	width        int
	height       int
	err          error
	status       string
	loading      bool

	showQuitModal bool
	progressTick  int
}

type stateLoadedMsg struct {
	gameState *world.GameState
	err       error
}

type gameUpdatedMsg struct {
	gameState *world.GameState
	err       error
}

type resetMsg struct {
	err error
}

type progressTickMsg struct{}

var titleCaser = cases.Title(language.English)

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(3)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = promptStyle

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewConsoleUI(api *APIClient) ConsoleUI {
	ta := textarea.New()
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	return ConsoleUI{
		api:          api,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: viewport.New(20, 20),
		phase:        phaseLoading,
	}
}

// logEntry is one block of the story log: the player's action, if any,
// followed by what happened.
type logEntry struct {
	Input string
	Text  string
}

// buildLog interleaves history with scene plots: the opening plot, then for
// every turn its history entry and the plot of the scene it produced.
func buildLog(gs *world.GameState) []logEntry {
	if gs == nil || len(gs.Scenes) == 0 {
		return nil
	}
	entries := []logEntry{{Text: gs.Scenes[0].Plot}}
	for i, h := range gs.History {
		input, outcome := splitHistory(h)
		text := outcome
		if i+1 < len(gs.Scenes) {
			text = strings.TrimSpace(text + "\n\n" + gs.Scenes[i+1].Plot)
		}
		entries = append(entries, logEntry{Input: input, Text: text})
	}
	return entries
}

// splitHistory separates "> input \noutcome " into its two parts.
func splitHistory(entry string) (string, string) {
	if !strings.HasPrefix(entry, "> ") {
		return "", strings.TrimSpace(entry)
	}
	head, rest, _ := strings.Cut(strings.TrimPrefix(entry, "> "), "\n")
	return strings.TrimSpace(head), strings.TrimSpace(rest)
}

func (e logEntry) plain() string {
	if e.Input == "" {
		return e.Text
	}
	return "> " + e.Input + "\n" + e.Text
}

func writeStatus(gs *world.GameState, width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CHARACTER") + "\n\n")

	p := gs.Player
	content.WriteString(labelStyle.Render(p.Name) + "\n")
	if p.Background != "" {
		content.WriteString(wordwrap.String(p.Background, width) + "\n")
	}
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Health: %s %d/%d\n", healthBar(p.Health, 10), p.Health, world.MaxHealth))
	content.WriteString(wordwrap.String(world.TierLabel(p.Tier), width) + "\n")
	content.WriteString(fmt.Sprintf("Luck: %.2f\n", p.Luck))
	if len(p.Tags) > 0 {
		content.WriteString("Traits: " + wordwrap.String(strings.Join(p.Tags, ", "), width) + "\n")
	}

	content.WriteString("\n" + titleStyle.Render("EQUIPMENT") + "\n\n")
	if len(gs.Equipment) == 0 {
		content.WriteString("Nothing\n")
	}
	for _, item := range gs.Equipment {
		content.WriteString(fmt.Sprintf("• %s (%s)\n", item.Name, titleCaser.String(string(item.Type))))
	}

	if scene := gs.CurrentScene(); scene != nil {
		content.WriteString("\n" + titleStyle.Render("SCENE") + "\n\n")
		content.WriteString(labelStyle.Render(titleCaser.String(scene.Location)) + "\n")
		for _, detail := range []string{scene.Time, scene.Weather, scene.Terrain} {
			if detail != "" {
				content.WriteString(wordwrap.String(detail, width) + "\n")
			}
		}
		visible := world.VisibleCreatures(scene.InteractiveCreatures)
		if len(visible) > 0 {
			content.WriteString("\nPresent:\n")
			for _, c := range visible {
				content.WriteString(fmt.Sprintf("• %s (%s)\n", c.Name, c.Type))
			}
		}
		if len(scene.InteractiveItems) > 0 {
			content.WriteString("\nNearby:\n")
			for _, item := range scene.InteractiveItems {
				content.WriteString(fmt.Sprintf("• %s\n", item.Name))
			}
		}
	}

	content.WriteString("\n" + titleStyle.Render("KEYS") + "\n\n")
	content.WriteString("• Enter: Act\n")
	content.WriteString("• Ctrl+Y: Copy last log\n")
	content.WriteString("• Ctrl+C: Quit\n")
	return content.String()
}

func healthBar(health, width int) string {
	filled := health * width / world.MaxHealth
	if health > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// writeLogContent renders the story log for the current viewport width.
func (m *ConsoleUI) writeLogContent() {
	width := m.logViewport.Width - 6
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("ASCENT") + "\n\n")

	switch m.phase {
	case phaseSetupWorld:
		content.WriteString("A new story begins. First, describe the world you want to play in.\n\n")
	case phaseSetupCharacter:
		content.WriteString(userStyle.Render("World: ") + wordwrap.String(m.worldSetting, width) + "\n\n")
		content.WriteString("Now describe the character you will play.\n\n")
	}

	for _, entry := range buildLog(m.gameState) {
		if entry.Input != "" {
			content.WriteString(userStyle.Render("> ") + wordwrap.String(entry.Input, width-2) + "\n\n")
		}
		content.WriteString(narratorStyle.Render(wordwrap.String(entry.Text, width)) + "\n\n")
	}

	if m.phase == phaseGameOver {
		content.WriteString(errorStyle.Render("Your story has ended.") + "\n")
		content.WriteString(promptStyle.Render("Press R to start a new game or Q to quit.") + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar() + "\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), width)) + "\n\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) refresh() {
	m.writeLogContent()
	if m.gameState != nil {
		m.metaViewport.SetContent(writeStatus(m.gameState, m.metaViewport.Width))
	} else {
		m.metaViewport.SetContent(titleStyle.Render("NEW GAME"))
	}
}

func (m *ConsoleUI) enterPhase(p phase) tea.Cmd {
	m.phase = p
	m.textarea.Reset()
	switch p {
	case phaseSetupWorld:
		m.textarea.Placeholder = worldPlaceholder
	case phaseSetupCharacter:
		m.textarea.Placeholder = characterPlaceholder
	case phasePlaying:
		m.textarea.Placeholder = actionPlaceholder
	case phaseGameOver:
		m.textarea.Blur()
		m.refresh()
		return nil
	}
	m.textarea.Focus()
	m.refresh()
	return textarea.Blink
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 2
	m.textarea.SetWidth(logWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadState()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case stateLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.enterPhase(phaseSetupWorld)
		}
		m.gameState = msg.gameState
		switch {
		case m.gameState == nil:
			return m, m.enterPhase(phaseSetupWorld)
		case m.gameState.GameOver:
			return m, m.enterPhase(phaseGameOver)
		default:
			return m, m.enterPhase(phasePlaying)
		}

	case gameUpdatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			if m.gameState == nil {
				return m, m.enterPhase(phaseSetupWorld)
			}
			m.refresh()
			return m, nil
		}
		m.err = nil
		m.gameState = msg.gameState
		if m.gameState.GameOver {
			return m, m.enterPhase(phaseGameOver)
		}
		return m, m.enterPhase(phasePlaying)

	case resetMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.refresh()
			return m, nil
		}
		m.err = nil
		m.gameState = nil
		m.worldSetting = ""
		return m, m.enterPhase(phaseSetupWorld)

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLogContent()
			return m, progressTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			m.copyLastLog()
			return m, nil
		}

		if m.phase == phaseGameOver {
			return m.updateGameOver(msg)
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) submit() (tea.Model, tea.Cmd) {
	if m.loading || m.phase == phaseLoading {
		return m, nil
	}
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}
	m.textarea.Reset()
	m.err = nil
	m.status = ""

	switch m.phase {
	case phaseSetupWorld:
		m.worldSetting = input
		return m, m.enterPhase(phaseSetupCharacter)

	case phaseSetupCharacter:
		m.loading = true
		m.progressTick = 0
		m.refresh()
		return m, tea.Batch(m.initGame(m.worldSetting, input), progressTick())

	case phasePlaying:
		m.loading = true
		m.progressTick = 0
		m.writeLogContent()
		return m, tea.Batch(m.act(input), progressTick())
	}
	return m, nil
}

func (m ConsoleUI) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch strings.ToLower(msg.String()) {
	case "r":
		m.loading = true
		m.refresh()
		return m, tea.Batch(m.reset(), progressTick())
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *ConsoleUI) copyLastLog() {
	entries := buildLog(m.gameState)
	if len(entries) == 0 {
		m.status = "Nothing to copy"
		return
	}
	if err := clipboard.WriteAll(entries[len(entries)-1].plain()); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied last log entry"
}

func (m ConsoleUI) loadState() tea.Cmd {
	return func() tea.Msg {
		gs, err := m.api.State()
		return stateLoadedMsg{gs, err}
	}
}

func (m ConsoleUI) initGame(worldSetting, characterDescription string) tea.Cmd {
	return func() tea.Msg {
		gs, err := m.api.Init(worldSetting, characterDescription)
		return gameUpdatedMsg{gs, err}
	}
}

func (m ConsoleUI) act(input string) tea.Cmd {
	return func() tea.Msg {
		gs, err := m.api.Generate(input)
		return gameUpdatedMsg{gs, err}
	}
}

// reset deletes the finished game so a new one can be set up.
func (m ConsoleUI) reset() tea.Cmd {
	return func() tea.Msg {
		return resetMsg{m.api.Reset()}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.phase == phaseGameOver {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved on the server.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if !m.ready || m.width == 0 {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	footer := m.textarea.View()
	switch {
	case m.phase == phaseGameOver:
		footer = errorStyle.Render("GAME OVER") + promptStyle.Render("  R: new game  Q: quit")
	case m.loading:
		footer = loadingStyle.Render("The story unfolds...")
	}
	if m.status != "" {
		footer = promptStyle.Render(m.status) + "\n" + footer
	}

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			footer,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
