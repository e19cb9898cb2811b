package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/handlers"
	"github.com/jwebster45206/poke-arena/pkg/creature"
	"github.com/jwebster45206/poke-arena/pkg/prompts"
	"github.com/jwebster45206/poke-arena/pkg/state"
)

type tab int

const (
	tabGenerator tab = iota
	tabArena
)

// Focus targets on the generator tab
const (
	focusCount = iota
	focusTheme
	focusDescription
	generatorFocusCount
)

// Focus targets on the arena tab
const (
	focusChampion = iota
	focusOpponent
	focusEnvironment
	arenaFocusCount
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api     *APIClient
	session *state.Session
	tab     tab
	width   int
	height  int

	// Generator tab
	countInput       textinput.Model
	themeInput       textinput.Model
	descriptionInput textinput.Model
	generatorFocus   int
	collection       creature.Collection
	match            *creature.Creature
	warning          string

	// Arena tab
	championInput  textarea.Model
	opponentInput  textarea.Model
	arenaFocus     int
	environments   []creature.Environment
	envIndex       int
	championStatus string
	opponentStatus string
	battle         *handlers.BattleResponse
	narrativeView  viewport.Model

	status        string
	err           error
	loading       bool
	progressTick  int
	showQuitModal bool
}

type generatedMsg struct {
	collection creature.Collection
	err        error
}

type matchedMsg struct {
	result *arena.MatchResult
	err    error
}

type exportedMsg struct {
	text string
	err  error
}

type resetMsg struct {
	session *state.Session
	err     error
}

type profileCheckedMsg struct {
	label  string
	result *handlers.ValidateProfileResponse
	err    error
}

type battleMsg struct {
	battle *handlers.BattleResponse
	err    error
}

type environmentsMsg struct {
	environments []creature.Environment
	err          error
}

type progressTickMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86")).
			Bold(true).
			Padding(0, 1)

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	headerCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

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

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(api *APIClient, sess *state.Session) ConsoleUI {
	count := textinput.New()
	count.Placeholder = strconv.Itoa(prompts.DefaultCount)
	count.CharLimit = 2
	count.Prompt = promptStyle.Render(":: ")
	count.Focus()

	theme := textinput.New()
	theme.Placeholder = "Feu, Glace, Cyberpunk..."
	theme.CharLimit = 80
	theme.Prompt = promptStyle.Render(":: ")

	description := textinput.New()
	description.Placeholder = "Décris ta personnalité..."
	description.CharLimit = 500
	description.Prompt = promptStyle.Render(":: ")

	champion := newProfileArea()
	opponent := newProfileArea()

	return ConsoleUI{
		api:              api,
		session:          sess,
		countInput:       count,
		themeInput:       theme,
		descriptionInput: description,
		collection:       sess.Collection,
		match:            sess.Match,
		championInput:    champion,
		opponentInput:    opponent,
		environments:     creature.Environments(),
		narrativeView:    viewport.New(60, 10),
	}
}

func newProfileArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = `{"Nom": "...", "Type": "..."}`
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetWidth(40)
	ta.SetHeight(8)
	return ta
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadEnvironments())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.showQuitModal = true
			return m, nil
		case "f1":
			return m.switchTab(tabGenerator)
		case "f2":
			return m.switchTab(tabArena)
		case "ctrl+t":
			if m.tab == tabGenerator {
				return m.switchTab(tabArena)
			}
			return m.switchTab(tabGenerator)
		}
		if m.tab == tabGenerator {
			return m.updateGenerator(msg)
		}
		return m.updateArena(msg)

	case generatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.warning = ""
		m.collection = msg.collection
		m.status = fmt.Sprintf("%d Pokémon générés.", len(msg.collection))
		return m, nil

	case matchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.result.Match != nil {
			m.match = msg.result.Match
			m.warning = ""
			m.status = "Ton Pokémon est " + msg.result.Match.Nom + ". Ctrl+E pour le copier."
		} else {
			m.warning = msg.result.Warning
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if err := clipboard.WriteAll(msg.text); err != nil {
			// Without a clipboard the profile can still be pasted into the arena tab.
			m.championInput.SetValue(msg.text)
			m.status = "Presse-papiers indisponible, profil placé dans Mon Champion."
			return m, m.checkProfile(arena.ChampionLabel, msg.text)
		}
		m.status = "Profil copié dans le presse-papiers."
		return m, nil

	case resetMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.session = msg.session
		m.collection = nil
		m.match = nil
		m.warning = ""
		m.status = "Session réinitialisée."
		return m, nil

	case profileCheckedMsg:
		status := describeProfileCheck(msg.result, msg.err)
		if msg.label == arena.ChampionLabel {
			m.championStatus = status
		} else {
			m.opponentStatus = status
		}
		return m, nil

	case battleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.battle = msg.battle
		m.narrativeView.SetContent(formatNarrative(msg.battle.Narrative, msg.battle.Winner, m.narrativeView.Width))
		m.narrativeView.GotoTop()
		return m, nil

	case environmentsMsg:
		if msg.err == nil && len(msg.environments) > 0 {
			m.environments = msg.environments
			m.envIndex = 0
		}
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			return m, progressTick()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m ConsoleUI) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.err = nil
	return m, m.applyFocus()
}

func (m *ConsoleUI) resize() {
	half := (m.width - 8) / 2
	if half < 20 {
		half = 20
	}
	m.championInput.SetWidth(half)
	m.opponentInput.SetWidth(half)

	m.narrativeView.Width = m.width - 4
	height := m.height - 24
	if height < 5 {
		height = 5
	}
	m.narrativeView.Height = height
	if m.battle != nil {
		m.narrativeView.SetContent(formatNarrative(m.battle.Narrative, m.battle.Winner, m.narrativeView.Width))
	}
}

// applyFocus focuses the active input of the current tab and blurs the rest.
func (m *ConsoleUI) applyFocus() tea.Cmd {
	m.countInput.Blur()
	m.themeInput.Blur()
	m.descriptionInput.Blur()
	m.championInput.Blur()
	m.opponentInput.Blur()

	if m.tab == tabGenerator {
		switch m.generatorFocus {
		case focusCount:
			return m.countInput.Focus()
		case focusTheme:
			return m.themeInput.Focus()
		default:
			return m.descriptionInput.Focus()
		}
	}

	switch m.arenaFocus {
	case focusChampion:
		return m.championInput.Focus()
	case focusOpponent:
		return m.opponentInput.Focus()
	}
	return nil
}

func (m ConsoleUI) updateGenerator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.generatorFocus = (m.generatorFocus + 1) % generatorFocusCount
		return m, m.applyFocus()
	case "shift+tab":
		m.generatorFocus = (m.generatorFocus + generatorFocusCount - 1) % generatorFocusCount
		return m, m.applyFocus()
	case "ctrl+e":
		if m.match == nil {
			m.warning = "Aucun Pokémon sélectionné à exporter."
			return m, nil
		}
		return m, m.exportMatch()
	case "ctrl+r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.resetSession(), progressTick())
	case "enter":
		if m.loading {
			return m, nil
		}
		if m.generatorFocus == focusDescription {
			return m.startMatch()
		}
		return m.startGenerate()
	}
	return m.updateFocused(msg)
}

func (m ConsoleUI) startGenerate() (tea.Model, tea.Cmd) {
	count, err := parseCount(m.countInput.Value())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.status = ""
	m.loading = true
	m.progressTick = 0
	return m, tea.Batch(m.generate(count, strings.TrimSpace(m.themeInput.Value())), progressTick())
}

func (m ConsoleUI) startMatch() (tea.Model, tea.Cmd) {
	description := strings.TrimSpace(m.descriptionInput.Value())
	if len(m.collection) == 0 {
		m.warning = "Génère d'abord une collection."
		return m, nil
	}
	if description == "" {
		m.warning = "Décris ta personnalité pour trouver ton Pokémon."
		return m, nil
	}
	m.err = nil
	m.warning = ""
	m.loading = true
	m.progressTick = 0
	return m, tea.Batch(m.matchDescription(description), progressTick())
}

func (m ConsoleUI) updateArena(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		var cmds []tea.Cmd
		// Leaving a profile editor validates what was pasted into it.
		switch m.arenaFocus {
		case focusChampion:
			cmds = append(cmds, m.checkProfile(arena.ChampionLabel, m.championInput.Value()))
		case focusOpponent:
			cmds = append(cmds, m.checkProfile(arena.OpponentLabel, m.opponentInput.Value()))
		}
		if msg.String() == "tab" {
			m.arenaFocus = (m.arenaFocus + 1) % arenaFocusCount
		} else {
			m.arenaFocus = (m.arenaFocus + arenaFocusCount - 1) % arenaFocusCount
		}
		cmds = append(cmds, m.applyFocus())
		return m, tea.Batch(cmds...)
	case "ctrl+b":
		return m.startBattle()
	}

	if m.arenaFocus == focusEnvironment {
		switch msg.String() {
		case "left", "h":
			m.envIndex = cycleIndex(m.envIndex, -1, len(m.environments))
			return m, nil
		case "right", "l":
			m.envIndex = cycleIndex(m.envIndex, 1, len(m.environments))
			return m, nil
		case "enter":
			return m.startBattle()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.narrativeView, cmd = m.narrativeView.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m ConsoleUI) startBattle() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.err = nil
	m.loading = true
	m.progressTick = 0
	return m, tea.Batch(
		m.checkProfile(arena.ChampionLabel, m.championInput.Value()),
		m.checkProfile(arena.OpponentLabel, m.opponentInput.Value()),
		m.runBattle(m.championInput.Value(), m.opponentInput.Value(), m.currentEnvironment()),
		progressTick(),
	)
}

func (m ConsoleUI) currentEnvironment() creature.Environment {
	if len(m.environments) == 0 {
		return creature.DefaultEnvironment
	}
	return m.environments[m.envIndex]
}

// updateFocused forwards msg to the focused input only.
func (m ConsoleUI) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.tab == tabGenerator {
		switch m.generatorFocus {
		case focusCount:
			m.countInput, cmd = m.countInput.Update(msg)
		case focusTheme:
			m.themeInput, cmd = m.themeInput.Update(msg)
		default:
			m.descriptionInput, cmd = m.descriptionInput.Update(msg)
		}
		return m, cmd
	}

	switch m.arenaFocus {
	case focusChampion:
		m.championInput, cmd = m.championInput.Update(msg)
	case focusOpponent:
		m.opponentInput, cmd = m.opponentInput.Update(msg)
	default:
		m.narrativeView, cmd = m.narrativeView.Update(msg)
	}
	return m, cmd
}

// Commands

func (m ConsoleUI) generate(count int, theme string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.api.Generate(context.Background(), m.session.ID, count, theme)
		return generatedMsg{c, err}
	}
}

func (m ConsoleUI) matchDescription(description string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Match(context.Background(), m.session.ID, description)
		return matchedMsg{result, err}
	}
}

func (m ConsoleUI) exportMatch() tea.Cmd {
	return func() tea.Msg {
		text, err := m.api.ExportMatch(context.Background(), m.session.ID)
		return exportedMsg{text, err}
	}
}

func (m ConsoleUI) resetSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := m.api.ResetSession(context.Background(), m.session.ID)
		return resetMsg{sess, err}
	}
}

func (m ConsoleUI) checkProfile(label, profile string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.ValidateProfile(context.Background(), label, profile)
		return profileCheckedMsg{label, result, err}
	}
}

func (m ConsoleUI) runBattle(champion, opponent string, env creature.Environment) tea.Cmd {
	return func() tea.Msg {
		b, err := m.api.Battle(context.Background(), champion, opponent, env)
		return battleMsg{b, err}
	}
}

func (m ConsoleUI) loadEnvironments() tea.Cmd {
	return func() tea.Msg {
		envs, err := m.api.Environments(context.Background())
		return environmentsMsg{envs, err}
	}
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

// Quit modal

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "y", "Y":
			return m, tea.Quit
		case "n", "N":
			m.showQuitModal = false
			return m, m.applyFocus()
		}
	}
	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quitter l'arène ?"))
	content.WriteString("\n\n")
	content.WriteString("Ta session sera perdue après expiration.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Y pour quitter, N pour continuer"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

// Views

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.width == 0 {
		return "\n  Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")
	if m.tab == tabGenerator {
		b.WriteString(m.renderGenerator())
	} else {
		b.WriteString(m.renderArena())
	}
	b.WriteString("\n" + m.renderStatus())
	b.WriteString("\n" + separatorStyle.Render(strings.Repeat("─", max(m.width-4, 10))) + "\n")
	b.WriteString(promptStyle.Render(m.helpText()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m ConsoleUI) renderTabs() string {
	gen, ar := inactiveTabStyle, inactiveTabStyle
	if m.tab == tabGenerator {
		gen = activeTabStyle
	} else {
		ar = activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("POKÉARENA")+"  ",
		gen.Render("F1 Générateur"),
		" ",
		ar.Render("F2 Arène"),
	)
}

func (m ConsoleUI) renderGenerator() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(fmt.Sprintf("Nombre (%d-%d)", prompts.MinCount, prompts.MaxCount)) + "\n")
	b.WriteString(m.countInput.View() + "\n")
	b.WriteString(labelStyle.Render("Thème (optionnel)") + "\n")
	b.WriteString(m.themeInput.View() + "\n\n")

	if len(m.collection) == 0 {
		b.WriteString(promptStyle.Render("Aucune collection. Entrée pour générer.") + "\n\n")
	} else {
		b.WriteString(renderCollectionTable(m.collection, m.width-4) + "\n\n")
	}

	b.WriteString(labelStyle.Render("Ta personnalité") + "\n")
	b.WriteString(m.descriptionInput.View() + "\n")
	if m.match != nil {
		b.WriteString(matchStyle.Render(fmt.Sprintf("Ton Pokémon : %s (%s)", m.match.Nom, m.match.Type)) + "\n")
	}
	if m.warning != "" {
		b.WriteString(warningStyle.Render("⚠ "+m.warning) + "\n")
	}
	return b.String()
}

func (m ConsoleUI) renderArena() string {
	champion := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(arena.ChampionLabel),
		m.championInput.View(),
		m.championStatus,
	)
	opponent := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(arena.OpponentLabel),
		m.opponentInput.View(),
		m.opponentStatus,
	)

	env := "Environnement : " + renderEnvironmentPicker(m.environments, m.envIndex)
	if m.arenaFocus == focusEnvironment {
		env = labelStyle.Render("▶ ") + env
	} else {
		env = "  " + env
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, champion, "    ", opponent) + "\n\n")
	b.WriteString(env + "\n\n")
	if m.battle != nil {
		b.WriteString(m.narrativeView.View() + "\n")
	}
	return b.String()
}

func (m ConsoleUI) renderStatus() string {
	switch {
	case m.loading:
		return renderProgressBar(m.progressTick, m.width-4)
	case m.err != nil:
		return errorStyle.Render("Erreur : " + errorMessage(m.err))
	case m.status != "":
		return matchStyle.Render(m.status)
	}
	return ""
}

func (m ConsoleUI) helpText() string {
	if m.tab == tabGenerator {
		return "Tab: champ suivant • Entrée: générer / trouver • Ctrl+E: copier le profil • Ctrl+R: réinitialiser • F2: arène • Esc: quitter"
	}
	return "Tab: champ suivant • ←/→: environnement • Ctrl+B: combat • ↑/↓: défiler • F1: générateur • Esc: quitter"
}

// Rendering helpers

// renderCollectionTable draws the collection as a table fitting width.
func renderCollectionTable(c creature.Collection, width int) string {
	descWidth := width - 60
	if descWidth < 20 {
		descWidth = 20
	}

	rows := make([][]string, 0, len(c))
	for _, cr := range c {
		rows = append(rows, []string{
			cr.Nom,
			cr.Type,
			truncate.StringWithTail(cr.Description, uint(descWidth), "…"),
			truncate.StringWithTail(cr.Personnalite, 24, "…"),
			truncate.StringWithTail(cr.Stats, 20, "…"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(separatorStyle).
		Headers(creature.Fields...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	return t.Render()
}

func renderEnvironmentPicker(envs []creature.Environment, selected int) string {
	parts := make([]string, 0, len(envs))
	for i, env := range envs {
		if i == selected {
			parts = append(parts, activeTabStyle.Render(env.String()))
		} else {
			parts = append(parts, inactiveTabStyle.Render(env.String()))
		}
	}
	return strings.Join(parts, "")
}

// formatNarrative wraps the narrative to width, highlights the phase labels
// and the verdict line.
func formatNarrative(text, winner string, width int) string {
	if width < 20 {
		width = 20
	}
	wrapped := wordwrap.String(text, width)

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		for _, phase := range []string{prompts.PhaseOpening, prompts.PhaseTurn, prompts.PhaseEnding} {
			if strings.Contains(line, phase) {
				lines[i] = strings.Replace(line, phase, phaseStyle.Render(phase), 1)
				break
			}
		}
	}

	out := strings.Join(lines, "\n")
	if winner != "" {
		out += "\n\n" + winnerStyle.Render("🏆 "+winner)
	}
	return out
}

func describeProfileCheck(result *handlers.ValidateProfileResponse, err error) string {
	if err != nil {
		return errorStyle.Render("✗ " + errorMessage(err))
	}
	if result == nil || !result.Valid {
		return promptStyle.Render("Colle un profil JSON.")
	}
	return matchStyle.Render(fmt.Sprintf("✓ %s (%s)", result.Nom, result.Type))
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Response.Error
	}
	return err.Error()
}

// parseCount reads the requested collection size. Blank means the default;
// range checking is left to the API.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return prompts.DefaultCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("le nombre doit être un entier entre %d et %d", prompts.MinCount, prompts.MaxCount)
	}
	return n, nil
}

func cycleIndex(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// renderProgressBar creates an animated progress bar for loading states
func renderProgressBar(tick, width int) string {
	usable := width
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := tick % totalFrames
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
