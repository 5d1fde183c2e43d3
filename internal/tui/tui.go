// Package tui provides a Bubble Tea terminal user interface for the
// mint console.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/contract"
	"github.com/SaeeDawod/gen-nft-app/internal/generator"
	"github.com/SaeeDawod/gen-nft-app/internal/mint"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateWorking
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generator.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	inputErr  string
	err       error

	// Mint context
	ctx    context.Context
	cancel context.CancelFunc

	// Mint manager reference
	manager *mint.Manager
	result  *mint.MintResult

	// Progress events from the pipeline
	events    chan generator.ProgressEvent
	listening bool

	// Pipeline progress
	generated int32
	uploaded  int32
	total     int32

	// Options
	upload  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "0x0000000000000000000000000000000000000000"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		events:    make(chan generator.ProgressEvent, 64),
		ctx:       ctx,
		cancel:    cancel,
		upload:    settings.StorageConfigured(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the pipeline reports progress.
	ProgressMsg struct {
		Event generator.ProgressEvent
	}

	// MintDoneMsg is sent when the mint pipeline completes.
	MintDoneMsg struct {
		Result *mint.MintResult
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateWorking {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				return m.beginMint()
			}

		case "u":
			if m.state == StateInput {
				m.upload = !m.upload
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another mint
				m.state = StateInput
				m.logs = nil
				m.inputErr = ""
				m.err = nil
				m.result = nil
				m.manager = nil
				m.generated = 0
				m.uploaded = 0
				m.total = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == generator.LevelVerbose && !m.verbose {
			return m, m.waitForEvent()
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}
		cmds = append(cmds, m.waitForEvent())

	case MintDoneMsg:
		if m.manager != nil {
			m.generated, m.uploaded, m.total = m.manager.GetProgress()
		}
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.result = msg.Result
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateWorking {
			generated, uploaded, total := m.manager.GetProgress()
			m.generated = generated
			m.uploaded = uploaded
			m.total = total

			var percent float64
			if total > 0 {
				percent = float64(generated) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// beginMint validates the recipient, builds the manager and kicks off
// the pipeline.
func (m Model) beginMint() (tea.Model, tea.Cmd) {
	recipient, err := contract.ParseAddress(m.textInput.Value())
	if err != nil {
		m.inputErr = err.Error()
		return m, nil
	}

	settings := *m.settings
	if !m.upload {
		settings.StorageEndpoint = ""
	}

	events := m.events
	manager, err := mint.NewManager(&settings, func(event generator.ProgressEvent) {
		// Never block the pipeline on a stalled UI.
		select {
		case events <- event:
		default:
		}
	})
	if err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	m.manager = manager
	m.inputErr = ""
	m.state = StateWorking

	cmds := []tea.Cmd{m.startMint(recipient), m.tickProgress(), m.spinner.Tick}
	if !m.listening {
		m.listening = true
		cmds = append(cmds, m.waitForEvent())
	}
	return m, tea.Batch(cmds...)
}

// startMint runs the mint pipeline in the background.
func (m Model) startMint(to common.Address) tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	return func() tea.Msg {
		result, err := manager.MintAndGenerate(ctx, to)
		return MintDoneMsg{Result: result, Err: err}
	}
}

// waitForEvent delivers the next pipeline progress event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎨 " + m.settings.CollectionName + " Mint Console"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Generate token art and mint it on chain"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateWorking:
		b.WriteString(m.viewWorking())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Mint to address:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.inputErr != "" {
		b.WriteString(errorStyle.Render("✗ " + m.inputErr))
		b.WriteString("\n\n")
	}

	// Options
	uploadCheck := "[ ]"
	if m.upload {
		uploadCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Upload to object storage (u)\n", uploadCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputPath)))
	b.WriteString("\n")
	if m.settings.ContractConfigured() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Contract: %s", m.settings.ContractAddress)))
	} else {
		b.WriteString(warningStyle.Render("Contract service not configured"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewWorking() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Minting..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.generated) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Generated: %d/%d | Uploaded: %d",
		m.generated,
		m.total,
		m.uploaded,
	)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	name := m.settings.CollectionName
	txHash := ""
	location := ""
	if m.result != nil {
		name = m.manager.Generator().Collection().TokenName(m.result.Token.ID)
		txHash = m.result.TxHash
		location = m.result.Token.ImagePath
		if m.result.ImageURL != "" {
			location = m.result.ImageURL
		}
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Mint Complete!\n\n"+
			"Token: %s\n"+
			"Tx:    %s\n"+
			"Image: %s",
		accentStyle.Render(name),
		txHash,
		location,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generator.LevelError:
			style = errorStyle
			prefix = "✗"
		case generator.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generator.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generator.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: mint • u: upload • v: verbose • esc: quit"
	case StateWorking:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: mint another • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
