// Package tui is the interactive terminal front end of the README generator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ghreadme/ghreadme/internal/config"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/i18n"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/readme"
	"github.com/ghreadme/ghreadme/internal/services"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight is the number of lines around the preview: title, two
	// inputs, status, help and the preview border.
	chromeHeight = 9
)

// readmeGenerator is the part of services.ReadmeService the UI drives.
type readmeGenerator interface {
	Generate(ctx context.Context, cred models.Credential, opts services.GenerateOptions) (*services.Result, error)
	Rerender() (*services.Result, error)
	Last() *services.Result
}

// Deps are the collaborators of the terminal UI.
type Deps struct {
	Service      readmeGenerator
	Settings     *config.Settings
	Translations *i18n.Translations
	Options      services.GenerateOptions
	// OutputPath is where ctrl+s writes the README.
	OutputPath string
	// SaveSettings persists Settings after each change.
	SaveSettings func(*config.Settings) error
	// WriteFile defaults to os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error
	// Clipboard opens the terminal that receives the OSC 52 copy sequence.
	// Defaults to /dev/tty.
	Clipboard func() (io.WriteCloser, error)
}

type mode int

const (
	modeForm mode = iota
	modeComments
	modeEditComment
)

type field int

const (
	fieldUsername field = iota
	fieldToken
)

type (
	generatedMsg struct {
		result *services.Result
		cred   models.Credential
	}
	generateErrMsg struct {
		err error
	}
	copyErrMsg struct {
		err error
	}
)

type Model struct {
	ctx  context.Context
	deps Deps
	keys KeyMap

	mode  mode
	focus field

	username textinput.Model
	token    textinput.Model
	editor   textinput.Model

	spinner  spinner.Model
	viewport viewport.Model
	styles   styles

	loading   bool
	status    string
	statusErr bool
	result    *services.Result

	repos      []models.RepoSummary
	cursor     int
	editedRepo string

	width  int
	height int
}

// New builds the initial model from the stored settings.
func New(ctx context.Context, deps Deps) Model {
	if deps.WriteFile == nil {
		deps.WriteFile = os.WriteFile
	}
	if deps.SaveSettings == nil {
		deps.SaveSettings = config.SaveSettings
	}
	if deps.OutputPath == "" {
		deps.OutputPath = "README.md"
	}
	if deps.Clipboard == nil {
		deps.Clipboard = openTTY
	}

	t := deps.Translations

	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = t.GetMessage("username_label", 0, nil)
	username.ShowSuggestions = true
	username.SetSuggestions(deps.Settings.UsernameHistory)
	username.SetValue(deps.Settings.Username)
	username.Focus()

	token := textinput.New()
	token.Prompt = ""
	token.Placeholder = t.GetMessage("token_label", 0, nil)
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.SetValue(deps.Settings.Token)

	editor := textinput.New()
	editor.Prompt = "> "
	editor.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		ctx:      ctx,
		deps:     deps,
		keys:     DefaultKeyMap,
		username: username,
		token:    token,
		editor:   editor,
		spinner:  s,
		viewport: viewport.New(defaultWidth-4, defaultHeight-chromeHeight),
		styles:   newStyles(deps.Settings.Theme),
		result:   deps.Service.Last(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refreshPreview()

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generatedMsg:
		return m.onGenerated(msg), nil

	case generateErrMsg:
		m.loading = false
		logger.FromContext(m.ctx).Warn("readme generation failed", "error", msg.err)
		m.setError(m.errorStatus(msg.err))
		return m, nil

	case copyErrMsg:
		logger.FromContext(m.ctx).Warn("failed to copy readme", "error", msg.err)
		m.setError(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeComments:
			return m.updateComments(msg)
		case modeEditComment:
			return m.updateEditor(msg)
		default:
			return m.updateForm(msg)
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Generate):
		return m.startGenerate()

	// The running fetch renders with the shared settings and translations.
	case m.loading && (key.Matches(msg, m.keys.ToggleTheme) ||
		key.Matches(msg, m.keys.NextLanguage) ||
		key.Matches(msg, m.keys.Comments)):
		m.setError(m.msg("warnings.busy", nil))
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		theme := m.deps.Settings.ToggleTheme()
		m.styles = newStyles(theme)
		m.persist()
		m.refreshPreview()
		m.setStatus(m.msg("status_messages.theme_changed", map[string]interface{}{
			"Theme": m.msg("themes."+string(theme), nil),
		}))
		return m, nil

	case key.Matches(msg, m.keys.NextLanguage):
		return m.cycleLanguage(), nil

	case key.Matches(msg, m.keys.Comments):
		if m.result == nil {
			m.setError(m.msg("warnings.generate_readme_first", nil))
			return m, nil
		}
		m.repos = m.result.Classification.Repositories()
		m.cursor = 0
		m.mode = modeComments
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.saveReadme(), nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyReadme()

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		// Tab completes a remembered username before moving on.
		if m.focus == fieldUsername && msg.String() == "tab" && m.canCompleteUsername() {
			var cmd tea.Cmd
			m.username, cmd = m.username.Update(msg)
			return m, cmd
		}
		return m.switchField(), nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == fieldUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.token, cmd = m.token.Update(msg)
	}
	return m, cmd
}

func (m Model) canCompleteUsername() bool {
	suggestion := m.username.CurrentSuggestion()
	return m.username.Value() != "" && suggestion != "" && suggestion != m.username.Value()
}

func (m Model) switchField() Model {
	if m.focus == fieldUsername {
		m.focus = fieldToken
		m.username.Blur()
		m.token.Focus()
	} else {
		m.focus = fieldUsername
		m.token.Blur()
		m.username.Focus()
	}
	return m
}

// startGenerate launches one fetch. Requests made while a fetch runs are ignored.
func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	cred := models.Credential{
		Username: strings.TrimSpace(m.username.Value()),
		Token:    strings.TrimSpace(m.token.Value()),
	}
	if !cred.Complete() {
		m.setError(m.msg("status_messages.fill_both_fields", nil))
		return m, nil
	}

	m.loading = true
	m.setStatus(m.msg("status_messages.generating", map[string]interface{}{"Username": cred.Username}))

	return m, tea.Batch(m.spinner.Tick, m.generate(cred))
}

func (m Model) generate(cred models.Credential) tea.Cmd {
	service := m.deps.Service
	ctx := m.ctx
	opts := m.deps.Options
	return func() tea.Msg {
		result, err := service.Generate(ctx, cred, opts)
		if err != nil {
			return generateErrMsg{err: err}
		}
		return generatedMsg{result: result, cred: cred}
	}
}

func (m Model) onGenerated(msg generatedMsg) Model {
	m.loading = false
	m.result = msg.result

	settings := m.deps.Settings
	settings.RecordUsername(msg.cred.Username)
	settings.Token = msg.cred.Token
	m.username.SetSuggestions(settings.UsernameHistory)

	m.refreshPreview()
	m.viewport.GotoTop()

	status := m.msg("status_messages.connection_validated", nil) + " " +
		m.msg("status_messages.repositories_found", map[string]interface{}{
			"Count": msg.result.Classification.Total(),
		})
	m.setStatus(status)
	m.persist()

	return m
}

func (m Model) cycleLanguage() Model {
	settings := m.deps.Settings
	lang := config.NextLanguage(settings.Language)

	if err := m.deps.Translations.SetLanguage(lang); err != nil {
		m.setError(err.Error())
		return m
	}
	if err := settings.SetLanguage(lang); err != nil {
		m.setError(err.Error())
		return m
	}
	m.persist()

	m.username.Placeholder = m.msg("username_label", nil)
	m.token.Placeholder = m.msg("token_label", nil)
	m.rerender()
	m.setStatus(m.msg("status_messages.language_changed", map[string]interface{}{
		"Language": i18n.LanguageName(lang),
	}))

	return m
}

func (m Model) saveReadme() Model {
	if m.result == nil {
		m.setError(m.msg("warnings.generate_readme_first", nil))
		return m
	}

	if err := m.deps.WriteFile(m.deps.OutputPath, []byte(m.result.Markdown), 0o644); err != nil {
		logger.FromContext(m.ctx).Error("failed to write readme", "path", m.deps.OutputPath, "error", err)
		m.setError(err.Error())
		return m
	}

	m.setStatus(m.msg("status_messages.readme_saved", map[string]interface{}{"Path": m.deps.OutputPath}))
	return m
}

// copyReadme sends the Markdown to the terminal clipboard with OSC 52.
func (m Model) copyReadme() (tea.Model, tea.Cmd) {
	if m.result == nil {
		m.setError(m.msg("warnings.generate_readme_first", nil))
		return m, nil
	}

	markdown := m.result.Markdown
	open := m.deps.Clipboard
	m.setStatus(m.msg("status_messages.readme_copied", nil))

	return m, func() tea.Msg {
		w, err := open()
		if err != nil {
			return copyErrMsg{err: err}
		}
		defer func() { _ = w.Close() }()

		termenv.NewOutput(w).Copy(markdown)
		return nil
	}
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// rerender rebuilds the Markdown after a comment or language change.
func (m *Model) rerender() {
	if m.result == nil {
		return
	}
	result, err := m.deps.Service.Rerender()
	if err != nil {
		m.setError(m.errorStatus(err))
		return
	}
	m.result = result
	m.refreshPreview()
}

// persist saves the settings; a failure is shown but does not undo the change.
func (m *Model) persist() {
	if err := m.deps.SaveSettings(m.deps.Settings); err != nil {
		logger.FromContext(m.ctx).Error("failed to save settings", "error", err)
		m.setError(m.msg("errors.settings_error", nil))
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-chromeHeight, 3)
	m.username.Width = max(width-16, 10)
	m.token.Width = max(width-16, 10)
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	if m.result == nil {
		m.viewport.SetContent(m.styles.status.Render(m.msg("tui.empty_preview", nil)))
		return
	}
	m.viewport.SetContent(readme.RenderTerminal(m.result.Markdown, m.deps.Settings.Theme, m.viewport.Width))
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.statusErr = false
}

func (m *Model) setError(status string) {
	m.status = status
	m.statusErr = true
}

func (m Model) errorStatus(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrCredentialsMissing):
		return m.msg("status_messages.fill_both_fields", nil)
	case errors.Is(err, domainErrors.ErrGitHubTokenInvalid):
		return m.msg("errors.invalid_credentials", nil)
	case errors.Is(err, domainErrors.ErrInvalidUsername):
		return m.msg("errors.invalid_username", nil)
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Type == domainErrors.TypeVCS {
		return fmt.Sprintf("%s (%s)", m.msg("errors.github_data_error", nil), appErr.Message)
	}
	return err.Error()
}

func (m Model) msg(id string, data map[string]interface{}) string {
	return m.deps.Translations.GetMessage(id, 0, data)
}

func (m Model) View() string {
	if m.mode != modeForm {
		return m.commentsView()
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.msg("app_title", nil)))
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render(m.msg("username_label", nil)) + m.username.View() + "\n")
	b.WriteString(m.styles.label.Render(m.msg("token_label", nil)) + m.token.View() + "\n")

	status := m.status
	if m.loading {
		status = m.spinner.View() + " " + status
	}
	if m.statusErr {
		b.WriteString(m.styles.errorMsg.Render(status))
	} else {
		b.WriteString(m.styles.status.Render(status))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.preview.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.msg("tui.keys", nil)))

	return b.String()
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running terminal ui: %w", err)
	}
	return nil
}
