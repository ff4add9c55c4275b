// Package wizard renders a form run in the terminal, one step at a time.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/sway/internal/form"
	"github.com/mark3labs/sway/internal/logger"
	"github.com/mark3labs/sway/internal/navigator"
	"github.com/mark3labs/sway/internal/state"
	"github.com/mark3labs/sway/internal/tui/theme"
)

// shakePad is the margin kept on both sides so the shake has room to move.
const shakePad = 3

// Options configures the wizard.
type Options struct {
	// DataDir holds the persisted UI preferences. Empty disables persistence.
	DataDir string
}

// Result is the outcome of a wizard run.
type Result struct {
	Run       string
	Submitted bool
	Cancelled bool
	Summary   string
}

type navKind int

const (
	navNext navKind = iota
	navPrevious
	navSubmit
)

// navDoneMsg carries the outcome of a navigation that ran off the UI loop.
type navDoneMsg struct {
	kind navKind
	err  error
}

// formChangedMsg reports a change made to the form, possibly by another
// client such as the MCP server.
type formChangedMsg struct {
	change navigator.Change
}

// Model is the BubbleTea model for a form run.
type Model struct {
	ctx     context.Context
	form    *form.Form
	dataDir string
	ui      *state.UIState

	stepID      string
	fields      []*fieldInput
	touched     map[string]bool
	description string

	// focus indexes fields, then the Previous and Next buttons.
	focus int

	busy      bool
	shake     shake
	status    string
	statusErr bool
	lastHook  string

	changes chan navigator.Change

	width  int
	height int

	cancelled bool
	submitted bool
	summary   string
}

// New creates a wizard for f. Changes made to f while the wizard runs are
// picked up and rendered.
func New(ctx context.Context, f *form.Form, opts Options) *Model {
	ui := state.DefaultUIState()
	if opts.DataDir != "" {
		ui = state.Load(opts.DataDir)
	}
	m := &Model{
		ctx:      ctx,
		form:     f,
		dataDir:  opts.DataDir,
		ui:       ui,
		changes:  make(chan navigator.Change, 64),
		width:    80,
		height:   24,
		lastHook: f.HookOutput(),
	}
	m.loadStep()
	return m
}

// Run shows the wizard until the form is submitted or the user quits.
func Run(ctx context.Context, f *form.Form, opts Options) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, f, opts)
	unsubscribe := f.Subscribe(func(c navigator.Change) {
		select {
		case m.changes <- c:
		default:
			// UI is behind; the next change refreshes everything anyway.
		}
	})
	defer unsubscribe()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	// A killed program may not hand the model back.
	if wm, ok := finalModel.(*Model); ok {
		m = wm
	}
	return m.Result(), nil
}

// Result returns the outcome so far.
func (m *Model) Result() *Result {
	return &Result{
		Run:       m.form.RunID(),
		Submitted: m.submitted,
		Cancelled: m.cancelled,
		Summary:   m.summary,
	}
}

// Init starts listening for form changes and focuses the first field.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChanges(), m.focusCmd())
}

// waitForChanges blocks until the form reports a change.
func (m *Model) waitForChanges() tea.Cmd {
	return func() tea.Msg {
		select {
		case c := <-m.changes:
			return formChangedMsg{change: c}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case navDoneMsg:
		return m, m.handleNavDone(msg)

	case formChangedMsg:
		return m, tea.Batch(m.syncStep(), m.waitForChanges())

	case fieldEditedMsg:
		if msg.Step == m.stepID {
			for _, fi := range m.fields {
				if fi.def.Name == msg.Field {
					fi.SetValue(msg.Content)
					m.commit(fi)
				}
			}
		}
		return m, nil

	case editorFailedMsg:
		logger.Warn("Editor failed: %v", msg.err)
		m.setStatus(fmt.Sprintf("editor failed: %v", msg.err), true)
		return m, nil

	case shakeMsg:
		return m, m.shake.Update(msg)
	}

	if fi := m.focusedField(); fi != nil {
		return m, fi.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	fi := m.focusedField()

	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return tea.Quit
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	case "ctrl+p":
		m.toggleProgress()
		return nil
	case "ctrl+e":
		if fi != nil && fi.multiline() {
			return openEditor(m.stepID, fi.def.Name, fi.Value())
		}
		return nil
	case "esc":
		if m.form.Snapshot().HasPrevious {
			return m.navigate(navPrevious)
		}
		m.cancelled = true
		return tea.Quit
	case "enter":
		if fi == nil || !fi.multiline() {
			return m.activate()
		}
	}

	if fi == nil {
		switch msg.String() {
		case "p":
			m.toggleProgress()
		case "?":
			m.ui.Help.Expanded = !m.ui.Help.Expanded
			m.saveUI()
		case "left", "h":
			if m.focus == len(m.fields)+1 {
				m.focus--
			}
		case "right", "l":
			if m.focus == len(m.fields) {
				m.focus++
			}
		}
		return nil
	}

	before := fi.Value()
	cmd := fi.Update(msg)
	if fi.Value() != before {
		m.commit(fi)
	}
	return cmd
}

// activate runs the focused button, or Next/Submit from a field.
func (m *Model) activate() tea.Cmd {
	if m.navigationShown() && m.focus == len(m.fields) {
		return m.navigate(navPrevious)
	}
	if m.form.Snapshot().HasNext {
		return m.navigate(navNext)
	}
	return m.navigate(navSubmit)
}

// navigate runs a navigation off the UI loop, since hooks may take a while.
func (m *Model) navigate(kind navKind) tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	f, ctx := m.form, m.ctx
	return func() tea.Msg {
		var err error
		switch kind {
		case navNext:
			err = f.Next(ctx)
		case navPrevious:
			err = f.Previous(ctx)
		case navSubmit:
			err = f.Submit(ctx)
		}
		return navDoneMsg{kind: kind, err: err}
	}
}

func (m *Model) handleNavDone(msg navDoneMsg) tea.Cmd {
	m.busy = false

	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		if errors.Is(msg.err, form.ErrStepInvalid) ||
			errors.Is(msg.err, form.ErrNotComplete) ||
			errors.Is(msg.err, form.ErrExitBlocked) ||
			errors.Is(msg.err, form.ErrSubmitFailed) {
			for _, fi := range m.fields {
				m.touched[fi.def.Name] = true
			}
			return tea.Batch(m.syncStep(), m.shake.Start())
		}
		return m.syncStep()
	}

	m.setStatus("", false)
	if out := m.form.HookOutput(); out != m.lastHook {
		m.lastHook = out
		m.setStatus(lastLine(out), false)
	}

	if msg.kind == navSubmit {
		m.submitted = true
		m.summary = m.form.Summary()
		return tea.Quit
	}
	return m.syncStep()
}

// syncStep reloads the step if it changed, otherwise refreshes the values
// of fields the user is not editing.
func (m *Model) syncStep() tea.Cmd {
	id, ok := m.form.Navigator().CurrentStepID()
	if !ok {
		return nil
	}
	if string(id) != m.stepID {
		m.loadStep()
		return m.focusCmd()
	}
	focused := m.focusedField()
	for _, fi := range m.fields {
		if fi == focused {
			continue
		}
		if v := m.form.Value(m.stepID, fi.def.Name); v != fi.Value() {
			fi.SetValue(v)
		}
	}
	return nil
}

// loadStep builds inputs for the current step.
func (m *Model) loadStep() {
	m.fields = nil
	m.touched = make(map[string]bool)
	m.description = ""
	m.stepID = ""
	m.focus = 0

	step, ok := m.form.CurrentStep()
	if !ok {
		return
	}
	m.stepID = step.ID
	w := m.contentWidth()
	for i := range step.Fields {
		def := &step.Fields[i]
		m.fields = append(m.fields, newFieldInput(def, m.form.Value(step.ID, def.Name), w))
	}
	m.description = renderMarkdown(step.Description, w)
	if len(m.fields) == 0 {
		// Straight to Next.
		m.focus = 1
	}
}

// commit stores the value of fi in the form.
func (m *Model) commit(fi *fieldInput) {
	m.touched[fi.def.Name] = true
	if err := m.form.SetValue(m.ctx, m.stepID, fi.def.Name, fi.Value()); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) focusedField() *fieldInput {
	if m.focus >= 0 && m.focus < len(m.fields) {
		return m.fields[m.focus]
	}
	return nil
}

func (m *Model) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i, fi := range m.fields {
		if i == m.focus {
			cmd = fi.Focus()
		} else {
			fi.Blur()
		}
	}
	return cmd
}

// moveFocus cycles through fields and, when shown, the two buttons.
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.fields)
	if m.navigationShown() {
		n += 2
	}
	if n == 0 {
		return nil
	}
	m.focus = (m.focus + delta + n) % n
	return m.focusCmd()
}

func (m *Model) navigationShown() bool {
	return m.form.Definition().Config.ShowNavigation
}

func (m *Model) progressShown() bool {
	return m.form.Definition().Config.ShowProgress && m.ui.Progress.Visible
}

func (m *Model) toggleProgress() {
	m.ui.Progress.Visible = !m.ui.Progress.Visible
	m.saveUI()
}

func (m *Model) saveUI() {
	if m.dataDir == "" {
		return
	}
	if err := state.Save(m.dataDir, m.ui); err != nil {
		logger.Warn("Failed to save UI state: %v", err)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) contentWidth() int {
	return min(max(m.modalWidth()-6, 30), 100)
}

func (m *Model) modalWidth() int {
	return min(max(m.width-2*shakePad-4, 40), 100)
}

func (m *Model) resize() {
	w := m.contentWidth()
	for _, fi := range m.fields {
		fi.SetWidth(w)
	}
	if step, ok := m.form.CurrentStep(); ok {
		m.description = renderMarkdown(step.Description, w)
	}
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.WindowTitle = m.form.Definition().Title

	areaWidth := max(m.width-2*shakePad, 1)
	content := lipgloss.Place(areaWidth, m.height,
		lipgloss.Center, lipgloss.Center,
		m.render(),
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	x := shakePad + m.shake.Offset()
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: x, Y: 0},
		Max: uv.Position{X: x + areaWidth, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the modal with the current step.
func (m *Model) render() string {
	s := theme.Current().S()
	snap := m.form.Snapshot()
	w := m.contentWidth()

	var sections []string
	sections = append(sections, m.renderTitle(snap))
	if m.progressShown() {
		sections = append(sections, renderProgress(snap.Progress, w))
	}
	if m.description != "" {
		sections = append(sections, "", m.description)
	}

	errs := m.form.Errors(m.stepID)
	for i, fi := range m.fields {
		sections = append(sections, "")
		label := fi.def.Label
		if fi.def.Required {
			label += s.Required.Render(" *")
		}
		if i == m.focus {
			sections = append(sections, s.LabelFocus.Render(label))
		} else {
			sections = append(sections, s.Label.Render(label))
		}
		sections = append(sections, fi.View())
		if msg, ok := errs[fi.def.Name]; ok && m.touched[fi.def.Name] {
			sections = append(sections, s.FieldError.Render(msg))
		}
	}

	if m.navigationShown() {
		focused := -1
		if m.focus >= len(m.fields) {
			focused = m.focus - len(m.fields)
		}
		bar := NewButtonBar(CreateNavButtons(snap.HasPrevious, snap.CanNavigateNext, !snap.HasNext, focused))
		bar.SetWidth(w)
		sections = append(sections, "", bar.Render())
	}

	if m.status != "" {
		style := s.Status
		if m.statusErr {
			style = s.StatusError
		}
		sections = append(sections, "", style.Render(m.status))
	}
	sections = append(sections, "", m.renderHints(snap))

	return s.ModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderTitle(snap navigator.Snapshot) string {
	s := theme.Current().S()
	def := m.form.Definition()

	title := "No steps"
	if snap.HasCurrent && snap.CurrentStep != nil {
		title = fmt.Sprintf("Step %d of %d: %s", snap.CurrentStepIndex+1, snap.TotalSteps, snap.CurrentStep.Title)
	}
	out := s.ModalTitle.Render(title)
	if def.Config.Transition.Type != "none" && snap.LastEvent != nil {
		marker := "→"
		if m.form.Direction() == navigator.Backward {
			marker = "←"
		}
		out += " " + s.Direction.Render(marker)
	}
	if m.busy {
		out += " " + s.Direction.Render("…")
	}
	return out
}

func (m *Model) renderHints(snap navigator.Snapshot) string {
	next := "next"
	if !snap.HasNext {
		next = "submit"
	}
	back := "back"
	if !snap.HasPrevious {
		back = "cancel"
	}

	if !m.ui.Help.Expanded {
		return renderHintBar(
			"tab", "focus",
			"enter", next,
			"esc", back,
			"?", "help",
		)
	}
	return renderHintBar(
		"tab/shift+tab", "focus",
		"enter", next,
		"esc", back,
		"space", "toggle",
		"←→", "choose",
		"ctrl+e", "editor",
		"ctrl+p", "progress",
		"ctrl+c", "quit",
	)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
