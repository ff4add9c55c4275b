package wizard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/sway/internal/form"
	"github.com/mark3labs/sway/internal/state"
	"github.com/mark3labs/sway/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (*Model, *form.Form, string) {
	t.Helper()
	f := testfixtures.NewForm(t, testfixtures.SignupYAML)

	dir := t.TempDir()
	m := New(context.Background(), f, Options{DataDir: dir})
	_ = m.Init()
	return m, f, dir
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// press sends a key and runs the navigation it starts, if any.
func press(t *testing.T, m *Model, k tea.KeyPressMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(k)
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if nav, ok := msg.(navDoneMsg); ok {
		_, _ = m.Update(nav)
	}
	return msg
}

func TestNew_FirstStep(t *testing.T) {
	m, _, _ := newTestModel(t)

	require.Equal(t, "contact", m.stepID)
	require.Len(t, m.fields, 2)
	require.Equal(t, 0, m.focus)

	view := m.render()
	require.Contains(t, view, "Step 1 of 3: Contact")
	require.Contains(t, view, "who")
	require.Contains(t, view, "Previous")
	require.Contains(t, view, "Next")
}

func TestTyping_StoresAnswer(t *testing.T) {
	m, f, _ := newTestModel(t)

	typeText(m, "Ada")

	require.Equal(t, "Ada", f.Value("contact", "name"))
	require.True(t, f.Snapshot().CanNavigateNext)
}

func TestNext_InvalidStepShakes(t *testing.T) {
	m, f, _ := newTestModel(t)

	msg := press(t, m, key(tea.KeyEnter))
	nav, ok := msg.(navDoneMsg)
	require.True(t, ok)
	require.ErrorIs(t, nav.err, form.ErrStepInvalid)

	require.Equal(t, "contact", m.stepID)
	require.True(t, m.shake.active)
	require.NotZero(t, m.shake.Offset())
	require.True(t, m.statusErr)
	require.Contains(t, m.render(), "required")
	require.Equal(t, "contact", string(f.Snapshot().CurrentStepID))
}

func TestNext_Advances(t *testing.T) {
	m, f, _ := newTestModel(t)

	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))

	require.Equal(t, "prefs", m.stepID)
	require.Equal(t, "prefs", string(f.Snapshot().CurrentStepID))
	require.False(t, m.busy)

	view := m.render()
	require.Contains(t, view, "Step 2 of 3: Preferences")
	require.Contains(t, view, "→")
}

func TestEnterInTextareaDoesNotNavigate(t *testing.T) {
	m, f, _ := newTestModel(t)
	typeText(m, "Ada")

	m.Update(key(tea.KeyTab))
	require.True(t, m.focusedField().multiline())

	typeText(m, "one")
	m.Update(key(tea.KeyEnter))
	typeText(m, "two")

	require.False(t, m.busy, "enter must not start a navigation")
	require.Equal(t, "contact", m.stepID)
	require.Equal(t, "one\ntwo", f.Value("contact", "bio"))
}

func TestEsc(t *testing.T) {
	m, f, _ := newTestModel(t)
	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))
	require.Equal(t, "prefs", m.stepID)

	press(t, m, key(tea.KeyEscape))
	require.Equal(t, "contact", m.stepID)
	require.Contains(t, m.render(), "←")
	require.Equal(t, "Ada", m.fields[0].Value(), "answers survive going back")

	msg := press(t, m, key(tea.KeyEscape))
	require.IsType(t, tea.QuitMsg{}, msg)
	require.True(t, m.Result().Cancelled)
	require.False(t, m.Result().Submitted)
	require.Equal(t, "contact", string(f.Snapshot().CurrentStepID))
}

func TestBoolAndChoiceFields(t *testing.T) {
	m, f, _ := newTestModel(t)
	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))

	m.Update(key(tea.KeySpace))
	require.Equal(t, "true", f.Value("prefs", "weekly"))
	m.Update(key(tea.KeySpace))
	require.Equal(t, "false", f.Value("prefs", "weekly"))

	m.Update(key(tea.KeyTab))
	m.Update(key(tea.KeyRight))
	require.Equal(t, "go", f.Value("prefs", "topic"))
	m.Update(key(tea.KeyRight))
	require.Equal(t, "rust", f.Value("prefs", "topic"))
	m.Update(key(tea.KeyRight))
	require.Equal(t, "go", f.Value("prefs", "topic"))
	m.Update(key(tea.KeyLeft))
	require.Equal(t, "rust", f.Value("prefs", "topic"))
}

func TestSubmit(t *testing.T) {
	m, f, _ := newTestModel(t)
	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))
	press(t, m, key(tea.KeyEnter))
	require.Equal(t, "confirm", m.stepID)
	require.Contains(t, m.render(), "Submit")

	// Required checkbox unticked.
	msg := press(t, m, key(tea.KeyEnter))
	require.ErrorIs(t, msg.(navDoneMsg).err, form.ErrNotComplete)
	require.True(t, m.shake.active)

	m.Update(key(tea.KeySpace))
	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	res := m.Result()
	require.True(t, res.Submitted)
	require.False(t, res.Cancelled)
	require.Equal(t, "test-run", res.Run)
	require.Equal(t, "Thanks Ada", res.Summary)
	require.True(t, f.Submitted())
}

func TestSubmit_PublishesEvents(t *testing.T) {
	pub := testfixtures.NewMockPublisher()
	f := testfixtures.NewForm(t, testfixtures.SignupYAML, form.WithPublisher(pub))
	m := New(context.Background(), f, Options{DataDir: t.TempDir()})
	_ = m.Init()

	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))
	press(t, m, key(tea.KeyEnter))
	m.Update(key(tea.KeySpace))
	press(t, m, key(tea.KeyEnter))

	types := pub.Types()
	require.Equal(t, form.EventStart, types[0])
	require.Equal(t, form.EventSubmit, types[len(types)-1])
	require.Contains(t, types, form.EventStepChange)
	require.Equal(t, "Ada", pub.Events()[len(types)-1].Answers["contact.name"])
}

func TestView_CentersModal(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})

	out := testfixtures.Render(m.render())
	require.Contains(t, out, "Step 1 of 3: Contact")
	require.Contains(t, out, "Name")

	view := m.View()
	require.True(t, view.AltScreen)
	require.Equal(t, "Newsletter Signup", view.WindowTitle)
}

func TestButtonsFocus(t *testing.T) {
	m, f, _ := newTestModel(t)
	typeText(m, "Ada")
	press(t, m, key(tea.KeyEnter))
	require.Equal(t, "prefs", m.stepID)

	// weekly, topic, Previous
	m.Update(key(tea.KeyTab))
	m.Update(key(tea.KeyTab))
	require.Nil(t, m.focusedField())
	require.Equal(t, len(m.fields), m.focus)

	m.Update(key(tea.KeyRight))
	require.Equal(t, len(m.fields)+1, m.focus)
	m.Update(key(tea.KeyLeft))
	require.Equal(t, len(m.fields), m.focus)

	press(t, m, key(tea.KeyEnter))
	require.Equal(t, "contact", string(f.Snapshot().CurrentStepID))

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	require.Equal(t, len(m.fields)+1, m.focus, "shift+tab wraps to Next")
}

func TestToggleProgressPersists(t *testing.T) {
	m, _, dir := newTestModel(t)
	require.True(t, m.progressShown())
	require.Contains(t, m.render(), "░")

	m.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	require.False(t, m.progressShown())
	require.NotContains(t, m.render(), "░")
	require.False(t, state.Load(dir).Progress.Visible)

	// A new wizard picks the preference up.
	m2 := New(context.Background(), m.form, Options{DataDir: dir})
	require.False(t, m2.progressShown())
}

func TestHelpToggle(t *testing.T) {
	m, _, dir := newTestModel(t)
	m.focus = len(m.fields)

	require.NotContains(t, m.render(), "ctrl+e")
	m.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	require.Contains(t, m.render(), "ctrl+e")
	require.True(t, state.Load(dir).Help.Expanded)
}

func TestExternalChanges(t *testing.T) {
	m, f, _ := newTestModel(t)
	ctx := context.Background()

	require.NoError(t, f.SetValue(ctx, "contact", "bio", "from elsewhere"))
	m.Update(formChangedMsg{})
	require.Equal(t, "from elsewhere", m.fields[1].Value())

	require.NoError(t, f.ForceNext(ctx))
	m.Update(formChangedMsg{})
	require.Equal(t, "prefs", m.stepID)
}

func TestFieldEdited(t *testing.T) {
	m, f, _ := newTestModel(t)

	m.Update(fieldEditedMsg{Step: "contact", Field: "bio", Content: "line one\nline two"})
	require.Equal(t, "line one\nline two", f.Value("contact", "bio"))
	require.Equal(t, "line one\nline two", m.fields[1].Value())

	m.Update(fieldEditedMsg{Step: "prefs", Field: "bio", Content: "stale"})
	require.Equal(t, "line one\nline two", f.Value("contact", "bio"), "edits for another step are dropped")
}

func TestEditorFailed(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(editorFailedMsg{err: context.Canceled})
	require.True(t, m.statusErr)
	require.Contains(t, m.status, "editor failed")
}

func TestNoNavigationButtons(t *testing.T) {
	f := testfixtures.NewForm(t, `
name: bare
config:
  show_navigation: false
  show_progress: false
  transition:
    type: none
steps:
  - id: only
    title: Only
`)

	m := New(context.Background(), f, Options{})
	view := m.render()
	require.Contains(t, view, "Step 1 of 1: Only")
	require.NotContains(t, view, "Submit")
	require.NotContains(t, view, "░")
	require.Nil(t, m.moveFocus(1))
}

func TestShake(t *testing.T) {
	var s shake
	require.Zero(t, s.Offset())
	require.Nil(t, s.Update(shakeMsg{id: 0}))

	require.NotNil(t, s.Start())
	first := s.id
	require.Equal(t, shakeOffsets[0], s.Offset())

	// A restart makes earlier ticks stale.
	s.Start()
	require.Nil(t, s.Update(shakeMsg{id: first}))
	require.Equal(t, shakeOffsets[0], s.Offset())

	for i := 1; i < len(shakeOffsets); i++ {
		require.NotNil(t, s.Update(shakeMsg{id: s.id}))
		require.Equal(t, shakeOffsets[i], s.Offset())
	}
	require.Nil(t, s.Update(shakeMsg{id: s.id}))
	require.False(t, s.active)
	require.Zero(t, s.Offset())
}

func TestCreateNavButtons(t *testing.T) {
	tests := []struct {
		name                  string
		hasPrev, nextOK, last bool
		focused               int
		wantPrev, wantNext    ButtonState
		wantNextLabel         string
	}{
		{"first step", false, true, false, -1, ButtonDisabled, ButtonNormal, "Next →"},
		{"invalid step", true, false, false, -1, ButtonNormal, ButtonDisabled, "Next →"},
		{"last step", true, true, true, 1, ButtonNormal, ButtonFocused, "Submit"},
		{"focused disabled previous", false, true, false, 0, ButtonFocused, ButtonNormal, "Next →"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := CreateNavButtons(tt.hasPrev, tt.nextOK, tt.last, tt.focused)
			require.Len(t, buttons, 2)
			require.Equal(t, tt.wantPrev, buttons[0].State)
			require.Equal(t, tt.wantNext, buttons[1].State)
			require.Equal(t, tt.wantNextLabel, buttons[1].Label)
		})
	}
}

func TestRenderProgress(t *testing.T) {
	bar := renderProgress(50, 25)
	require.Contains(t, bar, " 50%")
	require.Contains(t, bar, "█")
	require.Contains(t, bar, "░")

	require.NotContains(t, renderProgress(0, 25), "█")
	require.NotContains(t, renderProgress(100, 25), "░")
}

func TestLastLine(t *testing.T) {
	require.Equal(t, "done", lastLine("step one\ndone\n"))
	require.Equal(t, "only", lastLine("only"))
	require.Empty(t, lastLine(""))
}
