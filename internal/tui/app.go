// Package tui is the terminal front end for customer registration. It is a
// bubbletea program: App holds the screen state, Update turns key presses
// and finished network calls into wizard actions, and View renders the
// current step, any toast and the footer.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaiguruastro/astroremedy/internal/wizard"
)

type screen int

const (
	screenForm screen = iota
	screenSuccess
)

// Destination is where the customer asked to go after registering. It is
// a site path; cmd/astro prints it joined to the site URL.
type Destination string

const (
	DestinationNone      Destination = ""
	DestinationDashboard Destination = "/"
	DestinationLogin     Destination = "/login"
)

const toastTTL = 4 * time.Second

// callDoneMsg reports a finished wizard network call.
type callDoneMsg struct {
	call   wizard.Call
	notice wizard.Notice
	err    error
}

type toastExpiredMsg struct{ seq int }

// Option customizes App construction for tests and alternate runtimes.
type Option func(*App)

// WithLogger sets the logger. Anything written to the terminal while the
// program runs corrupts the screen, so pass a file logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		if write != nil {
			a.copy = write
		}
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// App is the bubbletea model for the registration wizard.
type App struct {
	ctx  context.Context
	wiz  *wizard.Wizard
	log  *slog.Logger
	copy func(string) error
	now  func() time.Time

	screen screen
	inputs [numFields]textinput.Model
	reveal [numFields]bool
	focus  int

	// dispatched guards against queueing the same call twice before the
	// first command has even started.
	dispatched [3]bool

	toast    *toast
	toastSeq int

	destination Destination
	width       int
	height      int
}

// New builds the model around a wizard. ctx bounds every network call.
func New(ctx context.Context, wiz *wizard.Wizard, opts ...Option) *App {
	a := &App{
		ctx:  ctx,
		wiz:  wiz,
		log:  slog.Default(),
		copy: clipboard.WriteAll,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	draft := wiz.Draft()
	for f := range numFields {
		spec := fieldSpecs[f]
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = spec.placeholder
		ti.CharLimit = spec.limit
		ti.Width = 40
		if spec.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(f.get(draft))
		a.inputs[f] = ti
	}
	return a
}

// Destination reports the post-registration choice once the program exits.
func (a *App) Destination() Destination { return a.destination }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.syncFocus()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case callDoneMsg:
		return a, a.handleCallDone(msg)

	case toastExpiredMsg:
		if a.toast != nil && msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, a.updateFocusedInput(msg)
}

func (a *App) items() []item {
	if a.screen == screenSuccess {
		return successItems()
	}
	st := a.wiz.State()
	return formItems(st.Step, st.OTP)
}

func (a *App) focused() (item, bool) {
	items := a.items()
	if a.focus < 0 || a.focus >= len(items) {
		return item{}, false
	}
	return items[a.focus], true
}

func (a *App) moveFocus(delta int) tea.Cmd {
	n := len(a.items())
	if n == 0 {
		return nil
	}
	a.focus = (a.focus + delta + n) % n
	return a.syncFocus()
}

// focusOn moves focus to the first item matching want, if present.
func (a *App) focusOn(want item) tea.Cmd {
	for i, it := range a.items() {
		if it == want {
			a.focus = i
			break
		}
	}
	return a.syncFocus()
}

// syncFocus clamps the focus index and gives the cursor to the focused
// text input, if any.
func (a *App) syncFocus() tea.Cmd {
	items := a.items()
	if a.focus >= len(items) {
		a.focus = len(items) - 1
	}
	if a.focus < 0 {
		a.focus = 0
	}

	var cmd tea.Cmd
	for f := range numFields {
		a.inputs[f].Blur()
	}
	if it, ok := a.focused(); ok && it.kind == kindInput {
		cmd = a.inputs[it.field].Focus()
	}
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "tab", "down":
		return a.moveFocus(1)
	case "shift+tab", "up":
		return a.moveFocus(-1)
	case "esc":
		if a.screen == screenSuccess {
			return tea.Quit
		}
		return a.back()
	case "pgdown":
		if a.screen == screenForm {
			return a.next()
		}
	case "pgup":
		if a.screen == screenForm {
			return a.back()
		}
	case "ctrl+t":
		if it, ok := a.focused(); ok && it.kind == kindInput && fieldSpecs[it.field].secret {
			a.toggleReveal(it.field)
		}
		return nil
	}

	it, ok := a.focused()
	if !ok {
		return nil
	}

	switch it.kind {
	case kindButton:
		if key == "enter" || key == " " {
			return a.press(it.button)
		}
		if a.screen == screenSuccess && key == "c" {
			return a.copyUUID()
		}
	case kindConsent:
		if key == "enter" || key == " " {
			_ = a.wiz.Edit(func(d *wizard.Draft) { it.consent.toggle(d) })
		}
	case kindSelect:
		switch key {
		case "left":
			a.cycle(it.selector, -1)
		case "right", " ":
			a.cycle(it.selector, 1)
		case "enter":
			return a.moveFocus(1)
		}
	case kindInput:
		if key == "enter" {
			return a.moveFocus(1)
		}
		return a.updateFocusedInput(msg)
	}
	return nil
}

// updateFocusedInput forwards msg to the focused text input and copies
// the new value into the draft.
func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	it, ok := a.focused()
	if !ok || it.kind != kindInput {
		return nil
	}

	var cmd tea.Cmd
	a.inputs[it.field], cmd = a.inputs[it.field].Update(msg)
	value := a.inputs[it.field].Value()
	_ = a.wiz.Edit(func(d *wizard.Draft) { it.field.set(d, value) })
	return cmd
}

func (a *App) toggleReveal(f fieldID) {
	a.reveal[f] = !a.reveal[f]
	if a.reveal[f] {
		a.inputs[f].EchoMode = textinput.EchoNormal
	} else {
		a.inputs[f].EchoMode = textinput.EchoPassword
	}
}

func (a *App) cycle(s selectorID, delta int) {
	opts := s.options()
	_ = a.wiz.Edit(func(d *wizard.Draft) {
		i := wizard.IndexOf(opts, s.get(*d))
		if i < 0 {
			i = 0
			delta = 0
		}
		s.set(d, opts[(i+delta+len(opts))%len(opts)].Value)
	})
}

func (a *App) press(b buttonID) tea.Cmd {
	switch b {
	case buttonSendOTP:
		return a.dispatch(wizard.CallSendOTP)
	case buttonVerifyOTP:
		return a.dispatch(wizard.CallVerifyOTP)
	case buttonResendOTP:
		if err := a.wiz.ResendOTP(); err != nil {
			return a.showError(err)
		}
		a.inputs[fieldOTP].SetValue("")
		return a.focusOn(buttonItem(buttonSendOTP))
	case buttonBack:
		return a.back()
	case buttonNext:
		return a.next()
	case buttonCopyUUID:
		return a.copyUUID()
	case buttonDashboard:
		a.destination = DestinationDashboard
		return tea.Quit
	case buttonLogin:
		a.destination = DestinationLogin
		return tea.Quit
	}
	return nil
}

func (a *App) next() tea.Cmd {
	if a.wiz.State().Step == wizard.LastStep {
		return a.dispatch(wizard.CallSubmit)
	}
	if err := a.wiz.Next(); err != nil {
		return a.showError(err)
	}
	a.focus = 0
	return a.syncFocus()
}

func (a *App) back() tea.Cmd {
	if err := a.wiz.Back(); err != nil {
		return nil
	}
	a.focus = 0
	return a.syncFocus()
}

// dispatch runs a wizard network call off the update loop. The result
// comes back as a callDoneMsg.
func (a *App) dispatch(call wizard.Call) tea.Cmd {
	if a.dispatched[call] {
		return nil
	}
	a.dispatched[call] = true

	wiz, ctx := a.wiz, a.ctx
	return func() tea.Msg {
		var (
			notice wizard.Notice
			err    error
		)
		switch call {
		case wizard.CallSendOTP:
			notice, err = wiz.SendOTP(ctx)
		case wizard.CallVerifyOTP:
			notice, err = wiz.VerifyOTP(ctx)
		case wizard.CallSubmit:
			notice, err = wiz.Submit(ctx)
		}
		return callDoneMsg{call: call, notice: notice, err: err}
	}
}

func (a *App) handleCallDone(msg callDoneMsg) tea.Cmd {
	a.dispatched[msg.call] = false

	if msg.err != nil {
		cmd := a.showError(msg.err)
		return tea.Batch(cmd, a.syncFocus())
	}

	toastCmd := a.showToast(toastSuccess, msg.notice.Title, msg.notice.Message)

	var focusCmd tea.Cmd
	switch msg.call {
	case wizard.CallSendOTP:
		focusCmd = a.focusOn(inputItem(fieldOTP))
	case wizard.CallVerifyOTP:
		focusCmd = a.focusOn(buttonItem(buttonNext))
	case wizard.CallSubmit:
		a.screen = screenSuccess
		a.focus = 0
		focusCmd = a.syncFocus()
	}
	return tea.Batch(toastCmd, focusCmd)
}

func (a *App) copyUUID() tea.Cmd {
	id := a.wiz.State().Result.UserID
	if err := a.copy(id); err != nil {
		a.log.Warn("clipboard write failed", "err", err)
		return a.showToast(toastError, "Copy Failed", "Unable to copy to clipboard")
	}
	return a.showToast(toastSuccess, "Copied!", "UUID copied to clipboard")
}

// showError surfaces a wizard refusal. Rejections become toasts; a busy
// or out-of-place action is only logged.
func (a *App) showError(err error) tea.Cmd {
	var rej *wizard.RejectionError
	if errors.As(err, &rej) {
		return a.showToast(toastError, rej.Title, rej.Message)
	}
	a.log.Debug("wizard action refused", "err", err)
	return nil
}
