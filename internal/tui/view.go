package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jaiguruastro/astroremedy/internal/wizard"
)

const helpText = "tab/↑↓ move · enter select · space toggle · ←→ change · ctrl+t show password · esc back · ctrl+c quit"

// View renders the current screen.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	cardWidth := min(72, max(40, width-4))

	var body string
	if a.screen == screenSuccess {
		body = a.renderSuccess()
	} else {
		body = a.renderForm()
	}

	parts := []string{
		brandStyle.Render("✦ " + brandName),
		cardStyle.Width(cardWidth).Render(body),
	}
	if a.toast != nil {
		parts = append(parts, a.toast.render(cardWidth))
	}
	parts = append(parts,
		mutedStyle.Render(helpText),
		"",
		renderFooter(a.now().Year(), width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderForm() string {
	st := a.wiz.State()
	draft := a.wiz.Draft()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Account"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Join thousands discovering their cosmic destiny with expert guidance"))
	b.WriteString("\n\n")
	b.WriteString(renderProgress(st.Step))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(st.Step.Label()))
	b.WriteString("\n\n")

	focused, _ := a.focused()
	for _, it := range formItems(st.Step, st.OTP) {
		isFocused := it == focused
		switch it.kind {
		case kindInput:
			b.WriteString(a.renderInput(it.field, isFocused))
		case kindSelect:
			b.WriteString(renderSelect(it.selector, draft, isFocused))
		case kindConsent:
			b.WriteString(renderConsent(it.consent, draft, isFocused))
		case kindButton:
			if it.button == buttonBack {
				// Back and Next share a row, rendered with Next.
				continue
			}
			if it.button == buttonNext {
				b.WriteString(a.renderNav(st, focused))
				continue
			}
			b.WriteString(a.renderButton(it.button, st, isFocused))
		}
		b.WriteString("\n")

		if st.Step == wizard.StepPhone && it == inputItem(fieldPhone) {
			b.WriteString(renderOTPHeader(st.OTP))
		}
	}

	switch st.Step {
	case wizard.StepBirthDetails:
		b.WriteString(noticeStyle.Render("Astrology Note: birth details help provide accurate readings. All information is kept confidential and used only for astrological analysis."))
	case wizard.StepAgreements:
		b.WriteString(noticeStyle.Render("Final Notice: by proceeding you confirm that you are at least 18 years old and agree to be bound by these terms. Agreements are recorded with a timestamp and IP address."))
	}

	return b.String()
}

func renderProgress(step wizard.Step) string {
	parts := make([]string, 0, 2*int(wizard.LastStep))
	for s := wizard.FirstStep; s <= wizard.LastStep; s++ {
		style := stepIdleStyle
		if step >= s {
			style = stepActiveStyle
		}
		parts = append(parts, style.Render(fmt.Sprint(int(s))))
		if s < wizard.LastStep {
			connector := mutedStyle.Render("───")
			if step > s {
				connector = lipgloss.NewStyle().Foreground(colorPrimary).Render("───")
			}
			parts = append(parts, connector)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func renderOTPHeader(otp wizard.OTPState) string {
	line := labelStyle.Render("Phone Verification")
	switch otp {
	case wizard.OTPVerified:
		line += "  " + verifiedStyle.Render("✓ Phone number verified successfully")
	case wizard.OTPSent:
		line += "  " + mutedStyle.Render("code sent")
	}
	return line + "\n"
}

func (a *App) renderInput(f fieldID, focused bool) string {
	spec := fieldSpecs[f]
	label := labelStyle.Render(spec.label)
	if focused {
		label = focusedLabelStyle.Render(spec.label)
	}
	if spec.secret {
		hint := "ctrl+t show"
		if a.reveal[f] {
			hint = "ctrl+t hide"
		}
		label += "  " + mutedStyle.Render(hint)
	}
	return label + "\n" + a.inputs[f].View()
}

func renderSelect(s selectorID, d wizard.Draft, focused bool) string {
	label := labelStyle.Render(s.label())
	if focused {
		label = focusedLabelStyle.Render(s.label())
	}
	value := wizard.LabelFor(s.options(), s.get(d))
	return label + "\n" + mutedStyle.Render("‹ ") + value + mutedStyle.Render(" ›")
}

func renderConsent(c consentID, d wizard.Draft, focused bool) string {
	box := "[ ]"
	if c.get(d) {
		box = verifiedStyle.Render("[x]")
	}
	spec := consentSpecs[c]
	title := labelStyle.Render(spec.title)
	if focused {
		title = focusedLabelStyle.Render(spec.title)
	}

	lines := []string{box + " " + title}
	for _, line := range spec.detail {
		lines = append(lines, mutedStyle.Render("      • "+line))
	}
	return strings.Join(lines, "\n")
}

func (a *App) buttonLabel(b buttonID, st wizard.State) string {
	switch b {
	case buttonSendOTP:
		if st.InFlight(wizard.CallSendOTP) || a.dispatched[wizard.CallSendOTP] {
			return "Sending..."
		}
		return "Send Verification Code"
	case buttonVerifyOTP:
		if st.InFlight(wizard.CallVerifyOTP) || a.dispatched[wizard.CallVerifyOTP] {
			return "Verifying..."
		}
		return "Verify"
	case buttonResendOTP:
		return "Resend Code"
	case buttonBack:
		return "Back"
	case buttonNext:
		if st.Step == wizard.LastStep && (st.InFlight(wizard.CallSubmit) || a.dispatched[wizard.CallSubmit]) {
			return "Creating Account..."
		}
		return st.Step.NextLabel()
	case buttonCopyUUID:
		return "📋 Copy UUID to Clipboard"
	case buttonDashboard:
		return "Continue to Dashboard"
	case buttonLogin:
		return "Go to Login Page"
	}
	return ""
}

func (a *App) renderButton(b buttonID, st wizard.State, focused bool) string {
	style := buttonStyle
	if focused {
		style = focusedButtonStyle
	}
	return style.Render(a.buttonLabel(b, st))
}

func (a *App) renderNav(st wizard.State, focused item) string {
	next := a.renderButton(buttonNext, st, focused == buttonItem(buttonNext))
	if st.Step == wizard.FirstStep {
		return next
	}
	back := a.renderButton(buttonBack, st, focused == buttonItem(buttonBack))
	return lipgloss.JoinHorizontal(lipgloss.Top, back, "  ", next)
}

func (a *App) renderSuccess() string {
	st := a.wiz.State()
	focused, _ := a.focused()

	uuidBox := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(st.Result.UserID)

	lines := []string{
		verifiedStyle.Bold(true).Render("✓ Registration Complete!"),
		mutedStyle.Render("Your account has been successfully created. Save your UUID for future logins."),
		"",
		lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Your Unique UUID"),
		uuidBox,
		a.renderButton(buttonCopyUUID, st, focused == buttonItem(buttonCopyUUID)),
		lipgloss.NewStyle().Foreground(colorWarn).Render(`⚠ Save this UUID! You'll need it to login using the "UUID + Password" method.`),
		"",
		a.renderButton(buttonDashboard, st, focused == buttonItem(buttonDashboard)),
		a.renderButton(buttonLogin, st, focused == buttonItem(buttonLogin)),
	}
	return strings.Join(lines, "\n")
}
