package wizard_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/jaiguruastro/astroremedy/internal/wizard"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu sync.Mutex

	sendErr     error
	verifyCode  string
	registerErr error
	registerRes *astrosdk.RegisterResponse

	// block, when set, holds every call until it is closed.
	block chan struct{}
	// entered is signalled as each call starts.
	entered chan struct{}

	sends     []astrosdk.SendOTPRequest
	verifies  []astrosdk.VerifyOTPRequest
	registers []astrosdk.RegisterRequest
}

func (f *fakeBackend) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeBackend) SendOTP(_ context.Context, req astrosdk.SendOTPRequest) (*astrosdk.OTPResponse, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, req)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &astrosdk.OTPResponse{Message: "OTP sent"}, nil
}

func (f *fakeBackend) VerifyOTP(_ context.Context, req astrosdk.VerifyOTPRequest) (*astrosdk.OTPResponse, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies = append(f.verifies, req)
	if req.OTP != f.verifyCode {
		return nil, &astrosdk.APIError{StatusCode: http.StatusBadRequest, Code: astrosdk.ErrorCodeOTPInvalid, Message: "Invalid OTP"}
	}
	return &astrosdk.OTPResponse{Message: "Phone verified", Verified: true}, nil
}

func (f *fakeBackend) Register(_ context.Context, req astrosdk.RegisterRequest) (*astrosdk.RegisterResponse, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerRes != nil {
		return f.registerRes, nil
	}
	return &astrosdk.RegisterResponse{
		Token: "session-token",
		User:  astrosdk.User{ID: "3f0c8a5e-1d2b-4c6e-9f7a-0b1c2d3e4f50", FullName: req.FullName},
	}, nil
}

type memorySink struct {
	saved []wizard.Result
	err   error
}

func (m *memorySink) Save(r wizard.Result) error {
	m.saved = append(m.saved, r)
	return m.err
}

func newWizard(t *testing.T, b *fakeBackend, sink wizard.TokenSink) *wizard.Wizard {
	t.Helper()
	return wizard.New(b, sink, slogx.Discard())
}

func fillBasics(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	require.NoError(t, w.Edit(func(d *wizard.Draft) {
		b := validBasics()
		d.Username, d.FullName = b.Username, b.FullName
		d.Password, d.ConfirmPassword = b.Password, b.ConfirmPassword
		d.PhoneNumber = b.PhoneNumber
	}))
}

// toAgreements walks a fresh wizard through steps one to three.
func toAgreements(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	ctx := context.Background()

	fillBasics(t, w)
	require.NoError(t, w.Next())

	_, err := w.SendOTP(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.OTP = "123456" }))
	_, err = w.VerifyOTP(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Next())

	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepAgreements, w.State().Step)
}

func TestWeakPasswordThenFixed(t *testing.T) {
	w := newWizard(t, &fakeBackend{}, nil)
	fillBasics(t, w)
	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Password, d.ConfirmPassword = "abc12", "abc12" }))

	err := w.Next()
	var rej *wizard.RejectionError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Weak Password", rej.Title)
	require.Equal(t, wizard.StepBasicInfo, w.State().Step)

	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Password, d.ConfirmPassword = "abc123", "abc123" }))
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepPhone, w.State().Step)
}

func TestBackKeepsDraft(t *testing.T) {
	w := newWizard(t, &fakeBackend{}, nil)
	require.ErrorIs(t, w.Back(), wizard.ErrWrongStep)

	fillBasics(t, w)
	require.NoError(t, w.Next())
	before := w.Draft()

	require.NoError(t, w.Back())
	require.Equal(t, wizard.StepBasicInfo, w.State().Step)
	require.Equal(t, before, w.Draft())
}

func TestOTPFlow(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{verifyCode: "123456"}
	w := newWizard(t, b, nil)
	fillBasics(t, w)

	_, err := w.SendOTP(ctx)
	require.ErrorIs(t, err, wizard.ErrWrongStep)

	require.NoError(t, w.Next())

	// Wrong code keeps the state at sent and step two still blocks.
	notice, err := w.SendOTP(ctx)
	require.NoError(t, err)
	require.Equal(t, "OTP Sent", notice.Title)
	require.Equal(t, wizard.OTPSent, w.State().OTP)
	require.Len(t, b.sends, 1)
	require.Equal(t, astrosdk.SendOTPRequest{CountryCode: "+91", PhoneNumber: "9876543210", Purpose: "registration"}, b.sends[0])

	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.OTP = "000000" }))
	_, err = w.VerifyOTP(ctx)
	var rej *wizard.RejectionError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Invalid OTP", rej.Message)
	require.Equal(t, wizard.OTPSent, w.State().OTP)

	err = w.Next()
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Phone Verification Required", rej.Title)
	require.Equal(t, wizard.StepPhone, w.State().Step)

	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.OTP = "123456" }))
	notice, err = w.VerifyOTP(ctx)
	require.NoError(t, err)
	require.Equal(t, "Phone Verified", notice.Title)
	require.Equal(t, wizard.OTPVerified, w.State().OTP)
	require.Equal(t, "123456", b.verifies[1].OTP)
	require.Empty(t, b.verifies[1].Purpose)

	_, err = w.SendOTP(ctx)
	require.ErrorIs(t, err, wizard.ErrAlreadyVerified)
	require.ErrorIs(t, w.ResendOTP(), wizard.ErrAlreadyVerified)

	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepBirthDetails, w.State().Step)
}

func TestOTPPreconditions(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{}
	w := newWizard(t, b, nil)
	fillBasics(t, w)
	require.NoError(t, w.Next())

	_, err := w.VerifyOTP(ctx)
	require.ErrorIs(t, err, wizard.ErrWrongStep)

	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.PhoneNumber = "" }))
	_, err = w.SendOTP(ctx)
	var rej *wizard.RejectionError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "Phone Number Required", rej.Title)
	require.Empty(t, b.sends)

	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.PhoneNumber = "9876543210" }))
	_, err = w.SendOTP(ctx)
	require.NoError(t, err)

	_, err = w.VerifyOTP(ctx)
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "OTP Required", rej.Title)
	require.Empty(t, b.verifies)
}

func TestSendFailureKeepsState(t *testing.T) {
	ctx := context.Background()

	t.Run("backend message", func(t *testing.T) {
		b := &fakeBackend{sendErr: &astrosdk.APIError{StatusCode: 429, Message: "Too many requests. Please try again later."}}
		w := newWizard(t, b, nil)
		fillBasics(t, w)
		require.NoError(t, w.Next())

		_, err := w.SendOTP(ctx)
		var rej *wizard.RejectionError
		require.ErrorAs(t, err, &rej)
		require.Equal(t, "Failed to Send OTP", rej.Title)
		require.Equal(t, "Too many requests. Please try again later.", rej.Message)
		require.Equal(t, wizard.OTPUnsent, w.State().OTP)
		require.False(t, w.State().InFlight(wizard.CallSendOTP))
	})

	t.Run("transport failure uses fallback", func(t *testing.T) {
		b := &fakeBackend{sendErr: errors.New("dial tcp: connection refused")}
		w := newWizard(t, b, nil)
		fillBasics(t, w)
		require.NoError(t, w.Next())

		_, err := w.SendOTP(ctx)
		var rej *wizard.RejectionError
		require.ErrorAs(t, err, &rej)
		require.Equal(t, "Unable to send verification code. Please try again.", rej.Message)
	})
}

func TestResendClearsCodeOnly(t *testing.T) {
	ctx := context.Background()
	w := newWizard(t, &fakeBackend{}, nil)
	fillBasics(t, w)
	require.NoError(t, w.Next())

	_, err := w.SendOTP(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Edit(func(d *wizard.Draft) {
		d.OTP = "999"
		d.WhatsAppNumber = "9000000000"
	}))
	before := w.Draft()

	require.NoError(t, w.ResendOTP())

	after := w.Draft()
	require.Empty(t, after.OTP)
	require.Equal(t, wizard.OTPUnsent, w.State().OTP)

	after.OTP = before.OTP
	require.Equal(t, before, after)

	// Unsent is re-enterable.
	_, err = w.SendOTP(ctx)
	require.NoError(t, err)
	require.Equal(t, wizard.OTPSent, w.State().OTP)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked without consents", func(t *testing.T) {
		b := &fakeBackend{verifyCode: "123456"}
		w := newWizard(t, b, nil)
		toAgreements(t, w)

		require.NoError(t, w.Edit(func(d *wizard.Draft) {
			d.Consents = allConsents()
			d.Consents.DataProcessing = false
			d.Consents.Marketing = true
		}))

		_, err := w.Submit(ctx)
		var rej *wizard.RejectionError
		require.ErrorAs(t, err, &rej)
		require.Equal(t, "Legal Agreements Required", rej.Title)
		require.Empty(t, b.registers)
	})

	t.Run("wrong step", func(t *testing.T) {
		w := newWizard(t, &fakeBackend{}, nil)
		_, err := w.Submit(ctx)
		require.ErrorIs(t, err, wizard.ErrWrongStep)
	})

	t.Run("failure stays on step four", func(t *testing.T) {
		b := &fakeBackend{verifyCode: "123456", registerErr: &astrosdk.APIError{StatusCode: 409, Message: "Username already taken"}}
		sink := &memorySink{}
		w := newWizard(t, b, sink)
		toAgreements(t, w)
		require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Consents = allConsents() }))

		_, err := w.Submit(ctx)
		var rej *wizard.RejectionError
		require.ErrorAs(t, err, &rej)
		require.Equal(t, "Username already taken", rej.Message)

		st := w.State()
		require.Equal(t, wizard.StepAgreements, st.Step)
		require.False(t, st.Completed)
		require.False(t, st.InFlight(wizard.CallSubmit))
		require.Empty(t, sink.saved)

		// Retry is allowed.
		b.registerErr = nil
		_, err = w.Submit(ctx)
		require.NoError(t, err)
		require.Len(t, b.registers, 2)
	})

	t.Run("success stores token and completes", func(t *testing.T) {
		b := &fakeBackend{verifyCode: "123456"}
		sink := &memorySink{}
		w := newWizard(t, b, sink)
		toAgreements(t, w)
		require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Consents = allConsents() }))

		notice, err := w.Submit(ctx)
		require.NoError(t, err)
		require.Equal(t, "Registration Successful!", notice.Title)
		require.Equal(t, "Welcome to Jai Guru Astro Remedy, Ravi Kumar!", notice.Message)

		st := w.State()
		require.True(t, st.Completed)
		require.Equal(t, "session-token", st.Result.Token)
		require.Equal(t, "3f0c8a5e-1d2b-4c6e-9f7a-0b1c2d3e4f50", st.Result.UserID)
		require.Equal(t, []wizard.Result{st.Result}, sink.saved)

		require.Len(t, b.registers, 1)
		require.Equal(t, 4, b.registers[0].Step)
		require.False(t, b.registers[0].Agreements.Marketing)

		// Terminal.
		require.ErrorIs(t, w.Back(), wizard.ErrCompleted)
		require.ErrorIs(t, w.Next(), wizard.ErrCompleted)
		require.ErrorIs(t, w.Edit(func(*wizard.Draft) {}), wizard.ErrCompleted)
		_, err = w.Submit(ctx)
		require.ErrorIs(t, err, wizard.ErrCompleted)
	})

	t.Run("token sink failure does not fail registration", func(t *testing.T) {
		b := &fakeBackend{verifyCode: "123456"}
		w := newWizard(t, b, &memorySink{err: errors.New("disk full")})
		toAgreements(t, w)
		require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Consents = allConsents() }))

		_, err := w.Submit(ctx)
		require.NoError(t, err)
		require.True(t, w.State().Completed)
	})
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{verifyCode: "123456"}
	w := newWizard(t, b, nil)
	toAgreements(t, w)
	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.Consents = allConsents() }))

	b.block = make(chan struct{})
	b.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx)
		done <- err
	}()
	<-b.entered

	require.True(t, w.State().InFlight(wizard.CallSubmit))
	_, err := w.Submit(ctx)
	require.ErrorIs(t, err, wizard.ErrBusy)

	close(b.block)
	require.NoError(t, <-done)
	require.Len(t, b.registers, 1)
}

func TestResendDuringVerifyDiscardsResult(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{verifyCode: "123456"}
	w := newWizard(t, b, nil)
	fillBasics(t, w)
	require.NoError(t, w.Next())
	_, err := w.SendOTP(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Edit(func(d *wizard.Draft) { d.OTP = "123456" }))

	b.block = make(chan struct{})
	b.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := w.VerifyOTP(ctx)
		done <- err
	}()
	<-b.entered

	require.NoError(t, w.ResendOTP())
	close(b.block)

	require.ErrorIs(t, <-done, wizard.ErrWrongStep)
	require.Equal(t, wizard.OTPUnsent, w.State().OTP)
}

func TestVerifyStateCheckUnderConcurrentResend(t *testing.T) {
	ctx := context.Background()
	w := newWizard(t, &fakeBackend{}, nil)
	fillBasics(t, w)
	require.NoError(t, w.Next())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 200 {
			_, _ = w.SendOTP(ctx)
			_ = w.ResendOTP()
		}
	}()

	for range 200 {
		_, err := w.VerifyOTP(ctx)
		require.Error(t, err)
		require.NotErrorIs(t, err, wizard.ErrAlreadyVerified)

		var rej *wizard.RejectionError
		if !errors.Is(err, wizard.ErrWrongStep) && !errors.Is(err, wizard.ErrBusy) {
			require.ErrorAs(t, err, &rej)
			require.Equal(t, "OTP Required", rej.Title)
		}
	}
	wg.Wait()
	require.NotEqual(t, wizard.OTPVerified, w.State().OTP)
}
