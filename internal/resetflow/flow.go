// Package resetflow drives the three-step password reset against the portal
// API: request a code, verify it, set the new password. The sequence is held
// as an explicit stage value; a stage only ever advances on a success
// response from the corresponding call, never on a client-side guess.
package resetflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

type Stage int

const (
	StageEmail Stage = iota
	StageOTP
	StagePassword
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageEmail:
		return "email"
	case StageOTP:
		return "otp"
	case StagePassword:
		return "password"
	case StageDone:
		return "done"
	}
	return "unknown"
}

var (
	ErrEmailRequired  = errors.New("email is required")
	ErrCodeIncomplete = errors.New("code must be 6 digits")
	ErrPasswordRules  = errors.New("passwords must match and be at least 8 characters")
	ErrWrongStage     = errors.New("action not available at this stage")
)

// TransientError marks a failed network round trip. The flow stays where it
// was; the only recovery is the user repeating the action.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "network error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// apiError carries the server's message for a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string { return e.Message }

const resendCooldownSeconds = 60

// Flow is one page session of the reset sequence. It is not safe for
// concurrent use; a session is a single user doing one thing at a time.
type Flow struct {
	client  *http.Client
	baseURL string

	stage    Stage
	email    string
	entry    CodeEntry
	cooldown int

	// Message and ErrMsg mirror the banner texts a page would render.
	Message string
	ErrMsg  string
}

func NewFlow(baseURL string, client *http.Client) *Flow {
	if client == nil {
		client = http.DefaultClient
	}
	return &Flow{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		stage:   StageEmail,
	}
}

func (f *Flow) Stage() Stage      { return f.stage }
func (f *Flow) Email() string     { return f.email }
func (f *Flow) Entry() *CodeEntry { return &f.entry }
func (f *Flow) Cooldown() int     { return f.cooldown }

// EmailLocked reports whether the email field is frozen; it locks as soon
// as the first code has been dispatched.
func (f *Flow) EmailLocked() bool { return f.stage != StageEmail }

// SetEmail pre-fills the address (e.g. from a referral parameter). It is a
// no-op once the field is locked.
func (f *Flow) SetEmail(email string) {
	if !f.EmailLocked() {
		f.email = strings.TrimSpace(email)
	}
}

// CanResend reports whether the resend control is enabled. The cooldown is
// cosmetic bookkeeping: it gates this affordance and nothing else.
func (f *Flow) CanResend() bool { return f.stage == StageOTP && f.cooldown == 0 }

// Tick advances the resend countdown by one second, clamped at zero.
func (f *Flow) Tick() {
	if f.cooldown > 0 {
		f.cooldown--
	}
}

// RequestCode submits the email and asks the server to dispatch a code.
// Before the first send a non-empty argument is adopted over any prefill;
// on a resend the locked address is used and the argument is ignored.
// Past the OTP stage the verification already happened, so a new send is
// refused rather than allowed to rewind the sequence.
func (f *Flow) RequestCode(email string) error {
	f.Message, f.ErrMsg = "", ""
	if f.stage != StageEmail && f.stage != StageOTP {
		return ErrWrongStage
	}
	if v := strings.TrimSpace(email); v != "" && !f.EmailLocked() {
		f.email = v
	}
	if f.email == "" {
		f.ErrMsg = "Email is required"
		return ErrEmailRequired
	}

	if err := f.post("/api/auth/request-otp",
		map[string]string{"email": f.email}, "Failed to send OTP"); err != nil {
		return err
	}

	f.Message = "OTP sent to your email"
	f.stage = StageOTP
	f.cooldown = resendCooldownSeconds
	f.entry.focus = 0
	return nil
}

// CanSubmitCode gates the verify control: exactly six digits after
// normalization, and only while on the OTP stage.
func (f *Flow) CanSubmitCode() bool {
	return f.stage == StageOTP && f.entry.Len() == CodeLength
}

// SubmitCode verifies the entered code. On failure the code stays editable
// and the stage is held.
func (f *Flow) SubmitCode() error {
	f.Message, f.ErrMsg = "", ""
	if f.stage != StageOTP {
		return ErrWrongStage
	}
	if f.entry.Len() != CodeLength {
		f.ErrMsg = "Enter the 6-digit code"
		return ErrCodeIncomplete
	}

	if err := f.post("/api/auth/check-otp",
		map[string]string{"email": f.email, "otp": f.entry.Code()}, "OTP verification failed"); err != nil {
		return err
	}

	f.Message = "OTP verified. Set your new password."
	f.stage = StagePassword
	return nil
}

// CanResetPassword gates the final control. This is a UI-level
// precondition; the server re-validates everything on its own.
func (f *Flow) CanResetPassword(newPassword, confirmPassword string) bool {
	return f.stage == StagePassword &&
		len(newPassword) >= 8 &&
		newPassword == confirmPassword
}

// ResetPassword bundles email, verified code and the new password into the
// final call. Success completes the flow.
func (f *Flow) ResetPassword(newPassword, confirmPassword string) error {
	f.Message, f.ErrMsg = "", ""
	if f.stage != StagePassword {
		return ErrWrongStage
	}
	if !f.CanResetPassword(newPassword, confirmPassword) {
		f.ErrMsg = "Passwords must match and be at least 8 characters"
		return ErrPasswordRules
	}

	if err := f.post("/api/auth/reset-password", map[string]string{
		"email":       f.email,
		"otp":         f.entry.Code(),
		"newPassword": newPassword,
	}, "Password reset failed"); err != nil {
		return err
	}

	f.Message = "Password updated. Redirecting to login..."
	f.stage = StageDone
	return nil
}

// post performs one JSON round trip. Transport failures and non-2xx
// responses both surface as ErrMsg and leave the stage untouched.
func (f *Flow) post(path string, payload map[string]string, fallback string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.ErrMsg = "Network error"
		return &TransientError{Err: err}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var parsed struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
			msg = parsed.Error
		}
		f.ErrMsg = msg
		return &apiError{Status: resp.StatusCode, Message: msg}
	}
	return nil
}

// StatusOf extracts the HTTP status from a server rejection, or 0 when the
// error was not a server response.
func StatusOf(err error) int {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
