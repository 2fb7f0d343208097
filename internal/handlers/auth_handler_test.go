package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warrantyportal/internal/models"
	"warrantyportal/internal/repositories"
	"warrantyportal/internal/services"
)

type memOTPRepo struct {
	codes  []*models.OTPCode
	nextID int64
}

func (r *memOTPRepo) Create(email, codeHash string, sentAt, expiresAt time.Time) (int64, error) {
	r.nextID++
	r.codes = append(r.codes, &models.OTPCode{
		ID:        r.nextID,
		Email:     email,
		CodeHash:  codeHash,
		SentAt:    sentAt,
		ExpiresAt: expiresAt,
	})
	return r.nextID, nil
}

func (r *memOTPRepo) GetLatestByEmail(email string) (*models.OTPCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if strings.EqualFold(r.codes[i].Email, email) {
			return r.codes[i], nil
		}
	}
	return nil, nil
}

func (r *memOTPRepo) CountRecentSends(email string, since time.Time) (int, error) {
	n := 0
	for _, c := range r.codes {
		if strings.EqualFold(c.Email, email) && !c.SentAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memOTPRepo) IncrementAttempts(id int64) (int, error) {
	c := r.byID(id)
	c.Attempts++
	return c.Attempts, nil
}

func (r *memOTPRepo) MarkConfirmed(id int64) error {
	now := time.Now()
	r.byID(id).ConfirmedAt = &now
	return nil
}

func (r *memOTPRepo) MarkUsed(id int64) error {
	now := time.Now()
	r.byID(id).UsedAt = &now
	return nil
}

func (r *memOTPRepo) ExpireNow(id int64) error {
	r.byID(id).ExpiresAt = time.Now()
	return nil
}

func (r *memOTPRepo) byID(id int64) *models.OTPCode {
	for _, c := range r.codes {
		if c.ID == id {
			return c
		}
	}
	panic("memOTPRepo: unknown id")
}

type memUserRepo struct {
	users  []*models.User
	nextID int
}

func (r *memUserRepo) Create(u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdatePassword(userID int, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

type memMailer struct {
	otpCodes []string
}

func (s *memMailer) SendOTPEmail(email, code string) error {
	s.otpCodes = append(s.otpCodes, code)
	return nil
}

func (s *memMailer) SendRegistrationEmail(email, serialNumber, productName string) error {
	return nil
}

var _ repositories.OTPRepository = (*memOTPRepo)(nil)
var _ repositories.UserRepository = (*memUserRepo)(nil)

type authFixture struct {
	router *gin.Engine
	users  *memUserRepo
	mailer *memMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{}
	auth := services.NewAuthService()
	hash, err := auth.HashPassword("original-pw")
	require.NoError(t, err)
	require.NoError(t, users.Create(&models.User{Email: "a@b.com", PasswordHash: hash}))

	mailer := &memMailer{}
	reset := services.NewPasswordResetService(users, services.NewOTPService(&memOTPRepo{}), mailer, auth)
	h := NewAuthHandler(reset, users, auth)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/request-otp", h.RequestOTP)
	r.POST("/api/auth/check-otp", h.CheckOTP)
	r.POST("/api/auth/reset-password", h.ResetPassword)
	return &authFixture{router: r, users: users, mailer: mailer}
}

func (f *authFixture) post(t *testing.T, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *authFixture) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.mailer.otpCodes, "expected an OTP email to have been sent")
	return f.mailer.otpCodes[len(f.mailer.otpCodes)-1]
}

func TestResetEndpointsHappyPath(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.post(t, "/api/auth/request-otp", map[string]any{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "OTP sent to your email")

	code := f.lastCode(t)
	resp = f.post(t, "/api/auth/check-otp", map[string]any{"email": "a@b.com", "otp": code})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = f.post(t, "/api/auth/reset-password", map[string]any{
		"email": "a@b.com", "otp": code, "newPassword": "fresh-password",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Password updated")

	// old password no longer logs in, the new one does
	resp = f.post(t, "/api/auth/login", map[string]any{"email": "a@b.com", "password": "original-pw"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = f.post(t, "/api/auth/login", map[string]any{"email": "a@b.com", "password": "fresh-password"})
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestRequestOTPValidation(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.post(t, "/api/auth/request-otp", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "email is required")

	// unknown address still answers 200 and sends nothing
	resp = f.post(t, "/api/auth/request-otp", map[string]any{"email": "who@nowhere.test"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, f.mailer.otpCodes)
}

func TestRequestOTPThrottled(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, f.post(t, "/api/auth/request-otp", map[string]any{"email": "a@b.com"}).Code)
	}
	resp := f.post(t, "/api/auth/request-otp", map[string]any{"email": "a@b.com"})
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}

func TestCheckOTPRejectsWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	require.Equal(t, http.StatusOK, f.post(t, "/api/auth/request-otp", map[string]any{"email": "a@b.com"}).Code)

	code := f.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}
	resp := f.post(t, "/api/auth/check-otp", map[string]any{"email": "a@b.com", "otp": wrong})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid code")

	// the real code still works afterwards
	resp = f.post(t, "/api/auth/check-otp", map[string]any{"email": "a@b.com", "otp": code})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestResetPasswordRules(t *testing.T) {
	f := newAuthFixture(t)
	require.Equal(t, http.StatusOK, f.post(t, "/api/auth/request-otp", map[string]any{"email": "a@b.com"}).Code)
	code := f.lastCode(t)

	// skipping check-otp is rejected
	resp := f.post(t, "/api/auth/reset-password", map[string]any{
		"email": "a@b.com", "otp": code, "newPassword": "fresh-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "not been verified")

	require.Equal(t, http.StatusOK, f.post(t, "/api/auth/check-otp", map[string]any{"email": "a@b.com", "otp": code}).Code)

	resp = f.post(t, "/api/auth/reset-password", map[string]any{
		"email": "a@b.com", "otp": code, "newPassword": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "at least 8 characters")

	require.Equal(t, http.StatusOK, f.post(t, "/api/auth/reset-password", map[string]any{
		"email": "a@b.com", "otp": code, "newPassword": "fresh-password",
	}).Code)

	// the code is single-use
	resp = f.post(t, "/api/auth/reset-password", map[string]any{
		"email": "a@b.com", "otp": code, "newPassword": "another-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "already used")
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.post(t, "/api/auth/login", map[string]any{"email": "who@nowhere.test", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid email or password")
}
