package echo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	appauth "github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/auth"
	httpecho "github.com/Saw-Kyaw-Myint/bulletin-board/internal/interfaces/http/echo"
)

type fakeLogin struct {
	output appauth.TokenPairOutput
	err    error
}

func (f *fakeLogin) Execute(ctx context.Context, in appauth.LoginInput) (appauth.TokenPairOutput, error) {
	if f.err != nil {
		return appauth.TokenPairOutput{}, f.err
	}
	return f.output, nil
}

type fakeRefresh struct {
	output appauth.TokenPairOutput
	err    error
	got    string
}

func (f *fakeRefresh) Execute(ctx context.Context, refreshToken string) (appauth.TokenPairOutput, error) {
	f.got = refreshToken
	if f.err != nil {
		return appauth.TokenPairOutput{}, f.err
	}
	return f.output, nil
}

type fakeLogout struct{ got string }

func (f *fakeLogout) Execute(ctx context.Context, refreshToken string) error {
	f.got = refreshToken
	return nil
}

func newAuthServer(login *fakeLogin, refresh *fakeRefresh, logout *fakeLogout) *echo.Echo {
	e := echo.New()
	e.Validator = httpecho.NewRequestValidator()
	handler := httpecho.NewAuthHandler(login, refresh, logout, nil, nil)
	e.POST("/api/v1/login", handler.Login)
	e.POST("/api/v1/refresh", handler.Refresh)
	e.POST("/api/v1/logout", handler.Logout)
	return e
}

func TestLoginHandlerSuccess(t *testing.T) {
	t.Parallel()

	login := &fakeLogin{output: appauth.TokenPairOutput{AccessToken: "a", RefreshToken: "r"}}
	e := newAuthServer(login, &fakeRefresh{}, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"access_token":"a"`) {
		t.Fatalf("token pair missing from body: %s", rec.Body.String())
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	t.Parallel()

	e := newAuthServer(&fakeLogin{err: appauth.ErrInvalidCredentials}, &fakeRefresh{}, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong-pass"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginHandlerValidation(t *testing.T) {
	t.Parallel()

	e := newAuthServer(&fakeLogin{}, &fakeRefresh{}, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"email":"not-an-email","password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRefreshHandlerRotates(t *testing.T) {
	t.Parallel()

	refresh := &fakeRefresh{output: appauth.TokenPairOutput{AccessToken: "a2", RefreshToken: "r2"}}
	e := newAuthServer(&fakeLogin{}, refresh, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	req.Header.Set("X-Refresh-Token", "r1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if refresh.got != "r1" {
		t.Fatalf("header token not forwarded: %q", refresh.got)
	}
}

func TestRefreshHandlerRejectsInvalid(t *testing.T) {
	t.Parallel()

	e := newAuthServer(&fakeLogin{}, &fakeRefresh{err: appauth.ErrInvalidRefreshToken}, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	req.Header.Set("X-Refresh-Token", "stale")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRefreshHandlerMissingHeader(t *testing.T) {
	t.Parallel()

	e := newAuthServer(&fakeLogin{}, &fakeRefresh{}, &fakeLogout{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestLogoutHandlerForwardsToken(t *testing.T) {
	t.Parallel()

	logout := &fakeLogout{}
	e := newAuthServer(&fakeLogin{}, &fakeRefresh{}, logout)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
	req.Header.Set("X-Refresh-Token", "r1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if logout.got != "r1" {
		t.Fatalf("header token not forwarded: %q", logout.got)
	}
}
