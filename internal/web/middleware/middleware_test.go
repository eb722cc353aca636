package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordgrid/internal/testutil"
)

func TestFlashRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, FlashSuccess, "CAT accepted: nice")
	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr := httptest.NewRecorder()

	var seenType, seenMessage string
	Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		flash := GetFlash(r.Context())
		require.NotNil(t, flash)
		seenType, seenMessage = flash.Type, flash.Message
	})).ServeHTTP(rr, req)

	assert.Equal(t, FlashSuccess, seenType)
	assert.Equal(t, "CAT accepted: nice", seenMessage)

	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, flashCookieName, cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestFlashWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	called := false
	Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, GetFlash(r.Context()))
	})).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Empty(t, rr.Result().Cookies())
}

func TestParseFlashUnknownType(t *testing.T) {
	flash := parseFlash("shout:hello")
	assert.Equal(t, FlashInfo, flash.Type)
	assert.Equal(t, "hello", flash.Message)

	flash = parseFlash("no separator")
	assert.Equal(t, FlashInfo, flash.Type)
	assert.Equal(t, "no separator", flash.Message)
}

func panicking() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func TestRecoveryRendersErrorPage(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	rr := httptest.NewRecorder()
	Recovery(logger)(panicking()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/puzzle/X", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), panicMessage)
	assert.Contains(t, rr.Body.String(), `href="/"`)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRecoveryRedirectsHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/puzzle/X/toggle", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	Recovery(testutil.NopLogger())(panicking()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("HX-Redirect"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	flash := parseFlash(cookies[0].Value)
	assert.Equal(t, FlashError, flash.Type)
	assert.Equal(t, panicMessage, flash.Message)
}

func TestLoggingSkipsStatic(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Empty(t, buf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, buf.String(), `"path":"/"`)
}
