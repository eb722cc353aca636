package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordgrid/internal/factory"
	"github.com/mcoot/wordgrid/internal/testutil"
	"github.com/mcoot/wordgrid/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired.
// Today's daily grid is factory.TestGrid.
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestDictionary())
	require.NoError(t, app.SeedDailyGrid(t.Context()))

	router := web.NewRouter(web.RouterConfig{
		Logger:           testutil.NopLogger(),
		PuzzleController: app.PuzzleController,
		HubManager:       app.HubManager,
		Clock:            app.MockClock,
		StaticDir:        "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Helper functions for common test operations

// createPuzzle starts a puzzle in the given mode and returns its page path
func (ts *webTestServer) createPuzzle(mode string) string {
	ts.t.Helper()
	rr := ts.post("/puzzle", url.Values{"mode": {mode}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after puzzle creation")

	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/puzzle/"), "Expected redirect to puzzle page, got %q", location)
	return location
}

// toggle clicks a cell via htmx and returns the rendered panel
func (ts *webTestServer) toggle(path, col, row string) *goquery.Document {
	ts.t.Helper()
	rr := ts.postHTMX(path+"/toggle", url.Values{"col": {col}, "row": {row}})
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// spellCat selects C, A, T across the top row
func (ts *webTestServer) spellCat(path string) {
	ts.t.Helper()
	ts.toggle(path, "0", "0")
	ts.toggle(path, "1", "0")
	ts.toggle(path, "2", "0")
}

// followRedirect follows a redirect and returns the response
// Works with both traditional Location headers and HTMX HX-Redirect headers
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	// Check for HTMX redirect first
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		// Fall back to traditional redirect
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// cell finds the button for a board cell
func cell(doc *goquery.Document, col, row string) *goquery.Selection {
	return doc.Find(`button.cell[data-col="` + col + `"][data-row="` + row + `"]`)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
