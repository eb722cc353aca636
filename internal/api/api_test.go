package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/api"
	"github.com/mcoot/wordgrid/internal/api/apierr"
	"github.com/mcoot/wordgrid/internal/api/response"
	"github.com/mcoot/wordgrid/internal/factory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app     *factory.TestApp
	handler http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.Require().NoError(s.app.LoadTestDictionary())
	s.Require().NoError(s.app.SeedDailyGrid(s.T().Context()))

	s.handler = api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		PuzzleController:  s.app.PuzzleController,
		DictionaryService: s.app.DictionaryService,
	})
}

func (s *APISuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *APISuite) decode(rr *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func (s *APISuite) assertError(rr *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, rr.Code, rr.Body.String())
	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	s.Equal(code, resp.Error.Code)
}

func (s *APISuite) createPuzzle(mode string) response.Puzzle {
	rr := s.request(http.MethodPost, "/api/v1/puzzles", map[string]string{"mode": mode})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var p response.Puzzle
	s.decode(rr, &p)
	return p
}

func (s *APISuite) toggle(id string, col, row int) response.Puzzle {
	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+id+"/toggle", map[string]int{"col": col, "row": row})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var p response.Puzzle
	s.decode(rr, &p)
	return p
}

func (s *APISuite) commit(id string) response.CommitResponse {
	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+id+"/commit", nil)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp response.CommitResponse
	s.decode(rr, &resp)
	return resp
}

func (s *APISuite) spellCat(id string) {
	s.toggle(id, 0, 0)
	s.toggle(id, 1, 0)
	s.toggle(id, 2, 0)
}

func (s *APISuite) TestHealthCheck() {
	rr := s.request(http.MethodGet, "/api/v1/health", nil)
	s.Equal(http.StatusOK, rr.Code)

	var resp response.Health
	s.decode(rr, &resp)
	s.Equal("ok", resp.Status)
	s.True(resp.DictionaryLoaded)
	s.Equal(len(factory.TestWords), resp.DictionaryWords)
}

func (s *APISuite) TestCreateDailyPuzzle() {
	p := s.createPuzzle("daily")

	s.NotEmpty(p.ID)
	s.Equal("daily", p.Mode)
	s.Equal("2024-03-15", p.DateKey)
	s.Equal("idle", p.State)
	s.Len(p.Cells, 6)
	s.Len(p.Cells[0], 6)
	s.Equal("C", p.Cells[0][0].Letter)
	s.Equal("available", p.Cells[0][0].State)
	s.Empty(p.History)
	s.Equal(36, p.Stats.RemainingLetters)
}

func (s *APISuite) TestCreateDefaultsToDaily() {
	rr := s.request(http.MethodPost, "/api/v1/puzzles", nil)
	s.Require().Equal(http.StatusCreated, rr.Code)

	var p response.Puzzle
	s.decode(rr, &p)
	s.Equal("daily", p.Mode)
	s.Equal("/api/v1/puzzles/"+p.ID, rr.Header().Get("Location"))
	s.Equal("no-store", rr.Header().Get("Cache-Control"))
}

func (s *APISuite) TestCreateInvalidMode() {
	rr := s.request(http.MethodPost, "/api/v1/puzzles", map[string]string{"mode": "weekly"})
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidMode)
}

func (s *APISuite) TestCreateMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/puzzles", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func (s *APISuite) TestGetAndDelete() {
	p := s.createPuzzle("practice")

	rr := s.request(http.MethodGet, "/api/v1/puzzles/"+p.ID, nil)
	s.Equal(http.StatusOK, rr.Code)

	rr = s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID, nil)
	s.Equal(http.StatusNoContent, rr.Code)

	rr = s.request(http.MethodGet, "/api/v1/puzzles/"+p.ID, nil)
	s.assertError(rr, http.StatusNotFound, apierr.CodePuzzleNotFound)

	rr = s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID, nil)
	s.assertError(rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
}

func (s *APISuite) TestToggleBuildsWordBox() {
	p := s.createPuzzle("daily")

	view := s.toggle(p.ID, 2, 0)
	view = s.toggle(p.ID, 0, 0)

	s.Equal("building", view.State)
	s.Equal("TC", view.WordBox.Text)
	s.Equal([]response.Position{{Col: 2, Row: 0}, {Col: 0, Row: 0}}, view.WordBox.Positions)
	s.Equal("selected", view.Cells[2][0].State)
}

func (s *APISuite) TestToggleOutOfBounds() {
	p := s.createPuzzle("daily")

	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/toggle", map[string]int{"col": 6, "row": 0})
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidPosition)

	rr = s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/toggle", map[string]int{"col": 0, "row": -1})
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidPosition)
}

func (s *APISuite) TestToggleMissingCoordinates() {
	p := s.createPuzzle("daily")
	url := "/api/v1/puzzles/" + p.ID + "/toggle"

	for _, body := range []map[string]int{{}, {"col": 1}, {"row": 0}} {
		rr := s.request(http.MethodPost, url, body)
		s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	}

	rr := s.request(http.MethodGet, "/api/v1/puzzles/"+p.ID, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var view response.Puzzle
	s.decode(rr, &view)
	s.Equal("idle", view.State)
	s.Equal("available", view.Cells[0][0].State)
}

func (s *APISuite) TestDispatchMissingFields() {
	p := s.createPuzzle("daily")
	url := "/api/v1/puzzles/" + p.ID + "/commands"

	for _, body := range []map[string]any{
		{"type": "toggle"},
		{"type": "toggle", "row": 0},
		{"type": "undo"},
	} {
		rr := s.request(http.MethodPost, url, body)
		s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	}
}

func (s *APISuite) TestCommitAccepted() {
	p := s.createPuzzle("daily")
	s.spellCat(p.ID)

	resp := s.commit(p.ID)
	s.Equal("accepted", resp.Outcome)
	s.Equal("CAT", resp.Word)
	s.Equal("idle", resp.Puzzle.State)
	s.Require().Len(resp.Puzzle.History, 1)
	s.Equal("CAT", resp.Puzzle.History[0].Word)
	s.Equal(3, resp.Puzzle.History[0].Length)
	s.Equal("locked", resp.Puzzle.Cells[1][0].State)
	s.Equal(response.Stats{LettersUsed: 3, WordsCreated: 1, RemainingLetters: 33, Score: 2}, resp.Puzzle.Stats)
}

func (s *APISuite) TestCommitRejected() {
	p := s.createPuzzle("daily")
	s.toggle(p.ID, 1, 0)
	s.toggle(p.ID, 0, 0)

	resp := s.commit(p.ID)
	s.Equal("rejected", resp.Outcome)
	s.Equal("AC", resp.Word)
	s.Equal("idle", resp.Puzzle.State)
	s.Empty(resp.Puzzle.History)
	s.Equal("available", resp.Puzzle.Cells[0][0].State)
}

func (s *APISuite) TestCommitIdle() {
	p := s.createPuzzle("daily")

	resp := s.commit(p.ID)
	s.Equal("none", resp.Outcome)
	s.Empty(resp.Word)
}

func (s *APISuite) TestCommitDictionaryNotLoaded() {
	app := factory.NewTestApp()
	s.handler = api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		PuzzleController:  app.PuzzleController,
		DictionaryService: app.DictionaryService,
	})

	p := s.createPuzzle("practice")
	s.toggle(p.ID, 0, 0)

	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/commit", nil)
	s.assertError(rr, http.StatusServiceUnavailable, apierr.CodeDictionaryNotLoaded)

	// Selection survives for a retry
	rr = s.request(http.MethodGet, "/api/v1/puzzles/"+p.ID, nil)
	var view response.Puzzle
	s.decode(rr, &view)
	s.Equal("building", view.State)
}

func (s *APISuite) TestClearAndReset() {
	p := s.createPuzzle("daily")
	s.spellCat(p.ID)
	s.commit(p.ID)
	s.toggle(p.ID, 3, 0)

	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/clear", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var view response.Puzzle
	s.decode(rr, &view)
	s.Equal("idle", view.State)
	s.Len(view.History, 1)

	rr = s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/reset", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.decode(rr, &view)
	s.Empty(view.History)
	s.Equal(0, view.Stats.Score)
	s.Equal("available", view.Cells[0][0].State)
}

func (s *APISuite) TestSwitchMode() {
	p := s.createPuzzle("daily")
	s.spellCat(p.ID)
	s.commit(p.ID)

	rr := s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/mode", map[string]string{"mode": "practice"})
	s.Require().Equal(http.StatusOK, rr.Code)
	var view response.Puzzle
	s.decode(rr, &view)
	s.Equal("practice", view.Mode)
	s.Empty(view.History)

	rr = s.request(http.MethodPost, "/api/v1/puzzles/"+p.ID+"/mode", map[string]string{"mode": "hourly"})
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidMode)
}

func (s *APISuite) TestUndo() {
	p := s.createPuzzle("daily")
	s.spellCat(p.ID)
	s.commit(p.ID)

	rr := s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID+"/words/1", nil)
	s.assertError(rr, http.StatusBadRequest, apierr.CodeUndoOutOfRange)

	rr = s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID+"/words/-1", nil)
	s.assertError(rr, http.StatusBadRequest, apierr.CodeUndoOutOfRange)

	rr = s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID+"/words/abc", nil)
	s.assertError(rr, http.StatusBadRequest, apierr.CodeUndoOutOfRange)

	rr = s.request(http.MethodDelete, "/api/v1/puzzles/"+p.ID+"/words/0", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var view response.Puzzle
	s.decode(rr, &view)
	s.Empty(view.History)
	s.Equal("available", view.Cells[2][0].State)
}

func (s *APISuite) TestDispatchCommands() {
	p := s.createPuzzle("daily")
	url := "/api/v1/puzzles/" + p.ID + "/commands"

	for _, col := range []int{0, 1, 2} {
		rr := s.request(http.MethodPost, url, map[string]any{"type": "toggle", "col": col, "row": 0})
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := s.request(http.MethodPost, url, map[string]any{"type": "commit"})
	s.Require().Equal(http.StatusOK, rr.Code)
	var resp response.CommandResponse
	s.decode(rr, &resp)
	s.Equal("accepted", resp.Outcome)
	s.Equal("CAT", resp.Word)

	rr = s.request(http.MethodPost, url, map[string]any{"type": "undo", "index": 0})
	s.Require().Equal(http.StatusOK, rr.Code)
	resp = response.CommandResponse{}
	s.decode(rr, &resp)
	s.Empty(resp.Outcome)
	s.Empty(resp.Puzzle.History)

	rr = s.request(http.MethodPost, url, map[string]any{"type": "switch_mode", "mode": "practice"})
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.request(http.MethodPost, url, map[string]any{"type": "dance"})
	s.assertError(rr, http.StatusBadRequest, apierr.CodeInvalidCommand)
}

func (s *APISuite) TestUnknownPuzzle() {
	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/v1/puzzles/NOPE/toggle", map[string]int{"col": 0, "row": 0}},
		{http.MethodPost, "/api/v1/puzzles/NOPE/commit", nil},
		{http.MethodPost, "/api/v1/puzzles/NOPE/clear", nil},
		{http.MethodPost, "/api/v1/puzzles/NOPE/reset", nil},
		{http.MethodPost, "/api/v1/puzzles/NOPE/mode", map[string]string{"mode": "daily"}},
		{http.MethodDelete, "/api/v1/puzzles/NOPE/words/0", nil},
		{http.MethodPost, "/api/v1/puzzles/NOPE/commands", map[string]string{"type": "reset"}},
	} {
		rr := s.request(tc.method, tc.path, tc.body)
		s.assertError(rr, http.StatusNotFound, apierr.CodePuzzleNotFound)
	}
}
