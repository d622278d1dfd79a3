package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/jwebster45206/ascent-engine/pkg/engine"
	"github.com/jwebster45206/ascent-engine/pkg/oracle"
	"github.com/jwebster45206/ascent-engine/pkg/roll"
	"github.com/jwebster45206/ascent-engine/pkg/storage"
)

const initBody = `{"worldSetting":"A flooded city after the outbreak","characterDescription":"A night-shift nurse"}`

// quietRoll keeps both default creatures dormant, skips the level-up and
// succeeds the action at the default 0.5 rate.
func quietRoll() roll.Source {
	return roll.Fixed(0.9, 0.9, 0.9, 0.1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(src roll.Source) (*engine.Engine, *oracle.Mock, *storage.MockStorage) {
	o := oracle.NewMock()
	store := storage.NewMockStorage()
	e := engine.New(engine.Deps{
		Store:  store,
		Oracle: o,
		Rand:   src,
		Logger: testLogger(),
	})
	return e, o, store
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
