package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fmtAll(p CurrentPuzzle) string {
	return fmt.Sprintf("%v %+v %#v %s", p, p, p, p)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/svc/wordle/v2/2024-01-01.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":1290,"solution":"rebus","print_date":"2024-01-01","days_since_launch":926,"editor":"Tracy Bennett"}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/svc/wordle/v2/%s.json", time.Second)
	defer src.Client.CloseIdleConnections()
	p, err := src.Fetch(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 1290, p.ID)
	assert.Equal(t, 926, p.DayOffset)
	assert.Equal(t, "rebus", p.Solution.Reveal())
	assert.Equal(t, "Tracy Bennett", p.Editor)

	_, err = src.Fetch(context.Background(), "2024-01-02")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestHTTPSource_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/%s", time.Second)
	defer src.Client.CloseIdleConnections()
	_, err := src.Fetch(context.Background(), "2024-01-01")
	assert.ErrorContains(t, err, "decode 2024-01-01")
}
