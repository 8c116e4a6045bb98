package roster_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wedlock-lab/mandap/pkg/service/roster"
)

func TestSourceFetch(t *testing.T) {
	const csv = "num,name,phone,email\n1,Alice,1234567890,a@x.com\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodGet)
		if _, err := w.Write([]byte(csv)); err != nil {
			t.Fatalf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	source := roster.NewSource(server.URL)
	text, err := source.Fetch(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, text, csv)
}

func TestSourceFetchNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := roster.NewSource(server.URL)
	_, err := source.Fetch(context.Background())
	gt.Error(t, err)
}

func TestSourceFetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	source := roster.NewSource(server.URL)
	_, err := source.Fetch(context.Background())
	gt.Error(t, err)
}
