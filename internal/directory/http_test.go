package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/therapick/therapick-api/internal/types"
)

func TestHTTPSearchBuildsQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[{"id":"x1","name":"Dr. X"}],"total":1,"hasMore":false}`))
	}))
	defer srv.Close()

	dir := NewHTTP("test-key", srv.URL)
	lat, lng := 40.7, -74.0
	result, err := dir.Search(context.Background(), types.SearchParams{
		Latitude:    &lat,
		Longitude:   &lng,
		Specialties: []string{"Anxiety", "CBT"},
		Insurance:   []string{"Aetna"},
		Limit:       5,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotPath != "/therapists" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	check := map[string]string{
		"lat":         "40.7",
		"lng":         "-74",
		"radius":      "25",
		"specialties": "Anxiety,CBT",
		"insurance":   "Aetna",
		"limit":       "5",
		"offset":      "0",
	}
	for key, want := range check {
		if len(gotQuery[key]) != 1 || gotQuery[key][0] != want {
			t.Errorf("query %s = %v, want %q", key, gotQuery[key], want)
		}
	}

	if result.Total != 1 || len(result.Therapists) != 1 || result.Therapists[0].ID != "x1" {
		t.Errorf("result = %+v", result)
	}
}

func TestHTTPSearchEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"hasMore":false}`))
	}))
	defer srv.Close()

	dir := NewHTTP("k", srv.URL)
	result, err := dir.Search(context.Background(), types.SearchParams{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Therapists == nil {
		t.Error("missing data must decode to an empty slice, not nil")
	}
}

func TestHTTPErrorMapping(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	dir := NewHTTP("k", srv.URL)

	status = http.StatusNotFound
	if _, err := dir.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("404 mapped to %v, want ErrNotFound", err)
	}

	status = http.StatusInternalServerError
	if _, err := dir.GetByID(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("500 mapped to %v, want ErrUnavailable", err)
	}

	status = http.StatusUnprocessableEntity
	_, err := dir.GetByID(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		t.Errorf("422 mapped to %v, want a formatted error", err)
	}
}

func TestHTTPNetworkFailure(t *testing.T) {
	// Port is closed immediately
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	dir := NewHTTP("k", srv.URL)
	if _, err := dir.Specialties(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("network failure mapped to %v, want ErrUnavailable", err)
	}
}

func TestHTTPBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	dir := NewHTTP("k", srv.URL)
	if _, err := dir.Specialties(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("bad payload mapped to %v, want ErrUnavailable", err)
	}
}

func TestHTTPGetByIDNullData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	dir := NewHTTP("k", srv.URL)
	if _, err := dir.GetByID(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("null data mapped to %v, want ErrNotFound", err)
	}
}
