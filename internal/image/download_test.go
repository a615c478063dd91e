package imagepkg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaroslavdusek1/metasnap/internal/util"
)

func TestFetchOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte("image-bytes"))
	}))
	defer ts.Close()

	f := &Fetcher{Client: ts.Client()}
	body, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(body))
}

func TestFetchNonOK(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		f := &Fetcher{Client: ts.Client()}
		body, err := f.Fetch(context.Background(), ts.URL)
		ts.Close()

		require.Nil(t, body)
		var se *StatusError
		require.True(t, errors.As(err, &se), "status %d: %v", code, err)
		require.Equal(t, code, se.StatusCode)
	}
}

func TestFetchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	f := &Fetcher{}
	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)
	var se *StatusError
	require.False(t, errors.As(err, &se))
}

func TestFetchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	f := &Fetcher{Client: util.NewHTTPClient(50 * time.Millisecond)}
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
}
