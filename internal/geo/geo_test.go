package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages_FixedPerKind(t *testing.T) {
	t.Parallel()
	cases := map[ErrorKind]string{
		KindPermissionDenied:    "User denied permission.",
		KindPositionUnavailable: "Position unavailable (low signal).",
		KindTimeout:             "Request timed out (took too long).",
		KindUnknown:             "An unknown error occurred.",
	}
	for kind, want := range cases {
		e := &Error{Kind: kind}
		assert.Equal(t, want, e.Message())
		assert.Equal(t, want, e.Error())
	}
}

func TestFix_FourDecimalDisplay(t *testing.T) {
	t.Parallel()
	f := Fix{Lat: 20.29612345, Lng: 85.82451111}
	assert.Equal(t, "20.2961, 85.8245", f.String())
}

func TestNewHTTPLocator_NoCapability(t *testing.T) {
	t.Parallel()
	_, err := NewHTTPLocator("")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPLocator_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache, max-age=0", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat": 20.2961, "lng": 85.8245}`))
	}))
	defer srv.Close()

	l, err := NewHTTPLocator(srv.URL)
	require.NoError(t, err)

	fix, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Fix{Lat: 20.2961, Lng: 85.8245}, fix)
}

func TestHTTPLocator_StatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusForbidden, KindPermissionDenied},
		{http.StatusUnauthorized, KindPermissionDenied},
		{http.StatusNotFound, KindPositionUnavailable},
		{http.StatusServiceUnavailable, KindPositionUnavailable},
		{http.StatusInternalServerError, KindUnknown},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		l, err := NewHTTPLocator(srv.URL)
		require.NoError(t, err)

		_, err = l.Locate(context.Background())
		var gerr *Error
		require.ErrorAs(t, err, &gerr, "status %d", tc.status)
		assert.Equal(t, tc.want, gerr.Kind, "status %d", tc.status)
		srv.Close()
	}
}

func TestHTTPLocator_Timeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	l, err := NewHTTPLocator(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = l.Locate(ctx)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindTimeout, gerr.Kind)
}

func TestHTTPLocator_ConnectionRefused(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	l, err := NewHTTPLocator(srv.URL)
	require.NoError(t, err)

	_, err = l.Locate(context.Background())
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindPositionUnavailable, gerr.Kind)
}

func TestHTTPLocator_MalformedBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	l, err := NewHTTPLocator(srv.URL)
	require.NoError(t, err)

	_, err = l.Locate(context.Background())
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindUnknown, gerr.Kind)
	assert.False(t, errors.Is(err, ErrUnavailable))
}
