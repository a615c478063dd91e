package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/jaroslavdusek1/metasnap/internal/image"
	"github.com/jaroslavdusek1/metasnap/internal/testutil"
)

func newRouter(client *http.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandlers(&imagepkg.Fetcher{Client: client}), zerolog.Nop())
	return r
}

func upstream(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func exifPath(u string) string {
	return "/api/exif?url=" + url.QueryEscape(u)
}

func TestHealth(t *testing.T) {
	w := get(newRouter(http.DefaultClient), "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter(http.DefaultClient)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestExifMissingURL(t *testing.T) {
	w := get(newRouter(http.DefaultClient), "/api/exif")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExifReport(t *testing.T) {
	data := testutil.ExifJPEG(t, testutil.TIFF(
		[]testutil.Tag{testutil.ASCII(0x010F, "TestCam")}, nil, nil))
	ts := upstream(t, http.StatusOK, data)

	w := get(newRouter(ts.Client()), exifPath(ts.URL))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[-] EXIF Metadata:\nMake: TestCam\n", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestExifUnsupportedFormat(t *testing.T) {
	ts := upstream(t, http.StatusOK, testutil.PNG(t))

	w := get(newRouter(ts.Client()), exifPath(ts.URL))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[-] Image does not support EXIF data.\n[-] No EXIF metadata to display.\n", w.Body.String())
}

func TestExifUpstreamNotFound(t *testing.T) {
	ts := upstream(t, http.StatusNotFound, nil)

	w := get(newRouter(ts.Client()), exifPath(ts.URL))
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), "Failed to download the image.")
}

func TestExifUndecodable(t *testing.T) {
	ts := upstream(t, http.StatusOK, []byte("nope"))

	w := get(newRouter(ts.Client()), exifPath(ts.URL))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "decoding image")
}

func TestExifTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	w := get(newRouter(http.DefaultClient), exifPath(addr))
	require.Equal(t, http.StatusBadGateway, w.Code)
}
