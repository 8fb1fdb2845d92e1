package gemini

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnema/smart-image-cli/internal/domain"
)

const appPage = `<html><script>window.WIZ_global_data = {"FdrFJe":"-42","SNlM0e":"AFtoken:123","qwAQke":"BardChatUi"};</script></html>`

func signedIn() domain.CredentialSet {
	return domain.CredentialSet{
		domain.MarkerCookie: "psid",
		"NID":               "nid",
	}
}

func TestProbeReadyWhenPageCarriesToken(t *testing.T) {
	var gotCookie, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, appPage)
	}))
	t.Cleanup(server.Close)

	probe := NewProbe(server.Client(), server.URL+"/app", zaptest.NewLogger(t))

	assert.True(t, probe.Ready(context.Background(), signedIn()))
	assert.Equal(t, "NID=nid; __Secure-1PSID=psid", gotCookie)
	assert.Equal(t, userAgent, gotUA)

	token, err := probe.AccessToken(context.Background(), signedIn())
	require.NoError(t, err)
	assert.Equal(t, "AFtoken:123", token)
}

func TestProbeNotReadyWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>Sign in to continue</html>`)
	}))
	t.Cleanup(server.Close)

	probe := NewProbe(server.Client(), server.URL, zaptest.NewLogger(t))

	assert.False(t, probe.Ready(context.Background(), signedIn()), "marker cookie alone is not enough")

	_, err := probe.AccessToken(context.Background(), signedIn())
	assert.ErrorIs(t, err, domain.ErrTokenRefresh)
}

func TestProbeSkipsNetworkWithoutMarker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, appPage)
	}))
	t.Cleanup(server.Close)

	probe := NewProbe(server.Client(), server.URL, zaptest.NewLogger(t))

	assert.False(t, probe.Ready(context.Background(), domain.CredentialSet{"NID": "nid"}))
	assert.False(t, probe.Ready(context.Background(), nil))
	assert.Zero(t, hits.Load())
}

func TestProbeNotReadyOnErrorStatusOrNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, appPage)
	}))
	t.Cleanup(server.Close)

	probe := NewProbe(server.Client(), server.URL, zaptest.NewLogger(t))
	assert.False(t, probe.Ready(context.Background(), signedIn()))

	unreachable := NewProbe(nil, "http://127.0.0.1:1/app", zaptest.NewLogger(t))
	assert.False(t, unreachable.Ready(context.Background(), signedIn()))
}

func TestProbeDecodesBrotliPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		_, _ = io.WriteString(bw, appPage)
		_ = bw.Close()
	}))
	t.Cleanup(server.Close)

	token, err := NewProbe(server.Client(), server.URL, zaptest.NewLogger(t)).AccessToken(context.Background(), signedIn())
	require.NoError(t, err)
	assert.Equal(t, "AFtoken:123", token)
}

func TestProbeDecodesDeflatePage(t *testing.T) {
	tests := []struct {
		name   string
		writer func(io.Writer) io.WriteCloser
	}{
		{
			name:   "zlib wrapped",
			writer: func(w io.Writer) io.WriteCloser { return zlib.NewWriter(w) },
		},
		{
			name: "raw deflate",
			writer: func(w io.Writer) io.WriteCloser {
				fw, _ := flate.NewWriter(w, flate.DefaultCompression)
				return fw
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Encoding", "deflate")
				zw := tt.writer(w)
				_, _ = io.WriteString(zw, appPage)
				_ = zw.Close()
			}))
			t.Cleanup(server.Close)

			token, err := NewProbe(server.Client(), server.URL, zaptest.NewLogger(t)).AccessToken(context.Background(), signedIn())
			require.NoError(t, err)
			assert.Equal(t, "AFtoken:123", token)
		})
	}
}

func TestReadBodyReportsOversizedBody(t *testing.T) {
	resp := &http.Response{Header: http.Header{}, Body: io.NopCloser(strings.NewReader("0123456789"))}
	_, err := readBodyLimit(resp, 9)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	resp = &http.Response{Header: http.Header{}, Body: io.NopCloser(strings.NewReader("0123456789"))}
	body, err := readBodyLimit(resp, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))
}

func TestBackendGenerateSendsBrowserShapedRequest(t *testing.T) {
	answer := streamBody(t, framePart(t, answerPayload(textCandidate("hello from the model"))))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded;charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "https://gemini.google.com", r.Header.Get("Origin"))
		assert.Equal(t, "https://gemini.google.com/", r.Header.Get("Referer"))
		assert.Equal(t, "1", r.Header.Get("X-Same-Domain"))
		assert.Equal(t, modelHeaderValue, r.Header.Get(modelHeader))
		assert.Equal(t, "NID=nid; __Secure-1PSID=psid", r.Header.Get("Cookie"))
		assert.Equal(t, "gemini.google.com", r.Host)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "tok", r.PostForm.Get("at"))
		assert.Contains(t, r.PostForm.Get("f.req"), "draw a lighthouse")

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write(answer)
		_ = gz.Close()
	}))
	t.Cleanup(server.Close)

	backend := NewBackend(server.Client(), BackendConfig{Endpoint: server.URL}, zaptest.NewLogger(t))

	result, err := backend.Generate(context.Background(), domain.Session{
		Credentials: signedIn(),
		AccessToken: "tok",
		Ready:       true,
	}, "draw a lighthouse")
	require.NoError(t, err)

	assert.Equal(t, "hello from the model", result.Text)
	assert.Equal(t, DefaultModel, result.Model)
	assert.Empty(t, result.Images)
}

func TestBackendGenerateUsesConfiguredImagePrefix(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		candidate := imageCandidate("Here", generatedImage(server.URL+"/img/one", 1, "caption"))
		_, _ = w.Write(streamBody(t, framePart(t, answerPayload(candidate))))
	}))
	t.Cleanup(server.Close)

	backend := NewBackend(server.Client(), BackendConfig{Endpoint: server.URL, ImagePrefix: server.URL + "/img/"}, zaptest.NewLogger(t))

	result, err := backend.Generate(context.Background(), domain.Session{Credentials: signedIn(), AccessToken: "tok", Ready: true}, "p")
	require.NoError(t, err)
	require.Len(t, result.Images, 1)
	assert.Equal(t, server.URL+"/img/one", result.Images[0].URL)
	assert.Equal(t, "caption", result.Images[0].Alt)
}

func TestBackendGenerateRequiresAccessToken(t *testing.T) {
	backend := NewBackend(nil, BackendConfig{Endpoint: "http://127.0.0.1:1"}, zaptest.NewLogger(t))

	_, err := backend.Generate(context.Background(), domain.Session{Credentials: signedIn()}, "prompt")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestBackendGenerateSurfacesStatusAndDecodeErrors(t *testing.T) {
	status := http.StatusBadRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, ")]}'\n\nnot json\n")
	}))
	t.Cleanup(server.Close)

	backend := NewBackend(server.Client(), BackendConfig{Endpoint: server.URL}, zaptest.NewLogger(t))
	session := domain.Session{Credentials: signedIn(), AccessToken: "tok", Ready: true}

	_, err := backend.Generate(context.Background(), session, "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")

	status = http.StatusOK
	_, err = backend.Generate(context.Background(), session, "prompt")
	assert.ErrorIs(t, err, domain.ErrParse)
}

// redirectServer answers /hop/N with a redirect to /hop/N+1 until N reaches hops, then serves payload.
func redirectServer(t *testing.T, hops int, payload []byte, contentType string) (*httptest.Server, *[]string) {
	t.Helper()

	var cookies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies = append(cookies, r.Header.Get("Cookie"))

		var n int
		if _, err := fmt.Sscanf(strings.TrimSuffix(r.URL.Path, DefaultSizeSuffix), "/hop/%d", &n); err != nil {
			http.NotFound(w, r)
			return
		}
		if n < hops {
			// Relative locations must resolve against the current hop.
			w.Header().Set("Location", fmt.Sprintf("%d", n+1))
			w.WriteHeader(http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	return server, &cookies
}

func TestFetcherFollowsRedirectsManually(t *testing.T) {
	payload := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 512)
	server, cookies := redirectServer(t, 3, payload, "image/png")

	fetcher := NewFetcher(server.Client(), FetcherConfig{}, zaptest.NewLogger(t))
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := fetcher.Save(context.Background(), server.URL+"/hop/0", dir, "cover.png", signedIn())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cover.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, len(payload))

	require.Len(t, *cookies, 4)
	for _, cookie := range *cookies {
		assert.Equal(t, "NID=nid; __Secure-1PSID=psid", cookie)
	}
}

func TestFetcherGivesUpAfterTooManyRedirects(t *testing.T) {
	server, cookies := redirectServer(t, 11, []byte("never"), "image/png")

	fetcher := NewFetcher(server.Client(), FetcherConfig{}, zaptest.NewLogger(t))
	dir := t.TempDir()

	_, err := fetcher.Save(context.Background(), server.URL+"/hop/0", dir, "x.png", signedIn())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownload)
	assert.Contains(t, err.Error(), "more than 10 redirects")
	assert.Len(t, *cookies, 11)
	assert.NoFileExists(t, filepath.Join(dir, "x.png"))
}

func TestFetcherAcceptsExactlyMaxRedirects(t *testing.T) {
	server, _ := redirectServer(t, 10, []byte("ok"), "image/webp")

	fetcher := NewFetcher(server.Client(), FetcherConfig{}, zaptest.NewLogger(t))
	_, err := fetcher.Save(context.Background(), server.URL+"/hop/0", t.TempDir(), "x.webp", nil)
	require.NoError(t, err)
}

func TestFetcherFailsOnRedirectWithoutLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(server.Client(), FetcherConfig{}, zaptest.NewLogger(t))
	_, err := fetcher.Save(context.Background(), server.URL+"/img", t.TempDir(), "x.png", signedIn())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownload)
	assert.Contains(t, err.Error(), "Location")
}

func TestFetcherReportsTerminalStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(server.Client(), FetcherConfig{}, zaptest.NewLogger(t))
	_, err := fetcher.Save(context.Background(), server.URL+"/img", t.TempDir(), "x.png", signedIn())
	require.Error(t, err)

	var downloadErr *domain.DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Equal(t, http.StatusForbidden, downloadErr.StatusCode)
}

func TestFetcherWarnsOnNonImageContentButWrites(t *testing.T) {
	var gotURL *url.URL
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html>not an image</html>")
	}))
	t.Cleanup(server.Close)

	core, logs := observer.New(zapcore.WarnLevel)
	fetcher := NewFetcher(server.Client(), FetcherConfig{SizeSuffix: "=s1024"}, zap.New(core))

	path, err := fetcher.Save(context.Background(), server.URL+"/img", t.TempDir(), "x.png", signedIn())
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, "/img=s1024", gotURL.Path)
	assert.Equal(t, imageAccept, gotAccept)
	require.Equal(t, 1, logs.FilterMessage("downloaded content is not an image").Len())
}

func TestFetcherRejectsImageOverSizeLimit(t *testing.T) {
	server, _ := redirectServer(t, 0, bytes.Repeat([]byte("x"), 33), "image/png")

	fetcher := NewFetcher(server.Client(), FetcherConfig{MaxBytes: 32}, zaptest.NewLogger(t))
	dir := t.TempDir()

	_, err := fetcher.Save(context.Background(), server.URL+"/hop/0", dir, "big.png", signedIn())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownload)
	assert.ErrorContains(t, err, "exceeds size limit")
	assert.NoFileExists(t, filepath.Join(dir, "big.png"))

	path, err := NewFetcher(server.Client(), FetcherConfig{MaxBytes: 33}, zaptest.NewLogger(t)).
		Save(context.Background(), server.URL+"/hop/0", dir, "big.png", signedIn())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 33)
}
