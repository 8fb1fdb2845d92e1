package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/smart-image-cli/internal/domain"
	"github.com/bnema/smart-image-cli/internal/ports/mocks"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordedCall struct {
	Method    string
	SessionID string
	Params    json.RawMessage
}

// fakeChrome serves /json/version and a scripted debug websocket on the reserved port.
type fakeChrome struct {
	readyAfter int
	serve      bool
	exitOnTerm bool
	launchErr  error

	mu         sync.Mutex
	spec       LaunchSpec
	calls      []recordedCall
	cookiePoll int
	proc       *fakeProcess
}

func (f *fakeChrome) Launch(_ context.Context, spec LaunchSpec) (Process, error) {
	if f.launchErr != nil {
		return nil, f.launchErr
	}

	f.mu.Lock()
	f.spec = spec
	f.mu.Unlock()

	proc := &fakeProcess{done: make(chan struct{}), exitOnTerm: f.exitOnTerm}
	f.proc = proc
	if !f.serve {
		return proc, nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", spec.Port))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	server := httptest.NewUnstartedServer(mux)
	_ = server.Listener.Close()
	server.Listener = listener

	wsURL := fmt.Sprintf("ws://127.0.0.1:%d/devtools/browser/fake", spec.Port)
	mux.HandleFunc("/json/version", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"Browser":              "FakeChrome/1.0",
			"webSocketDebuggerUrl": wsURL,
		})
	})
	mux.HandleFunc("/devtools/browser/fake", f.serveDebugger)

	server.Start()
	proc.onExit = server.Close

	return proc, nil
}

func (f *fakeChrome) serveDebugger(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = ws.Close() }()

	for {
		var req struct {
			ID        int64           `json:"id"`
			Method    string          `json:"method"`
			Params    json.RawMessage `json:"params"`
			SessionID string          `json:"sessionId"`
		}
		if err := ws.ReadJSON(&req); err != nil {
			return
		}

		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{Method: req.Method, SessionID: req.SessionID, Params: req.Params})
		result := f.resultFor(req.Method)
		f.mu.Unlock()

		if err := ws.WriteJSON(map[string]any{"id": req.ID, "result": result}); err != nil {
			return
		}
	}
}

func (f *fakeChrome) resultFor(method string) any {
	switch method {
	case "Target.createTarget":
		return map[string]any{"targetId": "TARGET-1"}
	case "Target.attachToTarget":
		return map[string]any{"sessionId": "SESSION-1"}
	case "Network.getCookies":
		f.cookiePoll++
		cookies := []map[string]any{{"name": "NID", "value": "nid-value", "domain": ".google.com"}}
		if f.readyAfter > 0 && f.cookiePoll >= f.readyAfter {
			cookies = append(cookies, map[string]any{"name": domain.MarkerCookie, "value": "psid-value", "domain": ".google.com"})
		}
		return map[string]any{"cookies": cookies}
	default:
		return map[string]any{}
	}
}

func (f *fakeChrome) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		out = append(out, call.Method)
	}
	return out
}

func (f *fakeChrome) call(method string) (recordedCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, call := range f.calls {
		if call.Method == method {
			return call, true
		}
	}
	return recordedCall{}, false
}

type fakeProcess struct {
	exitOnTerm bool
	onExit     func()

	mu         sync.Mutex
	terminated int
	killed     int
	done       chan struct{}
	exitOnce   sync.Once
}

func (p *fakeProcess) exit() {
	p.exitOnce.Do(func() {
		if p.onExit != nil {
			p.onExit()
		}
		close(p.done)
	})
}

func (p *fakeProcess) Terminate() error {
	p.mu.Lock()
	p.terminated++
	p.mu.Unlock()
	if p.exitOnTerm {
		p.exit()
	}
	return nil
}

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	p.killed++
	p.mu.Unlock()
	p.exit()
	return nil
}

func (p *fakeProcess) Done() <-chan struct{} { return p.done }

func (p *fakeProcess) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated, p.killed
}

func markerProbe(t *testing.T) *mocks.MockSessionProbe {
	t.Helper()

	probe := mocks.NewMockSessionProbe(t)
	probe.EXPECT().Ready(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, creds domain.CredentialSet) bool {
			return creds.HasMarker()
		})
	return probe
}

func decodeParams(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()

	var params map[string]any
	require.NoError(t, json.Unmarshal(raw, &params))
	return params
}

func testConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		ProfileDir:      filepath.Join(t.TempDir(), "chrome-profile"),
		DebuggerWait:    2 * time.Second,
		LoginTimeout:    2 * time.Second,
		PollInterval:    10 * time.Millisecond,
		CallTimeout:     time.Second,
		CookieTimeout:   time.Second,
		CloseTimeout:    time.Second,
		KillGracePeriod: 50 * time.Millisecond,
	}
}

func TestAcquireCredentialsReturnsCookiesOnceSignedIn(t *testing.T) {
	chrome := &fakeChrome{readyAfter: 3, serve: true, exitOnTerm: true}
	cfg := testConfig(t)
	orch := NewOrchestrator(cfg, chrome, markerProbe(t), zaptest.NewLogger(t))

	creds, err := orch.AcquireCredentials(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.CredentialSet{
		"NID":               "nid-value",
		domain.MarkerCookie: "psid-value",
	}, creds)
	assert.DirExists(t, cfg.ProfileDir)
	assert.True(t, orch.ProfileExists())

	assert.Equal(t, cfg.ProfileDir, chrome.spec.ProfileDir)
	assert.Equal(t, DefaultAppURL, chrome.spec.URL)
	assert.NotZero(t, chrome.spec.Port)

	methods := chrome.methods()
	require.GreaterOrEqual(t, len(methods), 7)
	assert.Equal(t, []string{"Target.createTarget", "Target.attachToTarget", "Network.enable"}, methods[:3])
	assert.Equal(t, "Browser.close", methods[len(methods)-1])

	create, ok := chrome.call("Target.createTarget")
	require.True(t, ok)
	createParams := decodeParams(t, create.Params)
	assert.Equal(t, DefaultAppURL, createParams["url"])
	assert.Equal(t, true, createParams["newWindow"])

	attach, ok := chrome.call("Target.attachToTarget")
	require.True(t, ok)
	attachParams := decodeParams(t, attach.Params)
	assert.Equal(t, "TARGET-1", attachParams["targetId"])
	assert.Equal(t, true, attachParams["flatten"])

	enable, ok := chrome.call("Network.enable")
	require.True(t, ok)
	assert.Equal(t, "SESSION-1", enable.SessionID)

	poll, ok := chrome.call("Network.getCookies")
	require.True(t, ok)
	assert.Equal(t, "SESSION-1", poll.SessionID)
	assert.Equal(t, []any{
		"https://gemini.google.com/",
		"https://accounts.google.com/",
		"https://www.google.com/",
	}, decodeParams(t, poll.Params)["urls"])

	terminated, killed := chrome.proc.counts()
	assert.Equal(t, 1, terminated)
	assert.Zero(t, killed)
}

func TestAcquireCredentialsTimesOutAndStillTearsDown(t *testing.T) {
	chrome := &fakeChrome{serve: true, exitOnTerm: true}
	cfg := testConfig(t)
	cfg.LoginTimeout = 150 * time.Millisecond
	orch := NewOrchestrator(cfg, chrome, markerProbe(t), zaptest.NewLogger(t))

	_, err := orch.AcquireCredentials(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoginTimeout)

	methods := chrome.methods()
	require.NotEmpty(t, methods)
	assert.Equal(t, "Browser.close", methods[len(methods)-1])

	terminated, _ := chrome.proc.counts()
	assert.Equal(t, 1, terminated)
	select {
	case <-chrome.proc.Done():
	default:
		t.Fatal("browser process still running after failed login")
	}
}

func TestAcquireCredentialsFailsWhenDebugPortNeverAnswers(t *testing.T) {
	chrome := &fakeChrome{serve: false, exitOnTerm: true}
	cfg := testConfig(t)
	cfg.DebuggerWait = 300 * time.Millisecond
	orch := NewOrchestrator(cfg, chrome, mocks.NewMockSessionProbe(t), zaptest.NewLogger(t))

	_, err := orch.AcquireCredentials(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnection)

	terminated, killed := chrome.proc.counts()
	assert.Equal(t, 1, terminated)
	assert.Zero(t, killed)
}

func TestAcquireCredentialsKillsBrowserThatIgnoresTerminate(t *testing.T) {
	chrome := &fakeChrome{serve: false, exitOnTerm: false}
	cfg := testConfig(t)
	cfg.DebuggerWait = 100 * time.Millisecond
	orch := NewOrchestrator(cfg, chrome, mocks.NewMockSessionProbe(t), zaptest.NewLogger(t))

	_, err := orch.AcquireCredentials(context.Background())
	require.Error(t, err)

	terminated, killed := chrome.proc.counts()
	assert.Equal(t, 1, terminated)
	assert.Equal(t, 1, killed)
}

func TestAcquireCredentialsReportsLaunchFailure(t *testing.T) {
	chrome := &fakeChrome{launchErr: ErrExecutableNotFound}
	orch := NewOrchestrator(testConfig(t), chrome, mocks.NewMockSessionProbe(t), zaptest.NewLogger(t))

	_, err := orch.AcquireCredentials(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.Contains(t, err.Error(), ErrExecutableNotFound.Error())
}

func TestAcquireCredentialsHonoursCancellation(t *testing.T) {
	chrome := &fakeChrome{serve: true, exitOnTerm: true}
	cfg := testConfig(t)
	cfg.LoginTimeout = time.Minute
	orch := NewOrchestrator(cfg, chrome, markerProbe(t), zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := orch.AcquireCredentials(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	terminated, _ := chrome.proc.counts()
	assert.Equal(t, 1, terminated)
}

func TestResetProfileRemovesDirectory(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.ProfileDir, "Default"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ProfileDir, "Default", "Cookies"), []byte("x"), 0o600))

	orch := NewOrchestrator(cfg, &fakeChrome{}, mocks.NewMockSessionProbe(t), nil)
	require.True(t, orch.ProfileExists())

	require.NoError(t, orch.ResetProfile(context.Background()))
	assert.False(t, orch.ProfileExists())
	assert.NoDirExists(t, cfg.ProfileDir)

	require.NoError(t, orch.ResetProfile(context.Background()), "removing a missing profile is not an error")
}

func TestBuildArgsUsesDedicatedProfile(t *testing.T) {
	args := BuildArgs(LaunchSpec{Port: 9333, ProfileDir: "/tmp/profile", URL: DefaultAppURL}, []string{"--lang=en"})

	assert.Equal(t, []string{
		"--remote-debugging-port=9333",
		"--user-data-dir=/tmp/profile",
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-popup-blocking",
		"--lang=en",
		DefaultAppURL,
	}, args)
}

func TestFindExecutableHonoursCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	got, err := FindExecutable(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = FindExecutable(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrExecutableNotFound)
}

func TestFreePortReturnsBindablePort(t *testing.T) {
	port, err := FreePort()
	require.NoError(t, err)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	require.NoError(t, listener.Close())
}
