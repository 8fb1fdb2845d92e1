package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

var ErrExecutableNotFound = errors.New("no Chrome/Chromium executable found")

// Process is a launched browser.
type Process interface {
	// Terminate asks the browser to exit.
	Terminate() error
	Kill() error
	// Done is closed once the process has exited.
	Done() <-chan struct{}
}

type LaunchSpec struct {
	Port       int
	ProfileDir string
	URL        string
}

type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) (Process, error)
}

// ExecLauncher starts a local Chromium-family browser.
type ExecLauncher struct {
	ExecutablePath string
	ExtraArgs      []string
}

func (l ExecLauncher) Launch(_ context.Context, spec LaunchSpec) (Process, error) {
	exe, err := FindExecutable(l.ExecutablePath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(exe, BuildArgs(spec, l.ExtraArgs)...)
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", exe, err)
	}

	proc := &chromeProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(proc.done)
	}()

	return proc, nil
}

// BuildArgs returns the command line for a dedicated, non-shared profile.
func BuildArgs(spec LaunchSpec, extra []string) []string {
	args := []string{
		fmt.Sprintf("--remote-debugging-port=%d", spec.Port),
		fmt.Sprintf("--user-data-dir=%s", spec.ProfileDir),
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-popup-blocking",
	}
	args = append(args, extra...)
	if spec.URL != "" {
		args = append(args, spec.URL)
	}

	return args
}

type chromeProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func (p *chromeProcess) Terminate() error {
	return signalProcessGroup(p.cmd, false)
}

func (p *chromeProcess) Kill() error {
	var err error
	p.once.Do(func() {
		err = signalProcessGroup(p.cmd, true)
	})
	return err
}

func (p *chromeProcess) Done() <-chan struct{} {
	return p.done
}

// FindExecutable returns customPath when it exists, otherwise the first known install location.
func FindExecutable(customPath string) (string, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, customPath)
		}
		return customPath, nil
	}

	for _, candidate := range executableCandidates(runtime.GOOS) {
		if filepath.IsAbs(candidate) {
			if fileExists(candidate) {
				return candidate, nil
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", ErrExecutableNotFound
}

func executableCandidates(goos string) []string {
	switch goos {
	case "darwin":
		home := os.Getenv("HOME")
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
	case "windows":
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		programFilesX86 := os.Getenv("ProgramFiles(x86)")
		if programFilesX86 == "" {
			programFilesX86 = `C:\Program Files (x86)`
		}
		candidates := []string{
			filepath.Join(programFiles, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(programFilesX86, "Google", "Chrome", "Application", "chrome.exe"),
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Google", "Chrome", "Application", "chrome.exe"))
		}
		return candidates
	default:
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
			"google-chrome",
			"chromium",
		}
	}
}

// FreePort reserves an ephemeral loopback port and releases it for the browser to bind.
func FreePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("reserve debug port: %w", err)
	}
	defer func() { _ = listener.Close() }()

	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, errors.New("reserve debug port: unexpected listener address")
	}

	return addr.Port, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
