package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConnection          = errors.New("connection error")
	ErrRPCTimeout          = errors.New("rpc timeout")
	ErrLoginTimeout        = errors.New("login timed out")
	ErrLoginFailed         = errors.New("login failed")
	ErrTokenRefresh        = errors.New("access token refresh failed")
	ErrParse               = errors.New("response parse error")
	ErrNoContent           = errors.New("no content in response")
	ErrDownload            = errors.New("download failed")
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrNotInitialized      = errors.New("session not initialized")
)

// DownloadError describes a failed artifact fetch. It matches ErrDownload.
type DownloadError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 && e.Reason != "" {
		return fmt.Sprintf("download %s: status %d: %s", e.URL, e.StatusCode, e.Reason)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("download %s: %s", e.URL, e.Reason)
}

func (e *DownloadError) Is(target error) bool {
	return target == ErrDownload
}
