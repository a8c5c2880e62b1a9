package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	sberrors "github.com/tessro/spotbar/internal/errors"
)

// Reasons Spotify attaches to player command failures.
const (
	ReasonNoActiveDevice  = "NO_ACTIVE_DEVICE"
	ReasonPremiumRequired = "PREMIUM_REQUIRED"
)

// IsNoActiveDevice returns true if the error indicates no active device.
func (e *APIError) IsNoActiveDevice() bool {
	return e.ErrorInfo.Status == http.StatusNotFound &&
		(e.ErrorInfo.Reason == "" || e.ErrorInfo.Reason == ReasonNoActiveDevice)
}

// IsNoActiveDeviceError checks if an error is a "no active device" error.
func IsNoActiveDeviceError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNoActiveDevice()
}

// IsPremiumRequiredError checks if an error is a 403 raised because the
// account cannot control playback.
func IsPremiumRequiredError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.ErrorInfo.Status == http.StatusForbidden &&
		apiErr.ErrorInfo.Reason == ReasonPremiumRequired
}

// Classify wraps err with the matching sentinel from internal/errors so
// callers can test it with errors.Is and print a suggestion. Errors with no
// matching sentinel are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if sentinel := sentinelFor(err); sentinel != nil && !errors.Is(err, sentinel) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func sentinelFor(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.ErrorInfo.Status == http.StatusUnauthorized:
			return sberrors.ErrNotAuthenticated
		case IsPremiumRequiredError(err):
			return sberrors.ErrPremiumRequired
		case apiErr.IsNoActiveDevice():
			return sberrors.ErrNoActiveDevice
		case apiErr.ErrorInfo.Status == http.StatusTooManyRequests:
			return sberrors.ErrRateLimited
		}
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return sberrors.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return sberrors.ErrTimeout
		}
		return sberrors.ErrNetworkError
	}
	return nil
}
