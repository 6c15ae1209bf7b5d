package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Status is the outcome classification of a probe.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Config describes a single health probe against a running instance.
type Config struct {
	Addr     string        // host:port; an empty host means 127.0.0.1
	Path     string        // HTTP path, e.g. "/health"
	WantBody string        // if non-empty, the response body must match exactly
	Timeout  time.Duration
}

// Result is the outcome of one probe.
type Result struct {
	Status  Status
	Message string
}

// Check performs a one-shot HTTP probe. The response must be 2xx and,
// if WantBody is set, carry exactly that body.
func Check(ctx context.Context, cfg Config) Result {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	url, err := probeURL(cfg.Addr, cfg.Path)
	if err != nil {
		return Result{StatusUnhealthy, err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Result{StatusUnhealthy, fmt.Sprintf("creating request: %v", err)}
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return Result{StatusUnhealthy, fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{StatusUnhealthy, fmt.Sprintf("unhealthy status: %d", resp.StatusCode)}
	}

	if cfg.WantBody != "" {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return Result{StatusUnhealthy, fmt.Sprintf("reading body: %v", err)}
		}
		if string(body) != cfg.WantBody {
			return Result{StatusUnhealthy, fmt.Sprintf("unexpected body %q", body)}
		}
	}

	return Result{StatusHealthy, "ok"}
}

// CheckTCP reports whether the address accepts TCP connections at all.
// Used as a coarser fallback when the HTTP probe fails.
func CheckTCP(ctx context.Context, cfg Config) error {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	addr, err := hostPort(cfg.Addr)
	if err != nil {
		return err
	}
	dialer := net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("tcp connect failed: %w", err)
	}
	conn.Close()
	return nil
}

func probeURL(addr, path string) (string, error) {
	hp, err := hostPort(addr)
	if err != nil {
		return "", err
	}
	return "http://" + hp + path, nil
}

// hostPort normalizes listen-style addresses like ":5000" into
// something dialable.
func hostPort(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port), nil
}
