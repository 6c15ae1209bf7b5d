package port

import (
	"fmt"
	"net"
	"testing"
)

func TestFree(t *testing.T) {
	t.Parallel()

	p, err := Free()
	if err != nil {
		t.Fatalf("Free: %v", err)
	}
	if p <= 0 || p > 65535 {
		t.Fatalf("Free returned out-of-range port %d", p)
	}

	// The suggested port should be bindable right away.
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", p))
	if err != nil {
		t.Fatalf("binding suggested port %d: %v", p, err)
	}
	ln.Close()
}

func TestIsAvailable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	bound := ln.Addr().(*net.TCPAddr).Port
	if IsAvailable(bound) {
		t.Errorf("port %d is bound but reported available", bound)
	}

	ln.Close()
	if !IsAvailable(bound) {
		t.Errorf("port %d is free but reported unavailable", bound)
	}
}
