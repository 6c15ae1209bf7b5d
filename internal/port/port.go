package port

import (
	"fmt"
	"net"
)

// IsAvailable reports whether a TCP port can currently be bound on
// localhost.
func IsAvailable(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

// Free asks the kernel for an ephemeral port that is currently unbound.
// The port is released before returning, so a race with other binders
// is possible; callers should treat it as a best-effort suggestion.
func Free() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port, nil
}
