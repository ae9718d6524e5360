package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

// ResolveAddr computes the registry address for this run.
//
// In local mode the address is the fixed loopback host with the configured
// port. In remote-host mode the client tools run on a different machine, so
// loopback would point them at themselves; instead the host is taken from a
// lookup of the local hostname. The lookup can fail — the caller decides
// whether to proceed with the loopback fallback that is returned alongside
// the error.
func ResolveAddr(remote bool, port int) (string, error) {
	loopback := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	if !remote {
		return loopback, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return loopback, fmt.Errorf("failed to determine local hostname: %w", err)
	}

	addrs, err := net.LookupHost(hostname)
	if err != nil {
		return loopback, fmt.Errorf("failed to resolve local hostname %q: %w", hostname, err)
	}
	if len(addrs) == 0 {
		return loopback, fmt.Errorf("no addresses for local hostname %q", hostname)
	}

	return net.JoinHostPort(addrs[0], strconv.Itoa(port)), nil
}
