package cmd

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// defaultServeAddr binds to loopback: exposing the API publicly is a
// deliberate act done with an explicit address.
const defaultServeAddr = "127.0.0.1:3400"

// parseServeAddr resolves the listen address from the arguments after
// the subcommand. A bare positional address wins over the flag form:
//
//	gatehouse serve :8080
//	gatehouse serve --addr :8080
func parseServeAddr(args []string) (string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addr := fs.String("addr", defaultServeAddr, "Listen address (host:port)")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*addr = args[0]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("parsing serve flags: %w", err)
	}

	if err := validateAddr(*addr); err != nil {
		return "", fmt.Errorf("invalid address %q: %w", *addr, err)
	}
	return *addr, nil
}

// validateAddr checks the host:port shape without resolving anything.
// Port 0 asks the kernel for a free port.
func validateAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("must be in host:port format: %w", err)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		if strings.ContainsAny(host, " \t\n") {
			return fmt.Errorf("invalid host %q", host)
		}
	}

	if port == "" {
		return errors.New("port is required")
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("port must be 0-65535: %w", err)
	}
	return nil
}
