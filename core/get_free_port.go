package core

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const maxFreePortAttempts = 100

// GetFreePort picks a random port in the dynamic range that
// can currently be bound on localhost.
func GetFreePort() (int, error) {
	for i := 0; i < maxFreePortAttempts; i++ {
		port := 49152 + rand.Intn(16383)
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			continue
		}
		if err := listener.Close(); err != nil {
			continue
		}
		return port, nil
	}
	return 0, errors.Errorf("no free port found after %d attempts", maxFreePortAttempts)
}
