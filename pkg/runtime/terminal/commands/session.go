package commands

import (
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/runtime/bootstrap"
)

// Session carries the runtime the root command prepares before any
// subcommand runs.
type Session struct {
	Runtime *bootstrap.Runtime
}

func (s *Session) runtime() (*bootstrap.Runtime, error) {
	if s == nil || s.Runtime == nil {
		return nil, fmt.Errorf("runtime is not initialized")
	}
	return s.Runtime, nil
}
