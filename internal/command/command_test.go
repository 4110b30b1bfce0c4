package command

import (
	"bytes"
	"context"
	"testing"
)

// runCommand registers cmd on a fresh registry and runs it with args.
func runCommand(t *testing.T, cmd Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	registry := NewRegistry()
	registry.Register(cmd)
	var out, errOut bytes.Buffer
	err = registry.Run(context.Background(), cmd.Name(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}
