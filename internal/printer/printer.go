// Package printer hands finished images to the system print spooler.
package printer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	apperrors "github.com/youruser/hashprint/internal/errors"
)

type Printer interface {
	Print(ctx context.Context, path string) error
}

// Spooler runs an lp-compatible command with the file path as its last argument.
type Spooler struct {
	command string
	args    []string
}

// NewSpooler splits command on whitespace, so "lp -d booth" targets printer "booth".
func NewSpooler(command string) *Spooler {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"lp"}
	}
	return &Spooler{command: fields[0], args: fields[1:]}
}

func (s *Spooler) Print(ctx context.Context, path string) error {
	args := append(append([]string(nil), s.args...), path)
	cmd := exec.CommandContext(ctx, s.command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("%s failed", s.command)
		if out := strings.TrimSpace(stderr.String()); out != "" {
			msg += ": " + out
		}
		return apperrors.Wrap(apperrors.KindPrint, "printer.print", msg, err)
	}
	return nil
}
