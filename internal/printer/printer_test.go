package printer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/youruser/hashprint/internal/errors"
)

func fakeSpooler(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not available")
	}
	script := filepath.Join(t.TempDir(), "fake-lp")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return script
}

func TestSpooler_PassesPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args.txt")
	script := fakeSpooler(t, `echo "$@" > "`+out+`"`)

	err := NewSpooler(script+" -d booth").Print(context.Background(), "data/final_image.jpg")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-d booth data/final_image.jpg", strings.TrimSpace(string(got)))
}

func TestSpooler_Failure(t *testing.T) {
	script := fakeSpooler(t, `echo "lp: printer offline" >&2; exit 1`)

	err := NewSpooler(script).Print(context.Background(), "x.jpg")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPrint))
	assert.Contains(t, err.Error(), "printer offline")
}

func TestSpooler_MissingBinary(t *testing.T) {
	err := NewSpooler("/nonexistent/lp").Print(context.Background(), "x.jpg")
	assert.True(t, apperrors.IsKind(err, apperrors.KindPrint))
}

func TestNewSpooler_Default(t *testing.T) {
	s := NewSpooler("  ")
	assert.Equal(t, "lp", s.command)
	assert.Empty(t, s.args)
}
