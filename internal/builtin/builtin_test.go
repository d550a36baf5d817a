package builtin

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smallsh/internal/command"
	smallerrors "smallsh/internal/errors"
	"smallsh/internal/session"
	"smallsh/internal/status"
	"smallsh/util"
)

func newSession(out *bytes.Buffer) *session.Session {
	return session.New(out, out, util.NewLogger(0))
}

// chdirBack restores the working directory when the test ends.
func chdirBack(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck
}

func TestTable(t *testing.T) {
	table := Table()
	assert.Len(t, table, 3)
	assert.IsType(t, &Exit{}, table[command.Exit])
	assert.IsType(t, &ChangeDir{}, table[command.ChangeDirectory])
	assert.IsType(t, &Status{}, table[command.Status])
	_, ok := table[command.External]
	assert.False(t, ok)
}

func TestExit(t *testing.T) {
	var out bytes.Buffer
	err := (&Exit{}).Run(context.Background(), newSession(&out), nil)
	assert.ErrorIs(t, err, smallerrors.ErrExit)
}

func TestChangeDir_Home(t *testing.T) {
	chdirBack(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	var out bytes.Buffer
	require.NoError(t, (&ChangeDir{}).Run(context.Background(), newSession(&out), nil))

	wd, err := os.Getwd()
	require.NoError(t, err)
	expected, _ := filepath.EvalSymlinks(home)
	actual, _ := filepath.EvalSymlinks(wd)
	assert.Equal(t, expected, actual)
}

func TestChangeDir_Relative(t *testing.T) {
	chdirBack(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.Chdir(root))

	var out bytes.Buffer
	require.NoError(t, (&ChangeDir{}).Run(context.Background(), newSession(&out), []string{"sub"}))

	wd, _ := os.Getwd()
	assert.Equal(t, "sub", filepath.Base(wd))
}

func TestChangeDir_MissingIsSilent(t *testing.T) {
	chdirBack(t)
	before, _ := os.Getwd()

	var out bytes.Buffer
	err := (&ChangeDir{}).Run(context.Background(), newSession(&out), []string{"/definitely/not/here"})
	assert.NoError(t, err)
	assert.Empty(t, out.String())

	after, _ := os.Getwd()
	assert.Equal(t, before, after)
}

func TestStatus(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(&out)

	require.NoError(t, (&Status{}).Run(context.Background(), sess, nil))
	assert.Equal(t, "exit value 0\n", out.String())

	out.Reset()
	sess.Status.Record(status.Signaled(2))
	require.NoError(t, (&Status{}).Run(context.Background(), sess, nil))
	assert.Equal(t, "terminated by signal 2\n", out.String())
}
