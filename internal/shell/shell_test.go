package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metailurini/skipindex"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store")
	var out bytes.Buffer
	idx := skipindex.New[string, string](skipindex.WithSeed(1))
	return New(idx, path, &out, nil), &out, path
}

func TestShellCommands(t *testing.T) {
	sh, out, _ := newShell(t)

	script := strings.Join([]string{
		"add 1 a",
		"add 3 c",
		"add 2 b",
		"get 2",
		"search 3",
		"del 2",
		"get 2",
		"search 2",
		"del 2",
		"add",
	}, "\n")
	require.NoError(t, sh.Run(strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "Key: 1 Value: a insert success!")
	assert.Contains(t, got, "Key: 2's value is b")
	assert.Contains(t, got, "Key: 3 exists!")
	assert.Contains(t, got, "Key: 2 deleted!")
	assert.Contains(t, got, "Key: 2 not exists!")
	assert.Contains(t, got, "skiplist not exists the key: 2")
	assert.Contains(t, got, "usage: add expects 2 argument(s)")
	assert.Equal(t, 2, sh.idx.Len())
}

func TestShellDumpAndLoad(t *testing.T) {
	sh, out, path := newShell(t)

	require.NoError(t, sh.Run(strings.NewReader("add k1 v1\nadd k2 v2\ndump\n")))
	assert.Contains(t, out.String(), "Already saved skiplist. records=2 flagged=0")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "k1:v1;\nk2:v2;\n", string(data))

	var out2 bytes.Buffer
	fresh := New(skipindex.New[string, string](), path, &out2, nil)
	require.NoError(t, fresh.Run(strings.NewReader("load\nget k2\n")))
	assert.Contains(t, out2.String(), "Loaded skiplist. records=2 skipped=0")
	assert.Contains(t, out2.String(), "Key: k2's value is v2")
}

func TestShellLoadMissingFileKeepsRunning(t *testing.T) {
	sh, out, _ := newShell(t)

	require.NoError(t, sh.Run(strings.NewReader("load\nadd k v\nget k\n")))
	assert.Contains(t, out.String(), "load failed:")
	assert.Contains(t, out.String(), "Key: k's value is v")
}

func TestShellExitStopsProcessing(t *testing.T) {
	sh, out, _ := newShell(t)

	require.NoError(t, sh.Run(strings.NewReader("add a 1\nexit\nadd b 2\n")))
	assert.True(t, sh.idx.Contains("a"))
	assert.False(t, sh.idx.Contains("b"))
	assert.NotContains(t, out.String(), "Key: b")
}

func TestShellDisplayAndStats(t *testing.T) {
	sh, out, _ := newShell(t)

	require.NoError(t, sh.Run(strings.NewReader("add a 1\ndisplay\nstats\n")))
	got := out.String()
	assert.Contains(t, got, "a:1;")
	assert.Contains(t, got, "LEVEL")
	assert.Contains(t, got, "METRIC")
	assert.Contains(t, got, "inserts")
}
