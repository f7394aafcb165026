package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pascal910107/objectid"
)

type constReader byte

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

// run executes the CLI with a zeroed random source and a fixed clock.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	oldWD, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cmd := NewRootCmd(
		objectid.WithRandom(constReader(0)),
		objectid.WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) }),
	)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRootPrintsHexByDefault(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Equal(t, "6553f100"+"000000"+"0000"+"000001\n", out)
}

func TestHexCount(t *testing.T) {
	out, err := run(t, "hex", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"6553f100" + "000000" + "0000" + "000001",
		"6553f100" + "000000" + "0000" + "000002",
		"6553f100" + "000000" + "0000" + "000003",
	}, lines(out))
}

func TestHexTimestampFlag(t *testing.T) {
	out, err := run(t, "hex", "--timestamp", "1.75")
	require.NoError(t, err)
	assert.Equal(t, "000000010000000000000001\n", out)
}

func TestSlim(t *testing.T) {
	out, err := run(t, "slim", "-t", "1")
	require.NoError(t, err)
	assert.Equal(t, "-----F---------0\n", out)

	_, err = run(t, "slim", "--alphabet", "abc")
	assert.ErrorIs(t, err, objectid.ErrInvalidAlphabet)
}

func TestFormatFromEnv(t *testing.T) {
	t.Setenv("OBJECTID_FORMAT", "slim")
	out, err := run(t, "-t", "1")
	require.NoError(t, err)
	assert.Equal(t, "-----F---------0\n", out)
}

func TestFormatFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objectid.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"slim\"\ncount = 2\n"), 0o600))

	out, err := run(t, "--config", path, "-t", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"-----F---------0", "-----F---------1"}, lines(out))
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "base32")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `format must be "hex" or "slim"`)
}

func TestInspect(t *testing.T) {
	id := objectid.ID{0x65, 0x53, 0xf1, 0x00, 0xab, 0xcd, 0xef, 0x12, 0x34, 0x00, 0x00, 0x2a}
	slim, err := id.Slim("")
	require.NoError(t, err)

	for _, in := range []string{id.Hex(), slim} {
		out, err := run(t, "inspect", in)
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"hex:       6553f100abcdef123400002a",
			"slim:      " + slim,
			"timestamp: 2023-11-14T22:13:20Z (1700000000)",
			"machine:   abcdef",
			"process:   1234",
			"counter:   42",
		}, "\n")+"\n", out)
	}
}

func TestInspectJSON(t *testing.T) {
	out, err := run(t, "inspect", "--json", "000000010000000000000000")
	require.NoError(t, err)

	var got inspection
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, inspection{
		Hex:       "000000010000000000000000",
		Slim:      "-----F----------",
		Timestamp: "1970-01-01T00:00:01Z",
		Unix:      1,
		Machine:   "000000",
		Process:   "0000",
		Counter:   0,
	}, got)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := run(t, "inspect", "not-an-id")
	assert.ErrorIs(t, err, objectid.ErrInvalidSlim)
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config", "-n", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "count = 4\n")
	assert.Contains(t, out, `format = "hex"`)

	out, err = run(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "count = 1\n")
}
