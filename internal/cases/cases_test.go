package cases_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/neetrunner/internal/cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "echo_2.in", "b\n")
	write(t, dir, "echo_1.in", "a\n")
	write(t, dir, "echo_1.out", "a\n")
	write(t, dir, "echo_10.in", "c\n")
	write(t, dir, "other_1.in", "x\n")

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	write(t, dir, "echo_3.in.zst", string(enc.EncodeAll([]byte("compressed\n"), nil)))
	write(t, dir, "echo_3.out.zst", string(enc.EncodeAll([]byte("COMPRESSED\n"), nil)))
	require.NoError(t, enc.Close())

	cs, err := cases.Enumerate(dir, "echo")
	require.NoError(t, err)

	var names []string
	for _, c := range cs {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"echo_1", "echo_10", "echo_2", "echo_3"}, names)
	assert.Equal(t, filepath.Join(dir, "echo_1.out"), cs[0].ExpectedPath)
	assert.Empty(t, cs[1].ExpectedPath)

	in, err := cases.ReadFile(cs[3].InputPath)
	require.NoError(t, err)
	assert.Equal(t, "compressed\n", in)
	out, err := cases.ReadFile(cs[3].ExpectedPath)
	require.NoError(t, err)
	assert.Equal(t, "COMPRESSED\n", out)
}

func TestEnumerateIgnoresLongerProblemIDs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "two_1.in", "a\n")
	write(t, dir, "two_sum_1.in", "b\n")
	write(t, dir, "two_sum_1.out", "b\n")
	write(t, dir, "two_failed_1.in", "c\n")
	write(t, dir, "two_failed_x.in", "d\n")

	cs, err := cases.Enumerate(dir, "two")
	require.NoError(t, err)
	var names []string
	for _, c := range cs {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"two_1", "two_failed_1"}, names)

	cs, err = cases.Enumerate(dir, "two_sum")
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "two_sum_1", cs[0].Name)
}

func TestEnumerateEmptyDir(t *testing.T) {
	cs, err := cases.Enumerate(filepath.Join(t.TempDir(), "missing"), "echo")
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestSaveFailed(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "two_sum_failed_2.in", "taken\n")

	p1, err := cases.SaveFailed(dir, "two_sum", "[1,2]\n3")
	require.NoError(t, err)
	p2, err := cases.SaveFailed(dir, "two_sum", "[4,5]\n9\n")
	require.NoError(t, err)
	p3, err := cases.SaveFailed(dir, "two_sum", "x")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "two_sum_failed_1.in"), p1)
	assert.Equal(t, filepath.Join(dir, "two_sum_failed_3.in"), p2)
	assert.Equal(t, filepath.Join(dir, "two_sum_failed_4.in"), p3)

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\n3\n", string(data))

	data, err = os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, "[4,5]\n9\n", string(data))
}

func TestSaveFailedCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tests")
	p, err := cases.SaveFailed(dir, "p", "1")
	require.NoError(t, err)
	assert.FileExists(t, p)
}
