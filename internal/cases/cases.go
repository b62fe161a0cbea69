// Package cases finds static test cases on disk and persists failing
// generated inputs next to them.
package cases

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	zstExt       = ".zst"
	failedPrefix = "failed_"
)

// Case is one static case. ExpectedPath is empty when there is no .out.
type Case struct {
	Name         string
	InputPath    string
	ExpectedPath string
}

// Enumerate lists {problem}_*.in (optionally .in.zst) files of dir in
// lexicographic order and pairs each with its .out when present.
func Enumerate(dir, problem string) ([]Case, error) {
	var paths []string
	for _, pattern := range []string{problem + "_*.in", problem + "_*.in" + zstExt} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list cases: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	res := make([]Case, 0, len(paths))
	for _, in := range paths {
		base := strings.TrimSuffix(filepath.Base(in), zstExt)
		name := strings.TrimSuffix(base, ".in")
		if !ownKey(strings.TrimPrefix(name, problem+"_")) {
			continue
		}
		c := Case{Name: name, InputPath: in}
		for _, out := range []string{name + ".out", name + ".out" + zstExt} {
			p := filepath.Join(dir, out)
			if _, err := os.Stat(p); err == nil {
				c.ExpectedPath = p
				break
			}
		}
		res = append(res, c)
	}
	return res, nil
}

// ownKey rejects keys that belong to a longer problem id sharing the
// prefix: "two" must not pick up two_sum_1.in. Keys are free of '_'
// except the failed_{n} form written by SaveFailed.
func ownKey(key string) bool {
	if key == "" {
		return false
	}
	if n, ok := strings.CutPrefix(key, failedPrefix); ok {
		_, err := strconv.Atoi(n)
		return err == nil
	}
	return !strings.Contains(key, "_")
}

var decoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
})

// ReadFile reads a case file as text, decompressing .zst files.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read case file %s: %w", path, err)
	}
	if filepath.Ext(path) != zstExt {
		return string(data), nil
	}
	d, err := decoder()
	if err != nil {
		return "", fmt.Errorf("failed to create zstd reader: %w", err)
	}
	out, err := d.DecodeAll(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return string(out), nil
}

// SaveFailed writes input to {dir}/{problem}_failed_{n}.in using the
// smallest n whose file does not exist yet. A trailing newline is added
// when missing.
func SaveFailed(dir, problem, input string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create tests dir: %w", err)
	}
	if !strings.HasSuffix(input, "\n") {
		input += "\n"
	}
	for n := 1; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s%d.in", problem, failedPrefix, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}
		_, werr := f.WriteString(input)
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}
}
