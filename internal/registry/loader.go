package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/puzpuzpuz/xsync/v3"
)

type loaded struct {
	module *Module
	err    error
}

// Loader resolves problem ids against the compiled registry and the
// solutions directory. Broken descriptors are reported once per process.
type Loader struct {
	reg          *Registry
	solutionsDir string
	log          *slog.Logger
	descriptors  *xsync.MapOf[string, loaded]
}

func NewLoader(reg *Registry, solutionsDir string, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		reg:          reg,
		solutionsDir: solutionsDir,
		log:          log,
		descriptors:  xsync.NewMapOf[string, loaded](),
	}
}

// LoadSolution returns the module for id, its validated metadata and its
// compare mode. A missing module yields nil. Invalid metadata yields the
// module with nil metadata and exact mode so callers fall back to running
// a single "default" entry.
func (l *Loader) LoadSolution(id string) (*Module, Metadata, compare.Mode) {
	m := l.module(id)
	if m == nil {
		return nil, nil, compare.Exact
	}
	mode := m.CompareMode
	if parsed, ok := compare.ParseMode(string(mode)); ok {
		mode = parsed
	} else {
		l.log.Warn("unknown compare mode, using exact", "problem", id, "mode", mode)
		mode = compare.Exact
	}
	if m.Solutions == nil {
		return m, nil, mode
	}
	if problems := Validate(m.Solutions); len(problems) > 0 {
		for _, p := range problems {
			l.log.Warn("invalid SOLUTIONS metadata", "problem", id, "issue", p)
		}
		return m, nil, compare.Exact
	}
	return m, m.Solutions, mode
}

// LoadGenerator returns the generator registered for id, or nil.
func (l *Loader) LoadGenerator(id string) Generator {
	g, ok := l.reg.Generator(id)
	if !ok {
		return nil
	}
	return g
}

func (l *Loader) module(id string) *Module {
	if m, err := l.reg.Lookup(id); err == nil {
		return m
	}
	if l.solutionsDir == "" {
		return nil
	}
	res, _ := l.descriptors.LoadOrCompute(id, func() loaded {
		d, err := readDescriptor(DescriptorPath(l.solutionsDir, id))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				l.log.Error("failed to load solution", "problem", id, "error", err)
			}
			return loaded{err: err}
		}
		return loaded{module: d.module(id, l.solutionsDir)}
	})
	return res.module
}

// Validate reports every problem with the variant records: a missing
// "default" key and, per record, the missing required fields.
func Validate(md Metadata) []string {
	var problems []string
	if _, ok := md[DefaultMethod]; !ok {
		problems = append(problems, fmt.Sprintf("missing required key %q", DefaultMethod))
	}
	for _, key := range md.Keys() {
		sol := md[key]
		var missing []string
		if sol.Class == "" {
			missing = append(missing, "class")
		}
		if sol.Method == "" {
			missing = append(missing, "method")
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%q missing fields: %s", key, strings.Join(missing, ", ")))
		}
	}
	return problems
}
