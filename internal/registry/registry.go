package registry

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

type Registry struct {
	modules    *xsync.MapOf[string, *Module]
	generators *xsync.MapOf[string, Generator]
}

func New() *Registry {
	return &Registry{
		modules:    xsync.NewMapOf[string, *Module](),
		generators: xsync.NewMapOf[string, Generator](),
	}
}

// Default is populated by init functions of compiled solution packages.
var Default = New()

func Register(m *Module) { Default.Register(m) }

func RegisterGenerator(id string, g Generator) { Default.RegisterGenerator(id, g) }

func (r *Registry) Register(m *Module) {
	if m == nil || m.ID == "" {
		panic("registry: module without id")
	}
	if _, loaded := r.modules.LoadOrStore(m.ID, m); loaded {
		panic(fmt.Sprintf("registry: duplicate module %q", m.ID))
	}
}

func (r *Registry) RegisterGenerator(id string, g Generator) {
	if _, loaded := r.generators.LoadOrStore(id, g); loaded {
		panic(fmt.Sprintf("registry: duplicate generator %q", id))
	}
}

func (r *Registry) Lookup(id string) (*Module, error) {
	m, ok := r.modules.Load(id)
	if !ok {
		return nil, fmt.Errorf("problem %q: %w", id, ErrNotFound)
	}
	return m, nil
}

func (r *Registry) Generator(id string) (Generator, bool) {
	return r.generators.Load(id)
}

// IDs lists registered problem ids in sorted order.
func (r *Registry) IDs() []string {
	var ids []string
	r.modules.Range(func(id string, _ *Module) bool {
		ids = append(ids, id)
		return true
	})
	sort.Strings(ids)
	return ids
}
