package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/neetrunner/internal/compare"
)

// Descriptor is the on-disk form of an external solution:
//
//	compare_mode = "sorted"
//	file = "three_sum.py"
//	interpreter = "python3"
//
//	[solutions.default]
//	class = "Solution"
//	method = "threeSum"
//	complexity = "O(n^2) time, O(1) space"
type Descriptor struct {
	CompareMode string              `toml:"compare_mode"`
	File        string              `toml:"file"`
	Interpreter string              `toml:"interpreter"`
	Solutions   map[string]Solution `toml:"solutions"`
}

func DescriptorPath(solutionsDir, id string) string {
	return filepath.Join(solutionsDir, id+".toml")
}

func readDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if d.File == "" {
		return nil, fmt.Errorf("%s: missing required field 'file'", path)
	}
	return &d, nil
}

// module builds the Module for a descriptor found in dir.
func (d *Descriptor) module(id, dir string) *Module {
	file := d.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	cmd := []string{file}
	if d.Interpreter != "" {
		cmd = []string{d.Interpreter, file}
	}
	mode, _ := compare.ParseMode(d.CompareMode)
	m := &Module{
		ID:          id,
		CompareMode: mode,
		File:        file,
		Command:     cmd,
	}
	if d.Solutions != nil {
		m.Solutions = Metadata(d.Solutions)
	}
	return m
}
