package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadedCase is a case together with its suite and file.
type LoadedCase struct {
	File  string
	Suite *Suite
	Case  Case
}

// LoadDir loads every .yaml file under dir in lexical order.
func LoadDir(dir string) ([]LoadedCase, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (filepath.Ext(path) == ".yaml" || filepath.Ext(path) == ".yml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conformance: walk %s: %w", dir, err)
	}
	sort.Strings(files)

	var loaded []LoadedCase
	for _, path := range files {
		cases, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		for i := range cases {
			cases[i].File = rel
		}
		loaded = append(loaded, cases...)
	}
	return loaded, nil
}

// LoadFile parses one suite.
func LoadFile(path string) ([]LoadedCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: %w", err)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}
	out := make([]LoadedCase, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		out = append(out, LoadedCase{File: path, Suite: &suite, Case: c})
	}
	return out, nil
}
