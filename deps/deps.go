// Package deps discovers local source dependencies of an Elm entry
// file by following its import statements. This is a read-only
// traversal, separate from invocation: nothing here ever runs the
// compiler or modifies the tree.
package deps

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var importRe = regexp.MustCompile(`^import\s+([A-Z][A-Za-z0-9_.]*)`)

// FindAllDependencies returns every local source file transitively
// imported by entry, in first-encounter order, excluding entry itself.
// Module names are resolved against the source roots (defaulting to
// the entry file's directory); names that resolve nowhere are package
// or core modules and are skipped. Cycles terminate.
func FindAllDependencies(entry string, roots ...string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{filepath.Dir(entry)}
	}

	seen := map[string]bool{filepath.Clean(entry): true}
	var out []string

	var visit func(path string) error
	visit = func(path string) error {
		modules, err := scanImports(path)
		if err != nil {
			return err
		}
		for _, module := range modules {
			dep, ok := resolve(module, roots)
			if !ok || seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(entry); err != nil {
		return nil, err
	}
	return out, nil
}

// scanImports collects the module names imported by one source file.
func scanImports(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	defer f.Close()

	var modules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := importRe.FindStringSubmatch(scanner.Text()); m != nil {
			modules = append(modules, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source %s: %w", path, err)
	}
	return modules, nil
}

// resolve maps a dotted module name to a file under one of the roots.
func resolve(module string, roots []string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(module, ".", "/")) + ".elm"
	for _, root := range roots {
		candidate := filepath.Join(root, rel)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return filepath.Clean(candidate), true
		}
	}
	return "", false
}
