package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "edura/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// walkImports calls fn for every edura module import of every non-test Go
// file under root.
func walkImports(t *testing.T, root string, fn func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			fn(filepath.ToSlash(path), strings.Trim(imp.Path.Value, `"`))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := locate(file)
		if module == "" || layer == "" || !strings.Contains(importPath, modulesPrefix) {
			return
		}
		if violates(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", file, layer, importPath)
		}
	})
}

// TestUIImportsOnlyDTOs keeps the terminal UI behind the inbound adapters: it
// may name module DTOs, never their internals.
func TestUIImportsOnlyDTOs(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "ui"), func(file, importPath string) {
		switch {
		case strings.Contains(importPath, modulesPrefix) && !within(importPath, "dto"):
			t.Errorf("ui file %s imports module internals: %s", file, importPath)
		case strings.HasSuffix(importPath, "edura/internal/bootstrap"):
			t.Errorf("ui file %s imports bootstrap", file)
		}
	})
}

// locate returns the module and layer a path under internal/modules belongs to.
func locate(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "modules" {
			module = parts[i+1]
			break
		}
	}
	for _, l := range layers {
		if strings.Contains(path, "/"+l+"/") {
			return module, l
		}
	}
	return module, ""
}

// within reports whether importPath is the given layer package or below it.
func within(importPath, layer string) bool {
	return strings.Contains(importPath, "/"+layer+"/") || strings.HasSuffix(importPath, "/"+layer)
}

func violates(module, layer, importPath string) bool {
	if !strings.HasPrefix(strings.TrimPrefix(importPath, modulesPrefix), module+"/") {
		switch {
		case within(importPath, "service"), within(importPath, "adapter"), within(importPath, "usecase"):
			return true
		case within(importPath, "port/in"), within(importPath, "dto"):
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !within(importPath, "port/in") && !within(importPath, "dto")
	case "usecase":
		return within(importPath, "adapter")
	case "service":
		return within(importPath, "adapter") || within(importPath, "usecase")
	case "domain":
		return within(importPath, "adapter") || within(importPath, "usecase") || within(importPath, "service")
	}
	return false
}

func TestViolatesRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		want               bool
	}{
		{"routing", "usecase", modulesPrefix + "navigation/port/in", false},
		{"routing", "usecase", modulesPrefix + "navigation/service", true},
		{"routing", "domain", modulesPrefix + "session/domain", false},
		{"dashboard", "adapter/out", modulesPrefix + "session/port/in", false},
		{"dashboard", "adapter/in", modulesPrefix + "dashboard/service", true},
		{"session", "service", modulesPrefix + "session/adapter/out", true},
		{"session", "usecase", modulesPrefix + "session/service", false},
	}
	for _, tc := range cases {
		if got := violates(tc.module, tc.layer, tc.imp); got != tc.want {
			t.Errorf("violates(%s, %s, %s) = %v, want %v", tc.module, tc.layer, tc.imp, got, tc.want)
		}
	}
}
