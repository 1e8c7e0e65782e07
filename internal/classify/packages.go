package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// FindPackage returns the package name for rel. Entries ending in "/*" name
// the first path component below the prefix; other entries name their last
// component. The first matching entry wins; "" means no package.
func FindPackage(rel string, packages []string) string {
	rel = filepath.ToSlash(rel)
	for _, pkg := range packages {
		pkg = strings.TrimSuffix(filepath.ToSlash(pkg), "/")
		if pkg == "" {
			continue
		}
		wildcard := strings.HasSuffix(pkg, "/*")
		prefix := strings.TrimSuffix(pkg, "/*")
		if rel != prefix && !strings.HasPrefix(rel, prefix+"/") {
			continue
		}
		if !wildcard {
			return path.Base(pkg)
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(rel, prefix), "/")
		first, _, _ := strings.Cut(rest, "/")
		if first != "" {
			return first
		}
	}
	return ""
}

type cargoManifest struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

type packageJSON struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

// DiscoverPackages collects workspace package entries from Cargo.toml, go.work,
// nested go.mod files and package.json. files is the listed repo-relative set.
func DiscoverPackages(ctx context.Context, root string, files []string) ([]string, error) {
	fs := afs.New()
	var out []string
	var errs []error

	read := func(rel string) []byte {
		data, err := fs.DownloadWithURL(ctx, filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil
		}
		return data
	}

	if data := read("Cargo.toml"); data != nil {
		var m cargoManifest
		if err := toml.Unmarshal(data, &m); err != nil {
			errs = append(errs, fmt.Errorf("Cargo.toml: %w", err))
		} else {
			out = append(out, m.Workspace.Members...)
		}
	}

	if data := read("go.work"); data != nil {
		wf, err := modfile.ParseWork("go.work", data, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("go.work: %w", err))
		} else {
			for _, u := range wf.Use {
				out = append(out, cleanRel(u.Path))
			}
		}
	}

	for _, f := range files {
		if !strings.HasSuffix(f, "/go.mod") {
			continue
		}
		data := read(f)
		if data == nil {
			continue
		}
		if _, err := modfile.ParseLax(f, data, nil); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		out = append(out, path.Dir(f))
	}

	if data := read("package.json"); data != nil {
		ws, err := parseWorkspaces(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("package.json: %w", err))
		} else {
			out = append(out, ws...)
		}
	}

	return dedupe(out), errors.Join(errs...)
}

// workspaces は配列形式と {"packages": [...]} 形式の両方を受け付けます。
func parseWorkspaces(data []byte) ([]string, error) {
	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, err
	}
	if len(pj.Workspaces) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(pj.Workspaces, &list); err == nil {
		return list, nil
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(pj.Workspaces, &obj); err != nil {
		return nil, fmt.Errorf("workspaces: %w", err)
	}
	return obj.Packages, nil
}

func cleanRel(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	return strings.TrimPrefix(p, "./")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = cleanRel(p)
		if p == "" || p == "." || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
