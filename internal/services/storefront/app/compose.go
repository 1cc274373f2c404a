// Package app composes storefront modules onto the root mux.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/storefront/internal/services/storefront/module"
)

// Config captures the composition inputs for the storefront root handler.
type Config struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Composer wires module mounts onto a root mux behind the same-origin guard.
type Composer struct{}

// Compose builds a root HTTP handler from modules.
func (Composer) Compose(cfg Config) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	guard := cfg.Dependencies.SchemePolicy.RequireSameOrigin

	for _, feature := range cfg.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefix, err := resolveMount(feature, cfg.Dependencies)
		if err != nil {
			return nil, err
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, guard(mount.Handler))
	}
	return root, nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

// normalizePrefix adds the leading slash. A trailing slash is kept as given
// so modules choose between an exact path and a subtree.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
