// Package discovery finds example projects on the filesystem.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cdkparity/cdkparity/internal/domain"
)

// FSDiscoverer implements domain.ExampleDiscoverer by listing the immediate
// children of each variant directory.
type FSDiscoverer struct{}

func New() *FSDiscoverer {
	return &FSDiscoverer{}
}

// Discover returns the qualifying examples for both variants in sorted
// order. A subdirectory qualifies iff it contains the variant's entry-point
// file. The name filter, when non-empty, applies identically to both
// variants so cross-variant comparison stays meaningful. An empty result for
// one variant is not an error; no results across both variants is
// domain.ErrNoExamples.
func (d *FSDiscoverer) Discover(root string, cfg domain.Config, filter []string) ([]domain.ExampleRef, []domain.ExampleRef, error) {
	allowed := make(map[string]bool, len(filter))
	for _, name := range filter {
		allowed[name] = true
	}

	var ts, py []domain.ExampleRef
	for _, variant := range domain.Variants() {
		vc := cfg.Variants[variant]
		refs, err := discoverVariant(root, variant, vc, allowed)
		if err != nil {
			return nil, nil, err
		}
		if variant == domain.VariantTypeScript {
			ts = refs
		} else {
			py = refs
		}
	}

	if len(ts) == 0 && len(py) == 0 {
		return nil, nil, domain.ErrNoExamples
	}
	return ts, py, nil
}

func discoverVariant(root string, variant domain.Variant, vc domain.VariantConfig, allowed map[string]bool) ([]domain.ExampleRef, error) {
	variantDir := filepath.Join(root, vc.Dir)
	entries, err := os.ReadDir(variantDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var refs []domain.ExampleRef
	for _, e := range entries {
		if !e.IsDir() {
			// ReadDir does not follow symlinks; a linked example directory
			// still qualifies.
			info, err := os.Stat(filepath.Join(variantDir, e.Name()))
			if err != nil || !info.IsDir() {
				continue
			}
		}
		if len(allowed) > 0 && !allowed[e.Name()] {
			continue
		}
		entryPoint := filepath.Join(variantDir, e.Name(), vc.EntryPoint)
		if info, err := os.Stat(entryPoint); err != nil || info.IsDir() {
			continue
		}
		refs = append(refs, domain.ExampleRef{
			Variant: variant,
			RelPath: filepath.Join(vc.Dir, e.Name()),
			Name:    e.Name(),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].RelPath < refs[j].RelPath })
	return refs, nil
}
