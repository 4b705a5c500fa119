package bootstrap

import (
	"sort"

	"github.com/vk/fabricgo/internal/registry"
)

// sortRecords orders a batch of realized extensions. If the registry
// carries a custom dependency comparator it wins; otherwise extensions are
// compared by their explicit order key, with keyless extensions sorting
// after every keyed one. The sort is stable, so ties keep their discovery
// order.
func sortRecords(recs []record, reg *registry.Registry) {
	if len(recs) < 2 {
		return
	}
	if cmp := reg.DependencyComparator(); cmp != nil {
		sort.SliceStable(recs, func(i, j int) bool {
			return cmp(recs[i].instance, recs[j].instance) < 0
		})
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return lessByOrderKey(recs[i], recs[j])
	})
}

func lessByOrderKey(a, b record) bool {
	aKeyed := a.tier != tierUnordered
	bKeyed := b.tier != tierUnordered
	switch {
	case aKeyed && bKeyed:
		return a.key < b.key
	case aKeyed:
		return true
	default:
		return false
	}
}
