// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "fmt"

// Stats returns a human-readable summary of the Manager's node arena and
// garbage collection history, printed by cmd/solgen under -v. Adapted from
// dalzilio-rudd's (*buddy).Stats/gcstats in stdio.go.
func (m *Manager) Stats() string {
	free := len(m.free)
	total := len(m.nodes)
	var freePct, usedPct float64
	if total > 0 {
		freePct = (float64(free) / float64(total)) * 100
		usedPct = 100 - freePct
	}
	res := fmt.Sprintf("Varnum:     %d\n", m.varCount)
	res += fmt.Sprintf("Allocated:  %d\n", total)
	res += fmt.Sprintf("Produced:   %d\n", m.produced)
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", free, freePct)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", total-free, usedPct)
	res += fmt.Sprintf("# of GC:    %d\n", m.gcCount)
	return res
}
