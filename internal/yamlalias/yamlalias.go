// Package yamlalias rejects YAML node trees whose aliases loop back into their
// own anchor or expand far beyond the size of the document.
package yamlalias

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrCycle is returned for an alias that refers to a node containing it.
	ErrCycle = errors.New("yaml: anchor value contains itself")
	// ErrExcessive is returned when alias expansion dominates the document.
	ErrExcessive = errors.New("yaml: document contains excessive aliasing")
)

const saturate = int64(1) << 62

// Check walks n once. Shared anchors are sized once, so the walk stays linear
// in the number of nodes however large the expansion would be.
func Check(n *yaml.Node) error {
	w := walker{state: map[*yaml.Node]uint8{}, total: map[*yaml.Node]int64{}, aliased: map[*yaml.Node]int64{}}
	total, aliased, err := w.size(n)
	if err != nil {
		return err
	}
	if aliased > 100 && total > 1000 && float64(aliased)/float64(total) > allowedRatio(total) {
		return fmt.Errorf("%w: %d of %d nodes come from aliases", ErrExcessive, aliased, total)
	}
	return nil
}

const (
	visiting uint8 = iota + 1
	done
)

type walker struct {
	state   map[*yaml.Node]uint8
	total   map[*yaml.Node]int64
	aliased map[*yaml.Node]int64
}

// size returns the number of nodes n expands to and how many of them are
// reached through an alias.
func (w *walker) size(n *yaml.Node) (int64, int64, error) {
	if n == nil {
		return 0, 0, nil
	}
	switch w.state[n] {
	case visiting:
		return 0, 0, fmt.Errorf("%w: anchor '%s' at line %d", ErrCycle, n.Anchor, n.Line)
	case done:
		return w.total[n], w.aliased[n], nil
	}
	w.state[n] = visiting

	var total, aliased int64
	if n.Kind == yaml.AliasNode {
		t, _, err := w.size(n.Alias)
		if err != nil {
			return 0, 0, err
		}
		total, aliased = add(t, 1), add(t, 1)
	} else {
		total = 1
		for _, c := range n.Content {
			t, a, err := w.size(c)
			if err != nil {
				return 0, 0, err
			}
			total, aliased = add(total, t), add(aliased, a)
		}
	}

	w.state[n] = done
	w.total[n], w.aliased[n] = total, aliased
	return total, aliased, nil
}

func add(a, b int64) int64 {
	if a > saturate-b {
		return saturate
	}
	return a + b
}

// allowedRatio mirrors the limit the yaml.v3 decoder applies: small documents
// may be almost entirely aliases, large ones only a tenth.
func allowedRatio(total int64) float64 {
	const (
		low  = 400_000
		high = 4_000_000
	)
	switch {
	case total <= low:
		return 0.99
	case total >= high:
		return 0.10
	}
	return 0.99 - 0.89*(float64(total-low)/(high-low))
}
