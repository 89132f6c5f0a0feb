// Package hashtree folds an ordered list of leaves into a single root with
// a recipe, balancing odd levels deterministically by level parity.
package hashtree

import (
	"fmt"
	"math/bits"
	"time"

	"golang.org/x/exp/slog"

	"github.com/qrypu-project/qrypu/common"
	"github.com/qrypu-project/qrypu/crypto"
)

// Tree hashes its leaves into a root under a recipe. The tree owns its node
// buffers and replaces them during ComputeRoot; the caller's leaf slices
// are never mutated. A Tree is not safe for concurrent use.
type Tree struct {
	// Nodes is the ordered leaf list. It may be set directly or grown
	// with Add.
	Nodes [][]byte

	// Recipe hashes nodes and synthetic siblings.
	Recipe *crypto.Recipe

	root    []byte
	elapsed time.Duration
	log     *slog.Logger
}

// New returns an empty tree over the given recipe.
func New(recipe *crypto.Recipe) *Tree {
	return &Tree{Recipe: recipe, log: slog.Default()}
}

// Add appends one leaf.
func (t *Tree) Add(leaf []byte) {
	t.Nodes = append(t.Nodes, common.CopyBytes(leaf))
}

// Root returns the root of the last ComputeRoot call, nil before the first.
func (t *Tree) Root() []byte { return t.root }

// LastElapsed reports the wall clock time of the last root computation.
func (t *Tree) LastElapsed() time.Duration { return t.elapsed }

// ComputeRoot hashes the current leaves into the root and returns it.
//
// Every pass hashes each node under the recipe, balances an odd node count
// by inserting a hashed synthetic sibling (prepended when the level is
// even, appended when odd), then concatenates adjacent pairs. The single
// surviving node is hashed once more to form the root. An empty tree has no
// root and returns nil.
func (t *Tree) ComputeRoot() ([]byte, error) {
	if t.Recipe == nil {
		return nil, fmt.Errorf("%w: hash tree has no recipe", crypto.ErrInvalidConfig)
	}
	n := len(t.Nodes)
	if n == 0 {
		t.root = nil
		return nil, nil
	}
	start := time.Now()

	nodes := make([][]byte, n)
	copy(nodes, t.Nodes)

	// ceil(log2(n))
	level := bits.Len(uint(n - 1))

	for len(nodes) > 1 {
		for i := range nodes {
			h, err := t.Recipe.ComputeHash(nodes[i])
			if err != nil {
				return nil, err
			}
			nodes[i] = h
		}
		if len(nodes)%2 == 1 {
			if level%2 == 0 {
				h, err := t.Recipe.ComputeHash(nodes[len(nodes)-1])
				if err != nil {
					return nil, err
				}
				nodes = append([][]byte{h}, nodes...)
			} else {
				h, err := t.Recipe.ComputeHash(nodes[0])
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, h)
			}
		}
		paired := make([][]byte, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			paired = append(paired, common.ConcatBytes(nodes[i], nodes[i+1]))
		}
		nodes = paired
		level--
	}

	root, err := t.Recipe.ComputeHash(nodes[0])
	if err != nil {
		return nil, err
	}
	t.root = root
	t.elapsed = time.Since(start)
	logger := t.log
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("computed hash tree root", "leaves", n, "elapsed", t.elapsed)
	return t.root, nil
}
