package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
)

// branchyTree has a main line 1-2-3, a variation 4-5 from 1 and 6 from the root.
func branchyTree() *Tree {
	t := NewTree()
	m1 := t.CreateChild(t.Root(), game.Stone{Color: game.Black, X: 3, Y: 3})
	m2 := t.CreateChild(m1, game.Stone{Color: game.White, X: 5, Y: 5})
	t.CreateChild(m2, game.Pass{Color: game.Black})
	m4 := t.CreateChild(m1, game.Stone{Color: game.White, X: 2, Y: 6})
	t.CreateChild(m4, game.Resign{Color: game.Black})
	t.CreateChild(t.Root(), game.Stone{Color: game.Black, X: 0, Y: 0})
	return t
}

func TestNumbersAreGlobal(t *testing.T) {
	tree := branchyTree()

	seen := map[int]bool{}
	prev := -1
	for _, node := range tree.Nodes() {
		assert.False(t, seen[node.N])
		assert.Greater(t, node.N, prev)
		seen[node.N] = true
		prev = node.N
		if node.Parent != nil {
			assert.Less(t, node.Parent.N, node.N)
			assert.Equal(t, node.Parent.Depth+1, node.Depth)
		}
	}
	assert.Equal(t, 6, tree.MaxN())
	assert.Equal(t, 7, tree.Len())

	m4, err := tree.FindNode(4)
	require.NoError(t, err)
	assert.Equal(t, 1, m4.ParentN())
	assert.Equal(t, 2, m4.Depth)
}

func TestSerializeRoundTrip(t *testing.T) {
	tree := branchyTree()

	data := tree.Serialize()
	assert.Equal(t, data, tree.Serialize())

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.True(t, tree.Equal(restored))
	assert.Equal(t, data, restored.Serialize())

	empty, err := Deserialize(NewTree().Serialize())
	require.NoError(t, err)
	assert.True(t, NewTree().Equal(empty))
}

func TestSerializeFormat(t *testing.T) {
	tree := NewTree()
	m1 := tree.CreateChild(tree.Root(), game.Stone{Color: game.Black, X: 2, Y: 3})
	tree.CreateChild(m1, game.Pass{Color: game.White})

	assert.JSONEq(t,
		`[{"n":0},{"n":1,"parentN":0,"kind":"stone","color":"black","x":2,"y":3},{"n":2,"parentN":1,"kind":"pass","color":"white"}]`,
		tree.Serialize())
}

func TestDeserializeMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":           ``,
		"not json":        `{{`,
		"no root":         `[]`,
		"root with kind":  `[{"n":0,"kind":"pass","color":"black"}]`,
		"root with color": `[{"n":0,"color":"black","x":1}]`,
		"root with y":     `[{"n":0,"y":4}]`,
		"unknown parent":  `[{"n":0},{"n":1,"parentN":7,"kind":"pass","color":"black"}]`,
		"out of order":    `[{"n":0},{"n":2,"parentN":0,"kind":"pass","color":"black"},{"n":1,"parentN":0,"kind":"pass","color":"white"}]`,
		"duplicate":       `[{"n":0},{"n":1,"parentN":0,"kind":"pass","color":"black"},{"n":1,"parentN":0,"kind":"pass","color":"white"}]`,
		"unknown kind":    `[{"n":0},{"n":1,"parentN":0,"kind":"jump","color":"black"}]`,
		"no color":        `[{"n":0},{"n":1,"parentN":0,"kind":"pass"}]`,
		"stone no x":      `[{"n":0},{"n":1,"parentN":0,"kind":"stone","color":"black","y":1}]`,
		"unknown field":   `[{"n":0,"board":"xx"}]`,
		"trailing data":   `[{"n":0}] [{"n":0}]`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			tree, err := Deserialize(data)
			require.ErrorIs(t, err, errs.ErrMalformedTree)
			assert.Nil(t, tree)
		})
	}
}

func TestPathToRoot(t *testing.T) {
	tree := branchyTree()
	m5, err := tree.FindNode(5)
	require.NoError(t, err)

	assert.Equal(t, []game.Move{
		game.Stone{Color: game.Black, X: 3, Y: 3},
		game.Stone{Color: game.White, X: 2, Y: 6},
		game.Resign{Color: game.Black},
	}, tree.PathToRoot(m5))
	assert.Empty(t, tree.PathToRoot(tree.Root()))
}

func TestPrune(t *testing.T) {
	tree := branchyTree()
	m1, _ := tree.FindNode(1)

	require.ErrorIs(t, tree.Prune(tree.Root()), errs.ErrRootMove)

	m4, _ := tree.FindNode(4)
	require.NoError(t, tree.Prune(m4))
	_, err := tree.FindNode(5)
	require.ErrorIs(t, err, errs.ErrMoveNotFound)
	assert.Len(t, m1.Children, 1)
	assert.Equal(t, 6, tree.MaxN())

	m6, _ := tree.FindNode(6)
	require.NoError(t, tree.Prune(m6))
	assert.Equal(t, 3, tree.MaxN())

	next := tree.CreateChild(tree.Root(), game.Pass{Color: game.Black})
	assert.Equal(t, 4, next.N)

	restored, err := Deserialize(tree.Serialize())
	require.NoError(t, err)
	assert.True(t, tree.Equal(restored))
}
