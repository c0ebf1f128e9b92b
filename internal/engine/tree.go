package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gogame/internal/domain/game"
	errs "gogame/internal/errors"
)

// Node is one move of the tree. The root has N == 0, no parent and no move.
type Node struct {
	N        int
	Parent   *Node
	Children []*Node
	Move     game.Move
	Depth    int
}

// ParentN is -1 for the root.
func (n *Node) ParentN() int {
	if n.Parent == nil {
		return -1
	}
	return n.Parent.N
}

// Tree is the branching history of one game or review. Move numbers are
// global to the tree: a new node always gets MaxN()+1, whatever its branch.
type Tree struct {
	root *Node
	byN  map[int]*Node
	maxN int
}

func NewTree() *Tree {
	root := &Node{}
	return &Tree{root: root, byN: map[int]*Node{0: root}}
}

func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) MaxN() int {
	return t.maxN
}

func (t *Tree) Len() int {
	return len(t.byN)
}

func (t *Tree) CreateChild(parent *Node, move game.Move) *Node {
	t.maxN++
	child := &Node{
		N:      t.maxN,
		Parent: parent,
		Move:   move,
		Depth:  parent.Depth + 1,
	}
	parent.Children = append(parent.Children, child)
	t.byN[child.N] = child
	return child
}

func (t *Tree) FindNode(n int) (*Node, error) {
	node, ok := t.byN[n]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrMoveNotFound, n)
	}
	return node, nil
}

// PathToRoot returns the moves leading from the root to node, root excluded.
func (t *Tree) PathToRoot(node *Node) []game.Move {
	moves := make([]game.Move, node.Depth)
	for cur := node; cur.Parent != nil; cur = cur.Parent {
		moves[cur.Depth-1] = cur.Move
	}
	return moves
}

// Prune detaches node and its descendants from the tree.
func (t *Tree) Prune(node *Node) error {
	if node.Parent == nil {
		return errs.ErrRootMove
	}
	if _, ok := t.byN[node.N]; !ok {
		return fmt.Errorf("%w: %d", errs.ErrMoveNotFound, node.N)
	}

	parent := node.Parent
	parent.Children = slices.DeleteFunc(parent.Children, func(c *Node) bool { return c == node })
	node.Parent = nil

	stack := []*Node{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		delete(t.byN, cur.N)
		stack = append(stack, cur.Children...)
	}

	t.maxN = 0
	for n := range t.byN {
		t.maxN = max(t.maxN, n)
	}
	return nil
}

// Nodes returns every node in creation order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.byN))
	for _, node := range t.byN {
		nodes = append(nodes, node)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return a.N - b.N })
	return nodes
}

// Equal reports whether both trees hold the same nodes with the same parents,
// moves and child order.
func (t *Tree) Equal(o *Tree) bool {
	if t.maxN != o.maxN || len(t.byN) != len(o.byN) {
		return false
	}
	for n, node := range t.byN {
		other, ok := o.byN[n]
		if !ok || node.ParentN() != other.ParentN() || node.Depth != other.Depth {
			return false
		}
		if node.Move != other.Move || len(node.Children) != len(other.Children) {
			return false
		}
		for i := range node.Children {
			if node.Children[i].N != other.Children[i].N {
				return false
			}
		}
	}
	return true
}

type nodeRecord struct {
	N       int  `json:"n"`
	ParentN *int `json:"parentN,omitempty"`
	game.MoveData
}

// Serialize encodes the tree as a JSON array of nodes in creation order.
func (t *Tree) Serialize() string {
	nodes := t.Nodes()
	records := make([]nodeRecord, 0, len(nodes))
	for _, node := range nodes {
		rec := nodeRecord{N: node.N}
		if node.Parent != nil {
			parentN := node.Parent.N
			rec.ParentN = &parentN
			rec.MoveData = game.EncodeMove(node.Move)
		}
		records = append(records, rec)
	}

	data, err := json.Marshal(records)
	if err != nil {
		panic(fmt.Sprintf("move tree encoding: %v", err))
	}
	return string(data)
}

// Deserialize rebuilds a tree from Serialize output. Any inconsistency is
// reported as ErrMalformedTree; no partial tree is ever returned.
func Deserialize(data string) (*Tree, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(data)))
	decoder.DisallowUnknownFields()

	var records []nodeRecord
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedTree, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", errs.ErrMalformedTree)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no root", errs.ErrMalformedTree)
	}

	root := records[0]
	if root.N != 0 || root.ParentN != nil || root.MoveData != (game.MoveData{}) {
		return nil, fmt.Errorf("%w: bad root record", errs.ErrMalformedTree)
	}

	t := NewTree()
	for _, rec := range records[1:] {
		if rec.N <= t.maxN {
			return nil, fmt.Errorf("%w: move %d out of order", errs.ErrMalformedTree, rec.N)
		}
		if rec.ParentN == nil {
			return nil, fmt.Errorf("%w: move %d has no parent", errs.ErrMalformedTree, rec.N)
		}
		parent, ok := t.byN[*rec.ParentN]
		if !ok {
			return nil, fmt.Errorf("%w: move %d has unknown parent %d", errs.ErrMalformedTree, rec.N, *rec.ParentN)
		}
		move, err := game.DecodeMove(rec.MoveData, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: move %d: %v", errs.ErrMalformedTree, rec.N, err)
		}

		t.maxN = rec.N - 1
		t.CreateChild(parent, move)
	}

	return t, nil
}
