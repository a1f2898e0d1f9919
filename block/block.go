package block

import (
	"sort"
	"strconv"
	"strings"
)

// Block is a read-only view of one node of a block program.
type Block interface {
	Kind() string
	Field(name string) string
	Input(name string) Block // nil when the slot is empty
	ItemCount() int          // number of ADD<n> slots on variable-arity blocks
	Next() Block             // following statement, nil at the end of a chain
}

// Node is the in-memory Block used by the loader and by tests.
type Node struct {
	Type   string
	Fields map[string]string
	Inputs map[string]*Node
	Items  int
	After  *Node
}

// Slotted is implemented by blocks that can list their filled slots.
// Walk needs it to descend; blocks without it are visited as leaves.
type Slotted interface {
	Slots() []string
}

// Program is the ordered list of top-level blocks.
type Program []Block

func (n *Node) Kind() string {
	return n.Type
}

func (n *Node) Field(name string) string {
	return n.Fields[name]
}

func (n *Node) Input(name string) Block {
	if c := n.Inputs[name]; c != nil {
		return c
	}
	return nil
}

func (n *Node) ItemCount() int {
	return n.Items
}

func (n *Node) Next() Block {
	if n.After == nil {
		return nil
	}
	return n.After
}

// Slots returns the names of the filled input slots in sorted order.
func (n *Node) Slots() []string {
	slots := make([]string, 0, len(n.Inputs))
	for k, c := range n.Inputs {
		if c != nil {
			slots = append(slots, k)
		}
	}
	sort.Strings(slots)
	return slots
}

// New creates a node of the given kind with no fields or inputs.
func New(kind string) *Node {
	return &Node{Type: kind, Fields: map[string]string{}, Inputs: map[string]*Node{}}
}

// With sets a field and returns the node for chaining.
func (n *Node) With(field, value string) *Node {
	n.Fields[field] = value
	return n
}

// Plug attaches a child to a slot and returns the node for chaining.
func (n *Node) Plug(slot string, child *Node) *Node {
	n.Inputs[slot] = child
	return n
}

// Add appends a child to the next ADD<n> slot.
func (n *Node) Add(child *Node) *Node {
	n.Inputs["ADD"+strconv.Itoa(n.Items)] = child
	n.Items++
	return n
}

// Then links a statement after this one and returns the new tail.
func (n *Node) Then(next *Node) *Node {
	n.After = next
	return next
}

// String renders the node as a compact s-expression, mostly for test output.
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString("(" + n.Type)

	fields := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		sb.WriteString(" " + k + "=" + strconv.Quote(n.Fields[k]))
	}

	for _, k := range n.Slots() {
		sb.WriteString(" " + k + ":" + n.Inputs[k].String())
	}
	sb.WriteString(")")
	if n.After != nil {
		sb.WriteString(" " + n.After.String())
	}
	return sb.String()
}

// Walk visits every block reachable from the program: each block, then its
// inputs in slot order, then the next statement. Returning false from fn prunes that subtree.
func Walk(p Program, fn func(Block) bool) {
	for _, b := range p {
		walk(b, fn)
	}
}

func walk(b Block, fn func(Block) bool) {
	for ; b != nil; b = b.Next() {
		if !fn(b) {
			continue
		}
		s, ok := b.(Slotted)
		if !ok {
			continue
		}
		for _, k := range s.Slots() {
			if c := b.Input(k); c != nil {
				walk(c, fn)
			}
		}
	}
}
