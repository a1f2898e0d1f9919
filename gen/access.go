package gen

import "fmt"

// Mode is the operation requested at a position.
type Mode int

const (
	ModeGet Mode = iota
	ModeGetRemove
	ModeRemove
	ModeSet
	ModeInsert
	ModeSlice // range extraction, only valid through PlanRange
)

var modeNames = [...]string{"GET", "GET_AND_REMOVE", "REMOVE", "SET", "INSERT", "SLICE"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode reads a MODE field tag. The editor's GET_REMOVE spelling is
// accepted as well.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "GET":
		return ModeGet, true
	case "GET_REMOVE", "GET_AND_REMOVE":
		return ModeGetRemove, true
	case "REMOVE":
		return ModeRemove, true
	case "SET":
		return ModeSet, true
	case "INSERT":
		return ModeInsert, true
	}
	return 0, false
}

// Anchor is the reference point of a positional access.
type Anchor int

const (
	AnchorFirst Anchor = iota
	AnchorLast
	AnchorFromStart
	AnchorFromEnd
	AnchorRandom
)

var anchorNames = [...]string{"FIRST", "LAST", "FROM_START", "FROM_END", "RANDOM"}

func (a Anchor) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// ParseAnchor reads a WHERE field tag.
func ParseAnchor(s string) (Anchor, bool) {
	for i, name := range anchorNames {
		if s == name {
			return Anchor(i), true
		}
	}
	return 0, false
}

// Position is an anchor resolved to a 0-based offset, counted forward from
// the first element or backward from the last one.
type Position struct {
	Anchor  Anchor
	FromEnd bool
	Offset  Result
}

// Literal returns the offset when it is an integer literal.
func (p Position) Literal() (int64, bool) {
	return Integer(p.Offset.Code)
}

// Index returns the 0-based index from the start, given an expression for
// the container's length. Offsets from the end become length - 1 - k.
func (p Position) Index(t Table, length Result) Result {
	if !p.FromEnd {
		return p.Offset
	}
	return t.Back(length, p.Offset)
}

// Access describes one positional read or write. All expressions are raw
// results; the container syntax applies the levels its templates need.
type Access struct {
	Mode      Mode
	Anchor    Anchor
	Container Result
	At        Result // as written: 1-based for FROM_START, 0-based for FROM_END
	Value     Result // SET and INSERT only
}

// Range describes an inclusive range extraction.
type Range struct {
	Container Result
	From      Anchor
	FromAt    Result
	To        Anchor
	ToAt      Result
}

// Reader renders element reads for one container type.
type Reader interface {
	Item(seq Result, at Position) Result
}

// Mutator renders in-place changes. Take removes and yields the element as
// an expression; Drop, Store and Insert produce statements.
type Mutator interface {
	Take(seq Result, at Position) Result
	Drop(seq Result, at Position) Result
	Store(seq Result, at Position, value Result) Result
	Insert(seq Result, at Position, value Result) Result
}

// Randomizer renders access at a random position, usually through a
// helper so the container is evaluated once.
type Randomizer interface {
	Random(c *Compilation, a Access) (Result, error)
}

// Slicer renders the extraction of an inclusive range.
type Slicer interface {
	Slice(c *Compilation, seq Result, from, to Position) (Result, error)
}

type accessOp int

const (
	opNone accessOp = iota
	opItem
	opTake
	opDrop
	opStore
	opInsert
	opRandom
)

var opNames = [...]string{"none", "item", "take", "drop", "store", "insert", "random"}

// accessTable maps (mode, anchor) to an operation. The zero value marks a
// combination that has no meaning.
var accessTable = [5][5]accessOp{
	//               FIRST     LAST      FROM_START FROM_END  RANDOM
	ModeGet:       {opItem, opItem, opItem, opItem, opRandom},
	ModeGetRemove: {opTake, opTake, opTake, opTake, opRandom},
	ModeRemove:    {opDrop, opDrop, opDrop, opDrop, opRandom},
	ModeSet:       {opStore, opStore, opStore, opStore, opRandom},
	ModeInsert:    {opInsert, opInsert, opInsert, opInsert, opRandom},
}

func lookup(m Mode, a Anchor) accessOp {
	if m < 0 || int(m) >= len(accessTable) || a < 0 || int(a) >= len(accessTable[m]) {
		return opNone
	}
	return accessTable[m][a]
}

// position resolves an anchor and its written offset. FROM_START offsets
// are 1-based in the program and come out 0-based.
func (c *Compilation) position(a Anchor, at Result) Position {
	t := c.Table()
	switch a {
	case AnchorFirst:
		return Position{Anchor: a, Offset: t.Number(0)}
	case AnchorLast:
		return Position{Anchor: a, FromEnd: true, Offset: t.Number(0)}
	case AnchorFromStart:
		return Position{Anchor: a, Offset: t.Decrement(at)}
	default:
		return Position{Anchor: a, FromEnd: true, Offset: at}
	}
}

// Plan turns an access descriptor into code using the container's syntax.
func (c *Compilation) Plan(seq Reader, a Access) (Result, error) {
	op := lookup(a.Mode, a.Anchor)
	if op == opNone {
		return Result{}, &AccessError{Mode: a.Mode, Anchor: a.Anchor}
	}
	c.trace.Access(a.Mode.String(), a.Anchor.String(), opNames[op])

	if op == opRandom {
		r, ok := seq.(Randomizer)
		if !ok {
			return Result{}, &AccessError{Mode: a.Mode, Anchor: a.Anchor, Container: "container without random access"}
		}
		return r.Random(c, a)
	}

	at := c.position(a.Anchor, a.At)
	if op == opItem {
		return seq.Item(a.Container, at), nil
	}

	m, ok := seq.(Mutator)
	if !ok {
		return Result{}, &AccessError{Mode: a.Mode, Anchor: a.Anchor, Container: "read-only container"}
	}
	switch op {
	case opTake:
		return m.Take(a.Container, at), nil
	case opDrop:
		return m.Drop(a.Container, at), nil
	case opStore:
		return m.Store(a.Container, at, a.Value), nil
	default:
		return m.Insert(a.Container, at, a.Value), nil
	}
}

// PlanRange extracts an inclusive range. FIRST..LAST is the identity and
// returns the container unchanged.
func (c *Compilation) PlanRange(seq Reader, r Range) (Result, error) {
	if r.From == AnchorFirst && r.To == AnchorLast {
		c.trace.Access(ModeSlice.String(), r.From.String()+".."+r.To.String(), "identity")
		return r.Container, nil
	}
	for _, a := range []Anchor{r.From, r.To} {
		if a < AnchorFirst || a > AnchorFromEnd {
			return Result{}, &AccessError{Mode: ModeSlice, Anchor: a}
		}
	}

	s, ok := seq.(Slicer)
	if !ok {
		return Result{}, &AccessError{Mode: ModeSlice, Anchor: r.From, Container: "container without ranges"}
	}
	c.trace.Access(ModeSlice.String(), r.From.String()+".."+r.To.String(), "slice")
	return s.Slice(c, r.Container, c.position(r.From, r.FromAt), c.position(r.To, r.ToAt))
}
