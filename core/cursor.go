package sarc

import (
	"cmp"
	"fmt"
)

// Cursor is a random-access position over the files of an Archive.
//
// Valid positions are 0 through NumFiles inclusive; NumFiles is the end
// position and cannot be dereferenced. Cursors are small values and may be
// copied freely.
//
// Misuse panics: dereferencing the end position, moving outside
// [0, NumFiles], and comparing cursors of different archives are
// programming errors. Use Archive.File or Archive.Find for lookups that
// may legitimately miss.
//
//	for it := a.Begin(); it.Less(a.End()); it.Increment() {
//	    f := it.File()
//	    fmt.Println(f.Name(), f.Size())
//	}
type Cursor struct {
	archive *Archive
	index   uint32
}

// Archive returns the archive the cursor walks, or nil for the zero Cursor.
func (c Cursor) Archive() *Archive {
	return c.archive
}

// Index returns the cursor position.
func (c Cursor) Index() uint32 {
	return c.index
}

// File returns the file at the cursor position.
func (c Cursor) File() FileView {
	a := c.mustArchive()
	if n := a.NumFiles(); c.index >= n {
		panic(fmt.Sprintf("sarc: cursor dereference at %d with %d files", c.index, n))
	}
	return a.File(c.index)
}

// At returns the file offset positions away from the cursor.
func (c Cursor) At(offset int) FileView {
	return c.Add(offset).File()
}

// Increment moves the cursor forward by one and returns the new position.
func (c *Cursor) Increment() Cursor {
	c.index = c.moved(1)
	return *c
}

// PostIncrement moves the cursor forward by one and returns the old position.
func (c *Cursor) PostIncrement() Cursor {
	prev := *c
	c.index = c.moved(1)
	return prev
}

// Decrement moves the cursor back by one and returns the new position.
func (c *Cursor) Decrement() Cursor {
	c.index = c.moved(-1)
	return *c
}

// PostDecrement moves the cursor back by one and returns the old position.
func (c *Cursor) PostDecrement() Cursor {
	prev := *c
	c.index = c.moved(-1)
	return prev
}

// Advance moves the cursor by n positions in place.
func (c *Cursor) Advance(n int) Cursor {
	c.index = c.moved(int64(n))
	return *c
}

// Retreat moves the cursor back by n positions in place.
func (c *Cursor) Retreat(n int) Cursor {
	c.index = c.moved(-int64(n))
	return *c
}

// Add returns a cursor n positions after c.
func (c Cursor) Add(n int) Cursor {
	return Cursor{archive: c.archive, index: c.moved(int64(n))}
}

// Sub returns a cursor n positions before c.
func (c Cursor) Sub(n int) Cursor {
	return Cursor{archive: c.archive, index: c.moved(-int64(n))}
}

// Distance returns the signed number of positions from o to c.
func (c Cursor) Distance(o Cursor) int {
	c.mustShare(o)
	return int(int64(c.index) - int64(o.index))
}

// Compare returns -1, 0, or +1 depending on whether c is before, at, or
// after o.
func (c Cursor) Compare(o Cursor) int {
	c.mustShare(o)
	return cmp.Compare(c.index, o.index)
}

// Equal reports whether c and o are at the same position.
func (c Cursor) Equal(o Cursor) bool { return c.Compare(o) == 0 }

// NotEqual reports whether c and o are at different positions.
func (c Cursor) NotEqual(o Cursor) bool { return c.Compare(o) != 0 }

// Less reports whether c is before o.
func (c Cursor) Less(o Cursor) bool { return c.Compare(o) < 0 }

// LessEqual reports whether c is before or at o.
func (c Cursor) LessEqual(o Cursor) bool { return c.Compare(o) <= 0 }

// Greater reports whether c is after o.
func (c Cursor) Greater(o Cursor) bool { return c.Compare(o) > 0 }

// GreaterEqual reports whether c is after or at o.
func (c Cursor) GreaterEqual(o Cursor) bool { return c.Compare(o) >= 0 }

func (c Cursor) mustArchive() *Archive {
	if c.archive == nil {
		panic("sarc: cursor is not bound to an archive")
	}
	return c.archive
}

func (c Cursor) mustShare(o Cursor) {
	if c.mustArchive() != o.mustArchive() {
		panic("sarc: comparing cursors of different archives")
	}
}

// moved returns the position delta away from c, panicking if it leaves [0, NumFiles].
func (c Cursor) moved(delta int64) uint32 {
	n := c.mustArchive().NumFiles()
	pos := int64(c.index) + delta
	if pos < 0 || pos > int64(n) {
		panic(fmt.Sprintf("sarc: cursor position %d outside [0, %d]", pos, n))
	}
	return uint32(pos)
}
