package skeleton

import "github.com/Carmen-Shannon/oxy-rig/common"

// MatrixTable is an arena of bone transform matrices. Slots are addressed by index and every
// Reset bumps the table generation, so handles taken before a Reset are detected as stale
// rather than writing into reused storage.
type MatrixTable struct {
	matrices   []common.Mat4
	generation uint64
}

// MatrixHandle is a writable reference to one slot of a MatrixTable, valid until the next
// Reset of that table.
type MatrixHandle struct {
	table      *MatrixTable
	index      int
	generation uint64
}

// NewMatrixTable creates a table with n identity matrices.
//
// Parameters:
//   - n: number of slots
//
// Returns:
//   - *MatrixTable: the new table
func NewMatrixTable(n int) *MatrixTable {
	t := &MatrixTable{}
	t.Reset(n)
	return t
}

// Reset discards all slots, resizes the table to n identity matrices and invalidates every
// handle previously issued.
//
// Parameters:
//   - n: the new number of slots
func (t *MatrixTable) Reset(n int) {
	t.matrices = make([]common.Mat4, n)
	for i := range t.matrices {
		t.matrices[i] = common.Identity4()
	}
	t.generation++
}

// Len returns the number of slots.
//
// Returns:
//   - int: slot count
func (t *MatrixTable) Len() int {
	return len(t.matrices)
}

// Generation returns the number of Resets performed on this table.
//
// Returns:
//   - uint64: the current generation
func (t *MatrixTable) Generation() uint64 {
	return t.generation
}

// Matrix returns the matrix in slot i.
//
// Parameters:
//   - i: slot index
//
// Returns:
//   - common.Mat4: the matrix
//   - bool: false if i is out of range
func (t *MatrixTable) Matrix(i int) (common.Mat4, bool) {
	if i < 0 || i >= len(t.matrices) {
		return common.Mat4{}, false
	}
	return t.matrices[i], true
}

// SetMatrix writes the matrix in slot i.
//
// Parameters:
//   - i: slot index
//   - m: the matrix to store
//
// Returns:
//   - bool: false if i is out of range
func (t *MatrixTable) SetMatrix(i int, m common.Mat4) bool {
	if i < 0 || i >= len(t.matrices) {
		return false
	}
	t.matrices[i] = m
	return true
}

// Handle issues a handle to slot i bound to the current generation.
//
// Parameters:
//   - i: slot index
//
// Returns:
//   - MatrixHandle: the handle; it is invalid if i is out of range
func (t *MatrixTable) Handle(i int) MatrixHandle {
	return MatrixHandle{table: t, index: i, generation: t.generation}
}

// Bytes views all matrices as float32 bytes, in slot order, for upload as a bone palette.
// The view aliases the table and is valid until the next Reset.
//
// Returns:
//   - []byte: 64 bytes per slot
func (t *MatrixTable) Bytes() []byte {
	return common.SliceToBytes(t.matrices)
}

// Index returns the slot index the handle refers to.
//
// Returns:
//   - int: slot index
func (h MatrixHandle) Index() int {
	return h.index
}

// Valid reports whether the handle still refers to a live slot.
//
// Returns:
//   - bool: true if the table has not been Reset since the handle was issued and the index is in range
func (h MatrixHandle) Valid() bool {
	return h.table != nil &&
		h.generation == h.table.generation &&
		h.index >= 0 && h.index < len(h.table.matrices)
}

// Get reads the matrix the handle refers to.
//
// Returns:
//   - common.Mat4: the matrix
//   - bool: false if the handle is stale
func (h MatrixHandle) Get() (common.Mat4, bool) {
	if !h.Valid() {
		return common.Mat4{}, false
	}
	return h.table.matrices[h.index], true
}

// Set writes the matrix the handle refers to.
//
// Parameters:
//   - m: the matrix to store
//
// Returns:
//   - bool: false if the handle is stale, in which case nothing is written
func (h MatrixHandle) Set(m common.Mat4) bool {
	if !h.Valid() {
		return false
	}
	h.table.matrices[h.index] = m
	return true
}
