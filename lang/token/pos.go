package token

import (
	"fmt"
	gotoken "go/token"
	"sort"
	"strconv"
)

// Pos is a compact encoding of a source position: a 1-based offset into the
// file set that contains the file. A File can translate a Pos back to the
// filename, line and column it denotes. The zero value NoPos denotes an
// unknown position.
type Pos int

// NoPos is the zero, unknown position.
const NoPos Pos = 0

// IsValid returns true if the position is known.
func (p Pos) IsValid() bool { return p != NoPos }

// Position is the expanded form of a Pos: a filename, a 0-based byte offset
// and 1-based line and column numbers. It is an alias of the go/token
// Position so that errors can be accumulated directly in a go/scanner
// ErrorList.
type Position = gotoken.Position

// A File is a handle to a source file registered in a FileSet. It records the
// offsets of line starts so positions can be translated to line and column.
type File struct {
	name string
	base int
	size int

	// lines contains the 0-based byte offset of the first character of each
	// line; line 1 starts at offset 0.
	lines []int
}

// Name returns the name of the file as registered with AddFile.
func (f *File) Name() string { return f.name }

// Base returns the base Pos value of the file.
func (f *File) Base() int { return f.base }

// Size returns the size in bytes of the file as registered with AddFile.
func (f *File) Size() int { return f.size }

// AddLine records offset as the first byte of a new line. Offsets must be
// added in increasing order and must be within the file size.
func (f *File) AddLine(offset int) {
	if i := len(f.lines); (i == 0 || f.lines[i-1] < offset) && offset <= f.size {
		f.lines = append(f.lines, offset)
	}
}

// Pos returns the Pos value for the byte offset in the file. The offset must
// be in [0, f.Size()].
func (f *File) Pos(offset int) Pos {
	if offset < 0 || offset > f.size {
		panic(fmt.Sprintf("offset %d out of bounds for file %s [0, %d]", offset, f.name, f.size))
	}
	return Pos(f.base + offset)
}

// Offset returns the byte offset in the file of the Pos value, which must be
// inside the range covered by the file.
func (f *File) Offset(p Pos) int {
	if int(p) < f.base || int(p) > f.base+f.size {
		panic(fmt.Sprintf("pos %d out of bounds for file %s [%d, %d]", p, f.name, f.base, f.base+f.size))
	}
	return int(p) - f.base
}

// Position translates the Pos value to a Position in the file. An invalid
// Pos yields a Position with only the filename set.
func (f *File) Position(p Pos) Position {
	pos := Position{Filename: f.name}
	if !p.IsValid() {
		return pos
	}

	offset := f.Offset(p)
	pos.Offset = offset
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if i < 0 {
		pos.Line, pos.Column = 1, offset+1
	} else {
		pos.Line, pos.Column = i+2, offset-f.lines[i]+1
	}
	return pos
}

// A FileSet represents a set of source files and assigns each a disjoint
// range of Pos values.
type FileSet struct {
	base  int
	files []*File
}

// NewFileSet creates a new, empty file set.
func NewFileSet() *FileSet {
	return &FileSet{base: 1}
}

// AddFile adds a new file with the given name, base offset and size to the
// file set and returns the file handle. If base is negative, the file set's
// current base is used. The range [base, base+size] must not overlap any
// file already in the set.
func (fs *FileSet) AddFile(name string, base, size int) *File {
	if base < 0 {
		base = fs.base
	}
	if base < fs.base || size < 0 {
		panic(fmt.Sprintf("invalid base %d or size %d for file %s", base, size, name))
	}

	f := &File{name: name, base: base, size: size}
	// the EOF position of a file must not collide with the first position of
	// the next file
	fs.base = base + size + 1
	fs.files = append(fs.files, f)
	return f
}

// File returns the file in the set that contains the Pos value, or nil if no
// file contains it.
func (fs *FileSet) File(p Pos) *File {
	for _, f := range fs.files {
		if int(p) >= f.base && int(p) <= f.base+f.size {
			return f
		}
	}
	return nil
}

// PosMode indicates how positions should be rendered by FormatPos.
type PosMode int

// List of supported position printing modes.
const (
	PosNone    PosMode = iota // do not print positions
	PosOffsets                // print positions as raw byte offsets in their file
	PosLong                   // print positions as filename:line:column
	PosRaw                    // print positions as raw Pos integers
)

var posModeNames = [...]string{
	PosNone:    "none",
	PosOffsets: "offsets",
	PosLong:    "long",
	PosRaw:     "raw",
}

func (m PosMode) String() string {
	if int(m) >= len(posModeNames) {
		return fmt.Sprintf("<invalid PosMode %d>", int(m))
	}
	return posModeNames[m]
}

// FormatPos renders the position according to the mode. The file must be the
// one containing pos unless mode is PosNone or PosRaw. If withFilename is
// false, the filename is omitted in PosLong mode.
func FormatPos(mode PosMode, f *File, pos Pos, withFilename bool) string {
	switch mode {
	case PosNone:
		return ""

	case PosRaw:
		return strconv.Itoa(int(pos))

	case PosOffsets:
		if !pos.IsValid() {
			return "-"
		}
		return strconv.Itoa(f.Offset(pos))

	case PosLong:
		var name string
		if withFilename {
			name = f.Name()
		}
		if !pos.IsValid() {
			return name + ":-:-"
		}
		lpos := f.Position(pos)
		return fmt.Sprintf("%s:%d:%d", name, lpos.Line, lpos.Column)
	}
	panic(fmt.Sprintf("unexpected PosMode: %d", int(mode)))
}
