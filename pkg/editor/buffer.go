//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/timburks/kestrel/internal/logger"
)

// A Buffer holds the lines of the file being edited.
// It always contains at least one row.
type Buffer struct {
	rows     []*Row
	fileName string
	modified bool
	Debug    bool // panic on out-of-range edits instead of ignoring them
}

func NewBuffer() *Buffer {
	return &Buffer{rows: []*Row{NewRow("")}}
}

// NewBufferWithLines is mostly useful in tests.
func NewBufferWithLines(lines ...string) *Buffer {
	b := NewBuffer()
	if len(lines) > 0 {
		b.rows = make([]*Row, 0, len(lines))
		for _, line := range lines {
			b.rows = append(b.rows, NewRow(line))
		}
	}
	return b
}

func (b *Buffer) FileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

// Name is the name shown to the user.
func (b *Buffer) Name() string {
	if b.fileName == "" {
		return "[No Name]"
	}
	return b.fileName
}

// Modified reports edits made since the last load or save.
func (b *Buffer) Modified() bool {
	return b.modified
}

func (b *Buffer) Height() int {
	return len(b.rows)
}

func (b *Buffer) Width(row int) int {
	if row < 0 || row >= len(b.rows) {
		return 0
	}
	return b.rows[row].Length()
}

// Get returns the cell at row, col or a space when it is out of range.
func (b *Buffer) Get(row, col int) rune {
	if row < 0 || row >= len(b.rows) {
		return ' '
	}
	r := b.rows[row]
	if col < 0 || col >= r.Length() {
		return ' '
	}
	return r.Text[col]
}

// Line returns the text of a row, or "" when it is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.rows) {
		return ""
	}
	return b.rows[row].String()
}

func (b *Buffer) Lines() []string {
	lines := make([]string, len(b.rows))
	for i, r := range b.rows {
		lines[i] = r.String()
	}
	return lines
}

func (b *Buffer) validPosition(row, col int) bool {
	ok := row >= 0 && row < len(b.rows) && col >= 0 && col <= b.rows[row].Length()
	if !ok && b.Debug {
		panic(fmt.Sprintf("editor: position (%d,%d) outside buffer of %d rows", row, col, len(b.rows)))
	}
	return ok
}

// InsertChar reports whether the position was valid and c was inserted.
func (b *Buffer) InsertChar(c rune, row, col int) bool {
	if !b.validPosition(row, col) {
		return false
	}
	b.rows[row].InsertChar(col, c)
	b.modified = true
	return true
}

// SplitLine moves the text after col onto a new row below row.
func (b *Buffer) SplitLine(row, col int) bool {
	if !b.validPosition(row, col) {
		return false
	}
	newRow := b.rows[row].Split(col)
	b.rows = append(b.rows, nil)
	copy(b.rows[row+2:], b.rows[row+1:])
	b.rows[row+1] = newRow
	b.modified = true
	return true
}

// DeleteBackward removes the character before col. At the start of a row
// it joins the row to the one above. It reports whether anything changed.
func (b *Buffer) DeleteBackward(row, col int) bool {
	if !b.validPosition(row, col) {
		return false
	}
	if col > 0 {
		b.rows[row].DeleteChar(col - 1)
	} else if row > 0 {
		b.rows[row-1].Join(b.rows[row])
		b.rows = append(b.rows[0:row], b.rows[row+1:]...)
	} else {
		return false
	}
	b.modified = true
	return true
}

// LoadBytes replaces the contents of the buffer. Lines end with "\n" or
// "\r\n"; a final terminator does not start another line.
func (b *Buffer) LoadBytes(bytes []byte) {
	s := strings.TrimSuffix(string(bytes), "\n")
	lines := strings.Split(s, "\n")
	b.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		b.rows = append(b.rows, NewRow(strings.TrimSuffix(line, "\r")))
	}
	b.modified = false
}

// Bytes writes every line followed by "\n".
func (b *Buffer) Bytes() []byte {
	var sb strings.Builder
	for _, row := range b.rows {
		sb.WriteString(string(row.Text))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Load replaces the buffer with the contents of path. Read failures are
// logged and leave a single empty row; a file that does not exist yet
// stays bound so that it is created by the next save.
func (b *Buffer) Load(path string) {
	b.LoadBytes(nil)
	b.fileName = ""
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("new file", "path", path)
			b.fileName = path
		} else {
			logger.Warn("unable to read file", "path", path, "err", err)
		}
		return
	}
	b.LoadBytes(data)
	b.fileName = path
	logger.Debug("loaded file", "path", path, "rows", b.Height())
}

// Save writes the buffer to path. The buffer itself is never changed.
func (b *Buffer) Save(path string) error {
	if path == "" {
		return &IoError{Op: "save", Err: ErrNoFileName}
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return &IoError{Op: "save", Path: path, Err: err}
	}
	b.modified = false
	logger.Debug("saved file", "path", path, "rows", b.Height())
	return nil
}
