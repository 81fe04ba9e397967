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
	"unicode"

	"github.com/timburks/kestrel/pkg/types"
)

// A Window is a view of a buffer. It owns the cursor and the display
// offset that keeps the cursor onscreen.
type Window struct {
	buffer *Buffer
	cursor types.Point // cursor position
	offset types.Size  // display offset
	size   types.Size  // visible rows and columns
	filler rune       // drawn on rows past the end of the buffer
}

func NewWindow(b *Buffer) *Window {
	return &Window{buffer: b, filler: '~', size: types.Size{Rows: 1, Cols: 1}}
}

func (w *Window) GetBuffer() *Buffer {
	return w.buffer
}

func (w *Window) GetCursor() types.Point {
	return w.cursor
}

// SetCursor moves the cursor, clamped to the buffer.
func (w *Window) SetCursor(cursor types.Point) {
	w.cursor = cursor
	w.keepCursorInBuffer()
}

func (w *Window) GetOffset() types.Size {
	return w.offset
}

func (w *Window) GetSize() types.Size {
	return w.size
}

func (w *Window) SetFiller(c rune) {
	w.filler = c
}

func (w *Window) keepCursorInBuffer() {
	b := w.buffer
	w.cursor.Row = clipToRange(w.cursor.Row, 0, b.Height()-1)
	w.cursor.Col = clipToRange(w.cursor.Col, 0, b.Width(w.cursor.Row))
}

// MoveCursor moves one cell. Left and right continue onto the neighboring
// line; up and down pull the column back to the end of a shorter line.
func (w *Window) MoveCursor(direction int) {
	b := w.buffer
	switch direction {
	case types.MoveUp:
		if w.cursor.Row > 0 {
			w.cursor.Row--
		}
		w.cursor.Col = min(w.cursor.Col, b.Width(w.cursor.Row))
	case types.MoveDown:
		if w.cursor.Row < b.Height()-1 {
			w.cursor.Row++
		}
		w.cursor.Col = min(w.cursor.Col, b.Width(w.cursor.Row))
	case types.MoveLeft:
		if w.cursor.Col > 0 {
			w.cursor.Col--
		} else if w.cursor.Row > 0 {
			w.cursor.Row--
			w.cursor.Col = b.Width(w.cursor.Row)
		}
	case types.MoveRight:
		if w.cursor.Col < b.Width(w.cursor.Row) {
			w.cursor.Col++
		} else if w.cursor.Row < b.Height()-1 {
			w.cursor.Row++
			w.cursor.Col = 0
		}
	}
}

// RecomputeOffsets scrolls just far enough to put the cursor in a window
// of the given size.
func (w *Window) RecomputeOffsets(size types.Size) {
	w.size.Rows = max(size.Rows, 1)
	w.size.Cols = max(size.Cols, 1)
	if w.cursor.Row < w.offset.Rows {
		// scroll up
		w.offset.Rows = w.cursor.Row
	}
	if w.cursor.Row-w.offset.Rows >= w.size.Rows {
		// scroll down
		w.offset.Rows = w.cursor.Row - w.size.Rows + 1
	}
	if w.cursor.Col < w.offset.Cols {
		// scroll left
		w.offset.Cols = w.cursor.Col
	}
	if w.cursor.Col-w.offset.Cols >= w.size.Cols {
		// scroll right
		w.offset.Cols = w.cursor.Col - w.size.Cols + 1
	}
}

// ScreenCursor is the cursor position relative to the visible area.
func (w *Window) ScreenCursor() types.Point {
	return types.Point{
		Row: w.cursor.Row - w.offset.Rows,
		Col: w.cursor.Col - w.offset.Cols,
	}
}

// Render draws the visible part of the buffer. It does not change the window.
func (w *Window) Render(display types.Display) {
	b := w.buffer
	for i := 0; i < w.size.Rows; i++ {
		row := i + w.offset.Rows
		if row >= b.Height() {
			display.SetCell(0, i, w.filler, types.ColorFiller)
			continue
		}
		width := b.Width(row)
		for j := 0; j < w.size.Cols; j++ {
			col := j + w.offset.Cols
			if col >= width {
				break
			}
			display.SetCell(j, i, displayRune(b.Get(row, col)), types.ColorText)
		}
	}
}

// control characters are stored verbatim but drawn as a placeholder
func displayRune(c rune) rune {
	if c == '\t' {
		return ' '
	}
	if !unicode.IsPrint(c) {
		return '?'
	}
	return c
}

// These primitives edit the buffer and move the cursor the way insert mode expects.

func (w *Window) InsertChar(c rune) {
	if w.buffer.InsertChar(c, w.cursor.Row, w.cursor.Col) {
		w.cursor.Col++
	}
}

func (w *Window) InsertRow() {
	if w.buffer.SplitLine(w.cursor.Row, w.cursor.Col) {
		w.cursor.Row++
		w.cursor.Col = 0
	}
}

// BackspaceChar deletes before the cursor; at the start of a line the
// cursor lands where the two lines were joined.
func (w *Window) BackspaceChar() {
	previousWidth := w.buffer.Width(w.cursor.Row - 1)
	if !w.buffer.DeleteBackward(w.cursor.Row, w.cursor.Col) {
		return
	}
	if w.cursor.Col > 0 {
		w.cursor.Col--
	} else if w.cursor.Row > 0 {
		w.cursor.Row--
		w.cursor.Col = previousWidth
	}
}

func clipToRange(i, min, max int) int {
	if i > max {
		i = max
	}
	if i < min {
		i = min
	}
	return i
}
