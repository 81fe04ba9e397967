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
	"github.com/timburks/kestrel/pkg/types"
)

// The Editor manages the editing of text in a single buffer shown in a
// single window. It is owned by the main loop and is not safe for
// concurrent use.
type Editor struct {
	window *Window
}

func NewEditor() *Editor {
	return &Editor{window: NewWindow(NewBuffer())}
}

// NewEditorWithBuffer wraps an existing buffer; the cursor starts at (0,0).
func NewEditorWithBuffer(b *Buffer) *Editor {
	return &Editor{window: NewWindow(b)}
}

// ReadFile replaces the buffer with the file at path and resets the view.
// Unreadable files give an empty buffer.
func (e *Editor) ReadFile(path string) {
	e.window.buffer.Load(path)
	e.window.cursor = types.Point{}
	e.window.offset = types.Size{}
}

// WriteFile saves the buffer to its own file.
func (e *Editor) WriteFile() error {
	b := e.window.buffer
	return b.Save(b.FileName())
}

func (e *Editor) GetBuffer() *Buffer {
	return e.window.buffer
}

func (e *Editor) GetWindow() *Window {
	return e.window
}

func (e *Editor) GetCursor() types.Point {
	return e.window.GetCursor()
}

func (e *Editor) SetCursor(cursor types.Point) {
	e.window.SetCursor(cursor)
}

func (e *Editor) GetOffset() types.Size {
	return e.window.GetOffset()
}

func (e *Editor) MoveCursor(direction int) {
	e.window.MoveCursor(direction)
}

func (e *Editor) InsertChar(c rune) {
	e.window.InsertChar(c)
}

func (e *Editor) InsertRow() {
	e.window.InsertRow()
}

func (e *Editor) BackspaceChar() {
	e.window.BackspaceChar()
}

// Scroll fits the window to size and brings the cursor into view.
func (e *Editor) Scroll(size types.Size) {
	e.window.RecomputeOffsets(size)
}

func (e *Editor) RenderWindow(d types.Display) {
	e.window.Render(d)
}
