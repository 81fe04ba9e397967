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

// Package types holds the values shared by the editor, the commander
// and the screen.
package types

// Mode selects the key map used to interpret input.
type Mode int

// Editor modes
const (
	ModeNormal Mode = iota
	ModeInsert
	ModeQuit // not an input mode; stops the main loop
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Move directions
const (
	MoveUp = iota
	MoveDown
	MoveRight
	MoveLeft
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// Event types
const (
	EventKey = iota
	EventResize
	EventUnknown
)

// EventKind distinguishes presses from the other key transitions some
// terminals report. Only presses are acted on.
type EventKind int

const (
	KeyPress EventKind = iota
	KeyRepeat
	KeyRelease
)

type Key int

// Keys that do not carry a character.
const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace
	KeyBackspace2
	KeyEnter
	KeyEsc
	KeySpace
	KeyTab
	KeyUnsupported
)

// An Event is one unit of input. Ch is set for character keys, Key for
// the others.
type Event struct {
	Type int
	Kind EventKind
	Key  Key
	Ch   rune
}

// Color is an opaque attribute understood by a Display.
type Color int

const (
	ColorDefault Color = iota
	ColorFiller
	ColorText
)

// A Display receives the cells of a rendered window.
type Display interface {
	SetCell(col int, row int, c rune, color Color)
}
