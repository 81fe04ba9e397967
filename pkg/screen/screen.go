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

package screen

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/timburks/kestrel/internal/logger"
	"github.com/timburks/kestrel/pkg/commander"
	"github.com/timburks/kestrel/pkg/editor"
	"github.com/timburks/kestrel/pkg/types"
)

// The Screen draws the state of an Editor and reads input events.
// It owns the terminal from NewScreen until Close.
type Screen struct {
	size types.Size // screen size
}

// NewScreen puts the terminal in raw mode on the alternate screen.
// The caller must Close the screen on every exit path.
func NewScreen() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.OutputNormal)
	logger.Debug("terminal claimed")
	return &Screen{}, nil
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() {
	if termbox.IsInit {
		termbox.Close()
		logger.Debug("terminal restored")
	}
}

func (s *Screen) Render(e *editor.Editor, c *commander.Commander) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	s.size.Cols, s.size.Rows = termbox.Size()

	e.Scroll(EditSize(s.size))
	e.RenderWindow(s)
	s.RenderInfoBar(e, c)
	s.RenderMessageBar(c)

	cursor := e.GetWindow().ScreenCursor()
	termbox.SetCursor(cursor.Col, cursor.Row)
	if err := termbox.Flush(); err != nil {
		logger.Warn("flush failed", "err", err)
	}
}

// EditSize is the text area left after the info bar and the message bar.
func EditSize(screen types.Size) types.Size {
	return types.Size{Rows: max(screen.Rows-2, 1), Cols: max(screen.Cols, 1)}
}

func (s *Screen) SetCell(col int, row int, c rune, color types.Color) {
	fg := termbox.ColorDefault
	if color == types.ColorFiller {
		fg = termbox.ColorBlue | termbox.AttrBold
	}
	termbox.SetCell(col, row, c, fg, termbox.ColorDefault)
}

func (s *Screen) RenderInfoBar(e *editor.Editor, c *commander.Commander) {
	text := InfoBarText(e, c, s.size.Cols)
	x := 0
	for _, ch := range text {
		termbox.SetCell(x, s.size.Rows-2, ch, termbox.ColorBlack, termbox.ColorWhite)
		x += runewidth.RuneWidth(ch)
	}
}

// InfoBarText shows the mode, the file and the 1-based cursor position,
// fitted to width.
func InfoBarText(e *editor.Editor, c *commander.Commander, width int) string {
	b := e.GetBuffer()
	cursor := e.GetCursor()
	name := b.Name()
	if b.Modified() {
		name += " [+]"
	}
	left := fmt.Sprintf(" %s  %s ", strings.ToUpper(c.GetModeName()), name)
	right := fmt.Sprintf(" %d:%d ", cursor.Row+1, cursor.Col+1)
	room := width - runewidth.StringWidth(right)
	if room < 0 {
		return runewidth.Truncate(right, width, "")
	}
	return runewidth.FillRight(runewidth.Truncate(left, room, "…"), room) + right
}

func (s *Screen) RenderMessageBar(c *commander.Commander) {
	line := runewidth.Truncate(c.GetMessage(), s.size.Cols, "")
	x := 0
	for _, ch := range line {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorDefault, termbox.ColorDefault)
		x += runewidth.RuneWidth(ch)
	}
}

// GetNextEvent blocks until the terminal reports an event.
func (s *Screen) GetNextEvent() *types.Event {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventKey:
		return translateKey(event)
	case termbox.EventResize:
		termbox.Flush()
		return &types.Event{Type: types.EventResize}
	case termbox.EventError:
		logger.Warn("terminal event error", "err", event.Err)
	}
	return &types.Event{Type: types.EventUnknown}
}

// termbox only reports presses
func translateKey(event termbox.Event) *types.Event {
	e := &types.Event{Type: types.EventKey, Kind: types.KeyPress}
	if event.Mod&termbox.ModAlt != 0 {
		e.Key = types.KeyUnsupported
		return e
	}
	if event.Ch != 0 {
		e.Ch = event.Ch
		return e
	}
	e.Key = key(event.Key)
	return e
}

func key(k termbox.Key) types.Key {
	switch k {
	case termbox.KeyArrowDown:
		return types.KeyArrowDown
	case termbox.KeyArrowLeft:
		return types.KeyArrowLeft
	case termbox.KeyArrowRight:
		return types.KeyArrowRight
	case termbox.KeyArrowUp:
		return types.KeyArrowUp
	case termbox.KeyBackspace:
		return types.KeyBackspace
	case termbox.KeyBackspace2:
		return types.KeyBackspace2
	case termbox.KeyEnter:
		return types.KeyEnter
	case termbox.KeyEsc:
		return types.KeyEsc
	case termbox.KeySpace:
		return types.KeySpace
	case termbox.KeyTab:
		return types.KeyTab
	default:
		return types.KeyUnsupported
	}
}
