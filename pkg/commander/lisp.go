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

package commander

import (
	"errors"
	"fmt"
	"os"

	"github.com/steelseries/golisp"

	"github.com/timburks/kestrel/internal/logger"
	"github.com/timburks/kestrel/pkg/types"
)

// the golisp environment is global, so primitives act on the commander
// that is currently evaluating
var active *Commander

func init() {
	golisp.MakePrimitiveFunction("keys", "1", keysImpl)
	golisp.MakePrimitiveFunction("insert", "1", insertImpl)
	golisp.MakePrimitiveFunction("backspace", "0", backspaceImpl)
	golisp.MakePrimitiveFunction("up", "0", moveImpl(types.MoveUp))
	golisp.MakePrimitiveFunction("down", "0", moveImpl(types.MoveDown))
	golisp.MakePrimitiveFunction("left", "0", moveImpl(types.MoveLeft))
	golisp.MakePrimitiveFunction("right", "0", moveImpl(types.MoveRight))
	golisp.MakePrimitiveFunction("insert-mode", "0", modeImpl(types.ModeInsert))
	golisp.MakePrimitiveFunction("normal-mode", "0", modeImpl(types.ModeNormal))
	golisp.MakePrimitiveFunction("save", "0", saveImpl)
	golisp.MakePrimitiveFunction("quit", "0", quitImpl)
	golisp.MakePrimitiveFunction("line", "1", lineImpl)
	golisp.MakePrimitiveFunction("line-count", "0", lineCountImpl)
	golisp.MakePrimitiveFunction("row", "0", rowImpl)
	golisp.MakePrimitiveFunction("col", "0", colImpl)
	golisp.MakePrimitiveFunction("mode", "0", modeNameImpl)
}

// ParseEval evaluates lisp source against this commander and returns the
// printed value of the last expression.
func (c *Commander) ParseEval(source string) (string, error) {
	active = c
	defer func() { active = nil }()
	value, err := golisp.ParseAndEval("(begin " + source + "\n)")
	if err != nil {
		logger.Warn("lisp error", "err", err)
		return "", err
	}
	return golisp.String(value), nil
}

// ParseEvalFile evaluates the lisp script at path.
func (c *Commander) ParseEvalFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script: %w", err)
	}
	return c.ParseEval(string(source))
}

func current() (*Commander, error) {
	if active == nil {
		return nil, errors.New("no active editor")
	}
	return active, nil
}

func stringArg(args *golisp.Data, name string) (string, error) {
	val := golisp.Car(args)
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(val), nil
}

// keys feeds each character to the commander as a key press.
func keysImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	text, err := stringArg(args, "keys")
	if err != nil {
		return nil, err
	}
	for _, ch := range text {
		if err := c.ProcessEvent(eventForRune(ch)); err != nil {
			logger.Debug("key failed", "ch", string(ch), "err", err)
		}
	}
	return golisp.BooleanWithValue(c.IsRunning()), nil
}

func eventForRune(ch rune) *types.Event {
	event := &types.Event{Type: types.EventKey, Kind: types.KeyPress}
	switch ch {
	case '\n', '\r':
		event.Key = types.KeyEnter
	case 0x1b:
		event.Key = types.KeyEsc
	case 0x7f, '\b':
		event.Key = types.KeyBackspace2
	case ' ':
		event.Key = types.KeySpace
	case '\t':
		event.Key = types.KeyTab
	default:
		event.Ch = ch
	}
	return event
}

// insert types text as insert mode would, whatever the current mode.
func insertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	text, err := stringArg(args, "insert")
	if err != nil {
		return nil, err
	}
	for _, ch := range text {
		if ch == '\n' {
			c.editor.InsertRow()
		} else {
			c.editor.InsertChar(ch)
		}
	}
	return golisp.StringWithValue(text), nil
}

func backspaceImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	c.editor.BackspaceChar()
	return golisp.BooleanWithValue(true), nil
}

func moveImpl(direction int) func(*golisp.Data, *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		c, err := current()
		if err != nil {
			return nil, err
		}
		c.editor.MoveCursor(direction)
		return golisp.BooleanWithValue(true), nil
	}
}

func modeImpl(mode types.Mode) func(*golisp.Data, *golisp.SymbolTableFrame) (*golisp.Data, error) {
	return func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		c, err := current()
		if err != nil {
			return nil, err
		}
		c.SetMode(mode)
		return golisp.StringWithValue(mode.String()), nil
	}
}

// save returns #t, or the error message when the write fails.
func saveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	if err := c.Save(); err != nil {
		return golisp.StringWithValue(err.Error()), nil
	}
	return golisp.BooleanWithValue(true), nil
}

func quitImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	c.Quit()
	return golisp.BooleanWithValue(true), nil
}

func lineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	val := golisp.Car(args)
	if !golisp.IntegerP(val) {
		return nil, errors.New("line requires an integer argument")
	}
	return golisp.StringWithValue(c.editor.GetBuffer().Line(int(golisp.IntegerValue(val)))), nil
}

func lineCountImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(c.editor.GetBuffer().Height())), nil
}

func rowImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(c.editor.GetCursor().Row)), nil
}

func colImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(c.editor.GetCursor().Col)), nil
}

func modeNameImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := current()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.GetModeName()), nil
}
