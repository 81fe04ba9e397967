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
	"unicode"

	"github.com/timburks/kestrel/pkg/types"
)

type action func(c *Commander, event *types.Event) error

// A keymap binds keys to actions for one mode. Characters without a
// binding go to printable, if it is set.
type keymap struct {
	keys      map[types.Key]action
	chars     map[rune]action
	printable action
}

func (km *keymap) lookup(event *types.Event) action {
	if event.Ch != 0 {
		if a, ok := km.chars[event.Ch]; ok {
			return a
		}
		if km.printable != nil && unicode.IsPrint(event.Ch) {
			return km.printable
		}
		return nil
	}
	return km.keys[event.Key]
}

func move(direction int) action {
	return func(c *Commander, event *types.Event) error {
		c.editor.MoveCursor(direction)
		return nil
	}
}

func normalKeymap() *keymap {
	return &keymap{
		keys: map[types.Key]action{
			types.KeyArrowUp:    move(types.MoveUp),
			types.KeyArrowDown:  move(types.MoveDown),
			types.KeyArrowLeft:  move(types.MoveLeft),
			types.KeyArrowRight: move(types.MoveRight),
		},
		chars: map[rune]action{
			'i': func(c *Commander, event *types.Event) error {
				c.SetMode(types.ModeInsert)
				return nil
			},
			's': func(c *Commander, event *types.Event) error {
				return c.Save()
			},
			'q': func(c *Commander, event *types.Event) error {
				c.Quit()
				return nil
			},
		},
	}
}

func insertKeymap() *keymap {
	backspace := func(c *Commander, event *types.Event) error {
		c.editor.BackspaceChar()
		return nil
	}
	return &keymap{
		keys: map[types.Key]action{
			types.KeyEsc: func(c *Commander, event *types.Event) error {
				c.SetMode(types.ModeNormal)
				return nil
			},
			types.KeyEnter: func(c *Commander, event *types.Event) error {
				c.editor.InsertRow()
				return nil
			},
			types.KeySpace: func(c *Commander, event *types.Event) error {
				c.editor.InsertChar(' ')
				return nil
			},
			types.KeyBackspace:  backspace,
			types.KeyBackspace2: backspace,
		},
		printable: func(c *Commander, event *types.Event) error {
			c.editor.InsertChar(event.Ch)
			return nil
		},
	}
}
