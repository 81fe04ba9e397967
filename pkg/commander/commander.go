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
	"fmt"

	"github.com/timburks/kestrel/internal/logger"
	"github.com/timburks/kestrel/pkg/editor"
	"github.com/timburks/kestrel/pkg/types"
)

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor  *editor.Editor
	mode    types.Mode             // editor mode
	debug   bool                  // debug mode displays information about events (key codes, etc)
	message string                // status message
	keymaps map[types.Mode]*keymap // key bindings for each input mode
}

func NewCommander(e *editor.Editor) *Commander {
	return &Commander{
		editor: e,
		mode:   types.ModeNormal,
		keymaps: map[types.Mode]*keymap{
			types.ModeNormal: normalKeymap(),
			types.ModeInsert: insertKeymap(),
		},
	}
}

func (c *Commander) GetEditor() *editor.Editor {
	return c.editor
}

func (c *Commander) GetMode() types.Mode {
	return c.mode
}

func (c *Commander) SetMode(m types.Mode) {
	if c.mode != m {
		logger.Debug("mode change", "from", c.mode, "to", m)
	}
	c.mode = m
}

func (c *Commander) GetModeName() string {
	return c.mode.String()
}

func (c *Commander) IsRunning() bool {
	return c.mode != types.ModeQuit
}

func (c *Commander) Quit() {
	c.SetMode(types.ModeQuit)
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) SetMessage(message string) {
	c.message = message
}

func (c *Commander) SetDebug(debug bool) {
	c.debug = debug
	if !debug {
		c.message = ""
	}
}

// ProcessEvent handles one input event. Anything other than a key press
// is ignored. The returned error has already been reported in the
// message bar.
func (c *Commander) ProcessEvent(event *types.Event) error {
	if event == nil {
		return nil
	}
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", *event)
	}
	switch event.Type {
	case types.EventKey:
		if event.Kind != types.KeyPress {
			return nil
		}
		return c.processKey(event)
	default:
		return nil
	}
}

func (c *Commander) processKey(event *types.Event) error {
	km, ok := c.keymaps[c.mode]
	if !ok {
		return nil
	}
	if a := km.lookup(event); a != nil {
		return a(c, event)
	}
	return nil
}

// Save writes the buffer to its file and reports the outcome.
func (c *Commander) Save() error {
	err := c.editor.WriteFile()
	if err != nil {
		c.message = err.Error()
		logger.Warn("save failed", "err", err)
		return err
	}
	b := c.editor.GetBuffer()
	c.message = fmt.Sprintf("%q %dL written", b.FileName(), b.Height())
	return nil
}
