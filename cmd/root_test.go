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


package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timburks/kestrel/internal/config"
	"github.com/timburks/kestrel/pkg/commander"
	"github.com/timburks/kestrel/pkg/editor"
	"github.com/timburks/kestrel/pkg/types"
)

// fakeTerminal replays events and records what the loop did with it.
type fakeTerminal struct {
	events  []*types.Event
	renders int
	closed  bool
}

func (f *fakeTerminal) Render(e *editor.Editor, c *commander.Commander) {
	f.renders++
}

func (f *fakeTerminal) GetNextEvent() *types.Event {
	if len(f.events) == 0 {
		panic("out of events")
	}
	event := f.events[0]
	f.events = f.events[1:]
	return event
}

func (f *fakeTerminal) Close() {
	f.closed = true
}

func chars(text string) []*types.Event {
	var events []*types.Event
	for _, ch := range text {
		events = append(events, &types.Event{Type: types.EventKey, Kind: types.KeyPress, Ch: ch})
	}
	return events
}

func keyPress(key types.Key) *types.Event {
	return &types.Event{Type: types.EventKey, Kind: types.KeyPress, Key: key}
}

func TestRunTerminalEditsSavesAndQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	e, c := setup(config.Defaults(), []string{path})

	events := chars("ihi")
	events = append(events, keyPress(types.KeyEsc), &types.Event{Type: types.EventResize})
	events = append(events, chars("sq")...)
	f := &fakeTerminal{events: events}

	err := runTerminal(e, c, func() (terminal, error) { return f, nil })
	require.NoError(t, err)
	require.True(t, f.closed)
	require.Equal(t, 7, f.renders)
	require.Empty(t, f.events)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hi\n", string(data))
}

func TestRunTerminalKeepsRunningAfterSaveError(t *testing.T) {
	e, c := setup(config.Defaults(), nil)
	f := &fakeTerminal{events: chars("sq")}
	require.NoError(t, runTerminal(e, c, func() (terminal, error) { return f, nil }))
	require.True(t, f.closed)
	require.ErrorIs(t, e.WriteFile(), editor.ErrNoFileName)
}

func TestRunTerminalOpenFailure(t *testing.T) {
	e, c := setup(config.Defaults(), nil)
	failure := errors.New("no tty")
	err := runTerminal(e, c, func() (terminal, error) { return nil, failure })
	require.ErrorIs(t, err, failure)
}

func TestRunTerminalClosesOnPanic(t *testing.T) {
	e, c := setup(config.Defaults(), nil)
	f := &fakeTerminal{}
	require.Panics(t, func() {
		_ = runTerminal(e, c, func() (terminal, error) { return f, nil })
	})
	require.True(t, f.closed)
}

func TestSetupLoadsFileAndFiller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))

	cfg := config.Defaults()
	cfg.Display.Filler = "."
	cfg.Debug = true
	e, c := setup(cfg, []string{path})
	require.Equal(t, []string{"alpha", "beta"}, e.GetBuffer().Lines())
	require.Equal(t, path, e.GetBuffer().FileName())
	require.True(t, e.GetBuffer().Debug)
	require.Equal(t, types.ModeNormal, c.GetMode())

	require.NoError(t, c.ProcessEvent(chars("x")[0]))
	require.Contains(t, c.GetMessage(), "event=")
}

func TestRunWithScript(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  file: \"\"\n"), 0o644))
	script := filepath.Join(dir, "edit.lisp")
	require.NoError(t, os.WriteFile(script, []byte(`(keys "iok") (normal-mode) (save)`), 0o644))
	target := filepath.Join(dir, "target.txt")

	opts := &options{configFile: cfgPath, script: script}
	require.NoError(t, run(opts, []string{target}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "ok\n", string(data))
}

func TestRunLogsScriptFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "kestrel.log")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  file: "+logPath+"\n"), 0o644))

	opts := &options{configFile: cfgPath, script: filepath.Join(dir, "missing.lisp")}
	require.Error(t, run(opts, nil))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "level=ERROR")
	require.Contains(t, string(data), "script failed")
}

func TestRunWithMissingConfig(t *testing.T) {
	opts := &options{configFile: filepath.Join(t.TempDir(), "absent.yaml")}
	require.Error(t, run(opts, nil))
}

func TestRootCommandArgs(t *testing.T) {
	root := NewRootCommand()
	require.NotNil(t, root.Flags().Lookup("config"))
	require.NotNil(t, root.Flags().Lookup("eval"))
	require.NotNil(t, root.Flags().Lookup("debug"))
	require.Equal(t, "c", root.Flags().Lookup("config").Shorthand)

	root.SetArgs([]string{"one.txt", "two.txt"})
	require.Error(t, root.Execute())
}
