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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const gettysburg = `THE GETTYSBURG ADDRESS:

Four score and seven years ago our fathers brought forth on this
continent a new nation, conceived in liberty and dedicated to the
proposition that all men are created equal.
`

func TestNewBufferHasOneEmptyRow(t *testing.T) {
	b := NewBuffer()
	require.Equal(t, 1, b.Height())
	require.Equal(t, 0, b.Width(0))
	require.Equal(t, []string{""}, b.Lines())
	require.Equal(t, "[No Name]", b.Name())
}

func TestOutOfRangeReads(t *testing.T) {
	b := NewBufferWithLines("ab")
	require.Equal(t, 0, b.Width(-1))
	require.Equal(t, 0, b.Width(1))
	require.Equal(t, 'b', b.Get(0, 1))
	require.Equal(t, ' ', b.Get(0, 2))
	require.Equal(t, ' ', b.Get(5, 0))
	require.Equal(t, ' ', b.Get(0, -1))
	require.Equal(t, "", b.Line(3))
}

func TestInsertChar(t *testing.T) {
	b := NewBufferWithLines("ac")
	b.InsertChar('b', 0, 1)
	b.InsertChar('d', 0, 3)
	b.InsertChar('>', 0, 0)
	require.Equal(t, []string{">abcd"}, b.Lines())
	require.True(t, b.Modified())
}

func TestInsertCharOutOfRangeIsIgnored(t *testing.T) {
	b := NewBufferWithLines("ab")
	require.False(t, b.InsertChar('x', 0, 3))
	require.False(t, b.InsertChar('x', 1, 0))
	require.False(t, b.SplitLine(0, 3))
	require.False(t, b.DeleteBackward(0, 0))
	require.Equal(t, []string{"ab"}, b.Lines())
	require.False(t, b.Modified())
}

func TestInsertCharOutOfRangePanicsInDebug(t *testing.T) {
	b := NewBufferWithLines("ab")
	b.Debug = true
	require.Panics(t, func() { b.InsertChar('x', 0, 3) })
}

func TestSplitLine(t *testing.T) {
	b := NewBufferWithLines("abcdef", "next")
	b.SplitLine(0, 3)
	require.Equal(t, []string{"abc", "def", "next"}, b.Lines())

	b.SplitLine(2, 4)
	require.Equal(t, []string{"abc", "def", "next", ""}, b.Lines())

	b.SplitLine(0, 0)
	require.Equal(t, []string{"", "abc", "def", "next", ""}, b.Lines())
}

func TestSplitLineDoesNotShareStorage(t *testing.T) {
	b := NewBufferWithLines("abcdef")
	b.SplitLine(0, 3)
	b.InsertChar('X', 0, 3)
	require.Equal(t, []string{"abcX", "def"}, b.Lines())
}

func TestDeleteBackward(t *testing.T) {
	b := NewBufferWithLines("abc", "de")
	b.DeleteBackward(0, 2)
	require.Equal(t, []string{"ac", "de"}, b.Lines())

	b.DeleteBackward(1, 0)
	require.Equal(t, []string{"acde"}, b.Lines())

	b.DeleteBackward(0, 0)
	require.Equal(t, []string{"acde"}, b.Lines())
	require.Equal(t, 1, b.Height())
}

func TestSplitThenJoinRestoresLine(t *testing.T) {
	b := NewBufferWithLines("abcdef")
	b.SplitLine(0, 3)
	b.DeleteBackward(1, 0)
	require.Equal(t, []string{"abcdef"}, b.Lines())
}

func TestLoadBytes(t *testing.T) {
	b := NewBuffer()
	b.LoadBytes([]byte(gettysburg))
	require.Equal(t, 5, b.Height())
	require.Equal(t, "THE GETTYSBURG ADDRESS:", b.Line(0))
	require.Equal(t, "", b.Line(1))

	b.LoadBytes(nil)
	require.Equal(t, []string{""}, b.Lines())

	b.LoadBytes([]byte("a\tb\r\n\x01\n\n"))
	require.Equal(t, []string{"a\tb", "\x01", ""}, b.Lines())

	b.LoadBytes([]byte("a\rb\n"))
	require.Equal(t, []string{"a\rb"}, b.Lines())
}

func TestLoadCRLFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab\r\ncd\r\n"), 0o644))

	b := NewBuffer()
	b.Load(path)
	require.Equal(t, []string{"ab", "cd"}, b.Lines())
	require.Equal(t, 2, b.Width(0))

	require.NoError(t, b.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ab\ncd\n", string(data))
}

func TestReadWriteInvariance(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "gettysburg-address.txt")
	require.NoError(t, os.WriteFile(source, []byte(gettysburg), 0o644))

	b := NewBuffer()
	b.Load(source)
	require.Equal(t, source, b.FileName())

	final := filepath.Join(dir, "test-final.txt")
	require.NoError(t, b.Save(final))
	data, err := os.ReadFile(final)
	require.NoError(t, err)
	require.Equal(t, gettysburg, string(data))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`([a-z \t\r\x01é]{0,9}[a-z \t\x01é])?`), 1, 12).Draw(t, "lines")
		path := filepath.Join(dir, "roundtrip.txt")

		b := NewBufferWithLines(lines...)
		if err := b.Save(path); err != nil {
			t.Fatalf("save: %v", err)
		}
		loaded := NewBuffer()
		loaded.Load(path)
		require.Equal(t, lines, loaded.Lines())
	})
}

func TestLoadMissingFileBindsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	b := NewBufferWithLines("old", "text")
	b.Load(path)
	require.Equal(t, []string{""}, b.Lines())
	require.Equal(t, path, b.FileName())

	require.NoError(t, b.Save(path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadUnreadableFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	b := NewBufferWithLines("old")
	b.Load(dir) // a directory cannot be read as a file
	require.Equal(t, []string{""}, b.Lines())
	require.Equal(t, "", b.FileName())
}

func TestSaveWithoutFileName(t *testing.T) {
	b := NewBufferWithLines("hi")
	err := b.Save("")
	require.Error(t, err)

	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	require.ErrorIs(t, err, ErrNoFileName)
	require.Equal(t, []string{"hi"}, b.Lines())
}

func TestSaveToUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	b := NewBufferWithLines("hi")
	b.InsertChar('!', 0, 2)

	err := b.Save(filepath.Join(dir, "missing", "file.txt"))
	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	require.Equal(t, "save", ioErr.Op)
	require.Contains(t, err.Error(), "file.txt")
	require.Equal(t, []string{"hi!"}, b.Lines())
	require.True(t, b.Modified())
}

func TestSaveClearsModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	b := NewBuffer()
	b.InsertChar('x', 0, 0)
	require.True(t, b.Modified())
	require.NoError(t, b.Save(path))
	require.False(t, b.Modified())
}
