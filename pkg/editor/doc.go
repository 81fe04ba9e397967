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

// Package editor implements the core text editing functions of kestrel.
// A Buffer holds the lines of a file as rows of runes, one rune per cell.
// A Window is a view of a buffer with a cursor and a scroll offset that
// is recomputed before each frame. The Editor ties one window to one
// buffer and is what the commander and the screen talk to.
package editor
