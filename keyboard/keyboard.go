// This file is part of emuaudio.
//
// emuaudio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// emuaudio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with emuaudio.  If not, see <https://www.gnu.org/licenses/>.

// Package keyboard reads single key presses from the terminal and turns them
// into sound register writes. It allows the audio pipeline to be played like
// a simple musical instrument.
//
// The terminal is put into cbreak mode while the keyboard is open. Close()
// must be called to restore the terminal.
package keyboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/pkg/term"
)

// DefaultDevice is the terminal device used by Open() when no device is
// specified.
const DefaultDevice = "/dev/tty"

// Keyboard reads key presses from a terminal.
type Keyboard struct {
	t *term.Term
}

// Open the terminal device and put it into cbreak mode.
func Open(device string) (*Keyboard, error) {
	if device == "" {
		device = DefaultDevice
	}
	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	return &Keyboard{t: t}, nil
}

// ReadKey blocks until a key is pressed.
func (kb *Keyboard) ReadKey() (rune, error) {
	b := make([]byte, 1)
	_, err := kb.t.Read(b)
	if err != nil {
		return 0, fmt.Errorf("keyboard: %w", err)
	}
	return rune(b[0]), nil
}

// Service reads key presses and sends them to the channel until an error
// occurs or the quit key is pressed. The channel is closed on return.
func (kb *Keyboard) Service(keys chan<- rune) error {
	defer close(keys)
	for {
		k, err := kb.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		keys <- k
		if k == KeyQuit {
			return nil
		}
	}
}

// Close restores the terminal to the mode it was in before Open().
func (kb *Keyboard) Close() error {
	var err error
	if e := kb.t.Restore(); e != nil {
		err = fmt.Errorf("keyboard: %w", e)
	}
	if e := kb.t.Close(); e != nil && err == nil {
		err = fmt.Errorf("keyboard: %w", e)
	}
	return err
}
