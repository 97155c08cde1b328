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

package sound

import (
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/savestate"
)

// ErrStateMismatch is returned by Load() when the state section was not
// created for the chip.
var ErrStateMismatch = errors.New("state mismatch")

// Save writes the applied register state and the cycle counter. Pending
// writes are not saved.
func (snd *Sound) Save(w io.Writer) error {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	enc := savestate.NewEncoder(w)
	enc.String(snd.chip.Name())
	for _, addr := range audio.RegisterOrder {
		enc.Uint8(snd.chip.Get(addr))
	}
	enc.Int32(snd.lastRegisterSetCycle)

	if err := enc.Err(); err != nil {
		err = fmt.Errorf("sound: save: %w", err)
		logger.Log(snd.env, "sound", err)
		return err
	}
	return nil
}

// Load restores state written by Save(). Nothing is changed unless the
// entire state is read successfully. Pending writes are discarded on success.
func (snd *Sound) Load(r io.Reader) error {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	dec := savestate.NewDecoder(r)

	name := dec.String()
	if err := dec.Err(); err != nil {
		err = fmt.Errorf("sound: load: %w", err)
		logger.Log(snd.env, "sound", err)
		return err
	}
	if name != snd.chip.Name() {
		err := fmt.Errorf("sound: load: %w (%q is not %q)", ErrStateMismatch, name, snd.chip.Name())
		logger.Log(snd.env, "sound", err)
		return err
	}

	var regs [len(audio.RegisterOrder)]uint8
	for i := range regs {
		regs[i] = dec.Uint8()
	}
	cycle := dec.Int32()

	if err := dec.Err(); err != nil {
		err = fmt.Errorf("sound: load: %w", err)
		logger.Log(snd.env, "sound", err)
		return err
	}

	for i, addr := range audio.RegisterOrder {
		snd.chip.Set(addr, regs[i])
	}
	snd.lastRegisterSetCycle = cycle
	snd.queue.Clear()

	return nil
}
