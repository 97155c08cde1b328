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
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/regqueue"
)

// Sound intercepts writes to the chip registers and schedules them during
// rendering.
type Sound struct {
	env *environment.Environment

	crit sync.Mutex

	chip  Chip
	queue *regqueue.Queue

	// number of output channels
	channels int

	// the CPU cycle of the most recent register write
	lastRegisterSetCycle int32

	// the output rate of the chip model and the number of frames required
	// for each video frame. tiaSoundRate is zero until SetRate() is called
	tiaSoundRate        float64
	framesPerVideoFrame float64

	// fractional frames carried between calls to ProcessAudio()
	frames float64
}

// NewSound is the preferred method of initialisation for the Sound type. The
// capacity of the register queue is taken from the preferences in the
// environment.
func NewSound(env *environment.Environment, chip Chip) *Sound {
	capacity := regqueue.DefaultCapacity
	if env.Prefs != nil {
		capacity = env.Prefs.RegQueueCapacity.Get().(int)
	}

	snd := &Sound{
		env:      env,
		chip:     chip,
		queue:    regqueue.NewQueue(env, capacity),
		channels: 1,
	}
	return snd
}

func (snd *Sound) String() string {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: ", snd.chip.Name()))
	s.WriteString(snd.queue.String())
	if snd.tiaSoundRate > 0 {
		s.WriteString(fmt.Sprintf(" @ %.0fHz (%.3f per frame)", snd.tiaSoundRate, snd.framesPerVideoFrame))
	}
	return s.String()
}

// Open prepares the chip for output with the number of channels specified.
// All pending writes are discarded.
func (snd *Sound) Open(channels int, extra bool) {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	if channels == 2 {
		snd.channels = 2
	} else {
		snd.channels = 1
	}
	snd.chip.Channels(snd.channels, extra)
	snd.reset()
}

// Close discards all pending writes. ProcessAudio() produces nothing until
// the next call to SetRate().
func (snd *Sound) Close() {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	snd.queue.Clear()
	snd.tiaSoundRate = 0
	snd.framesPerVideoFrame = 0
	snd.frames = 0
}

// Reset the chip and discard all pending writes.
func (snd *Sound) Reset() {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	snd.reset()
}

func (snd *Sound) reset() {
	snd.chip.Reset()
	snd.queue.Clear()
	snd.lastRegisterSetCycle = 0
	snd.frames = 0
}

// Channels returns the number of output channels.
func (snd *Sound) Channels() int {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	return snd.channels
}

// Set queues a write to a chip register. The cycle is the CPU cycle on which
// the write happened, relative to the same origin as previous writes.
func (snd *Sound) Set(addr uint16, value uint8, cycle int32) {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	// writes are never scheduled before the previous write
	delta := max(float64(cycle-snd.lastRegisterSetCycle)/snd.env.Spec.CPUClock, 0)

	snd.queue.Enqueue(regqueue.RegisterWrite{
		Address: addr,
		Value:   value,
		Delta:   delta,
	})
	snd.lastRegisterSetCycle = cycle
}

// Get returns the applied value of a chip register. Pending writes are not
// visible until they have been applied by ProcessAudio().
func (snd *Sound) Get(addr uint16) uint8 {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	return snd.chip.Get(addr)
}

// Pending returns the number of writes that have not been applied.
func (snd *Sound) Pending() int {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	return snd.queue.Size()
}

// PendingDuration returns the total time covered by the pending writes.
func (snd *Sound) PendingDuration() float64 {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	return snd.queue.Duration()
}

// AdjustCycleCounter moves the cycle of the most recent write. Used when the
// CPU cycle counter is rebased, for example at the end of every video frame.
func (snd *Sound) AdjustCycleCounter(amount int32) {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	snd.lastRegisterSetCycle += amount
}

// SetRate sets the output rate of the chip and the video frame rate. The
// number of frames produced by each call to ProcessAudio() averages
// tiaSoundRate / frameRate.
func (snd *Sound) SetRate(tiaSoundRate float64, frameRate float64) {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	if tiaSoundRate <= 0 || frameRate <= 0 {
		logger.Logf(snd.env, "sound", "invalid rate (%.2fHz at %.2ffps)", tiaSoundRate, frameRate)
		return
	}

	snd.tiaSoundRate = tiaSoundRate
	snd.framesPerVideoFrame = tiaSoundRate / frameRate
	snd.chip.OutputFrequency(tiaSoundRate)
}

// Rate returns the output rate of the chip and the number of frames per video
// frame. Both values are zero if SetRate() has not been called.
func (snd *Sound) Rate() (float64, float64) {
	snd.crit.Lock()
	defer snd.crit.Unlock()
	return snd.tiaSoundRate, snd.framesPerVideoFrame
}

// ProcessAudio renders the audio for one video frame into buf, applying the
// pending register writes at the correct points. buf must have room for
// maxLength frames. Returns the number of frames rendered.
//
// The number of frames required for the video frame exceeding maxLength is a
// programming error and will panic.
func (snd *Sound) ProcessAudio(buf []int16, maxLength int) int {
	snd.crit.Lock()
	defer snd.crit.Unlock()

	if snd.tiaSoundRate <= 0 {
		return 0
	}

	var length float64
	length, snd.frames = math.Modf(snd.frames + snd.framesPerVideoFrame)

	total := int(length)
	if total > maxLength {
		panic(fmt.Sprintf("sound: frame requires %d frames but buffer has room for %d", total, maxLength))
	}

	// if the pending writes cover more time than this frame, apply the oldest
	// writes immediately so that the queue does not fall further behind
	excess := snd.queue.Duration() - length/snd.tiaSoundRate
	var removed float64
	for removed < excess && snd.queue.Size() > 0 {
		w := snd.queue.Front()
		removed += w.Delta
		snd.chip.Set(w.Address, w.Value)
		snd.queue.Dequeue()
	}

	snd.render(buf, total, length)

	return total
}

// render the number of frames given by length into buf, applying queued
// writes as their deltas fall due. a write that falls after the end of the
// frame remains queued with its delta reduced by the duration of the frame.
func (snd *Sound) render(buf []int16, total int, length float64) {
	position := 0.0
	remaining := length

	// rest renders the remainder of the frame with the current state
	rest := func() {
		p := int(position)
		if p < total {
			snd.chip.Process(buf[p*snd.channels:], total-p)
		}
	}

	for remaining > 0 {
		if snd.queue.Size() == 0 {
			rest()

			// the time between the end of this frame and the next write is
			// lost. this is not exactly correct but the difference is small
			snd.lastRegisterSetCycle = 0
			return
		}

		w := snd.queue.Front()
		duration := remaining / snd.tiaSoundRate

		if w.Delta <= duration {
			if w.Delta > 0 {
				samples := snd.tiaSoundRate * w.Delta
				p := int(position)

				// rounding the end position rather than the number of
				// samples means that errors do not accumulate
				n := min(int(position+samples)-p, total-p)

				snd.chip.Process(buf[p*snd.channels:], n)
				position += samples
				remaining -= samples
			}
			snd.chip.Set(w.Address, w.Value)
			snd.queue.Dequeue()
		} else {
			// after pruning by ProcessAudio() the queue never covers more
			// than the frame, so this is reached through rounding in the
			// sample positions. the write stays queued for the next frame
			rest()
			w.Delta -= duration
			return
		}
	}

	// the final write landed on the end of the frame
	rest()
}
