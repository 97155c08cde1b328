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

// Package emulation drives the audio pipeline one video frame at a time. For
// each frame the register writes are passed to the Sound instance, the
// cycle counter is rebased to the start of the next frame and the audio for
// the frame is rendered and pushed into the audio queue.
package emulation

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/jetsetilly/emuaudio/audioqueue"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/sound"
)

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// Values are ordered so that order comparisons are meaningful. For example,
// Running is "greater than" Paused.
const (
	Initialising State = iota
	Paused
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case Initialising:
		return "initialising"
	case Paused:
		return "paused"
	case Running:
		return "running"
	case Ending:
		return "ending"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Emulation is the frame driver.
type Emulation struct {
	env *environment.Environment
	snd *sound.Sound

	queue  *audioqueue.Queue
	writer *audioqueue.Writer

	// render buffer. grows as required by the rate of the sound chip
	buf       []int16
	maxLength int

	frameNum int

	// the state can be changed from the GUI or input goroutine
	state atomic.Int32
}

// NewEmulation is the preferred method of initialisation for the Emulation
// type. The Emulation becomes the producer for the queue.
func NewEmulation(env *environment.Environment, snd *sound.Sound, queue *audioqueue.Queue) *Emulation {
	emu := &Emulation{
		env:    env,
		snd:    snd,
		queue:  queue,
		writer: audioqueue.NewWriter(queue),
	}
	emu.state.Store(int32(Initialising))
	return emu
}

func (emu *Emulation) String() string {
	return fmt.Sprintf("frame %d [%s] %s", emu.frameNum, emu.State(), emu.snd)
}

// State returns the current state of the emulation.
func (emu *Emulation) State() State {
	return State(emu.state.Load())
}

// SetState changes the state of the emulation.
func (emu *Emulation) SetState(state State) {
	emu.state.Store(int32(state))
}

// FrameNum returns the number of frames run.
func (emu *Emulation) FrameNum() int {
	return emu.frameNum
}

// Sound returns the Sound instance driven by the emulation.
func (emu *Emulation) Sound() *sound.Sound {
	return emu.snd
}

// RunFrame runs one video frame. The cycle of each write is relative to the
// start of the frame. Returns the number of audio frames rendered.
func (emu *Emulation) RunFrame(f reglog.Frame) int {
	for _, w := range f.Writes {
		emu.snd.Set(w.Address, w.Value, w.Cycle)
	}

	// the cycle counter for the next frame starts from zero
	emu.snd.AdjustCycleCounter(-int32(emu.env.Spec.CyclesPerFrame()))

	// make sure the buffer is large enough for the number of frames required
	// by the current rate
	_, perFrame := emu.snd.Rate()
	if required := int(math.Ceil(perFrame)) + 1; required > emu.maxLength {
		emu.maxLength = required
		emu.buf = make([]int16, emu.maxLength*2)
	}

	n := emu.snd.ProcessAudio(emu.buf, emu.maxLength)
	emu.writer.Write(emu.buf[:n*emu.snd.Channels()])
	emu.frameNum++

	return n
}

// Flush any partially filled fragment to the audio queue. Should be called
// when there are no more frames to run.
func (emu *Emulation) Flush() {
	emu.writer.Flush()
}
