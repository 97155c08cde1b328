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

// Package pipeline assembles the audio components: the TIA sound model
// behind the deferred register interception, the fragment queue, the frame
// driver and the rate adapter.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/emuaudio/audioqueue"
	"github.com/jetsetilly/emuaudio/emulation"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/ratematch"
	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/sound"
)

// the number of fragments that must be waiting in the queue before the
// renderer pulls host audio. the resampler then never runs dry
const renderLead = 2

// size of host audio chunks pulled once the register log is exhausted
const drainChunk = 64

// Pipeline is the complete audio path from register writes to host audio.
type Pipeline struct {
	Env       *environment.Environment
	Sound     *sound.Sound
	Queue     *audioqueue.Queue
	Emulation *emulation.Emulation
	Adapter   *ratematch.Adapter
}

// NewPipeline is the preferred method of initialisation for the Pipeline
// type. The shape of the pipeline is taken from the preferences in the
// environment.
func NewPipeline(env *environment.Environment) *Pipeline {
	stereo := env.Prefs.Stereo.Get().(bool)

	p := &Pipeline{
		Env:   env,
		Sound: sound.NewSound(env, audio.NewTIASound()),
	}

	if stereo {
		p.Sound.Open(2, true)
	} else {
		p.Sound.Open(1, false)
	}

	p.Queue = audioqueue.NewQueue(env,
		env.Prefs.FragmentSize.Get().(int),
		env.Prefs.QueueCapacity.Get().(int),
		stereo)

	p.Emulation = emulation.NewEmulation(env, p.Sound, p.Queue)
	p.Adapter = ratematch.NewAdapter(env, p.Sound)
	p.Adapter.Open(p.Queue)

	return p
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("%s\n%s\n%s", p.Emulation, p.Queue, p.Adapter)
}

// Configure the rate adapter for the sample rate in the preferences and a
// host frame time matching the frame rate. Returns the number of output
// channels.
func (p *Pipeline) Configure() int {
	rate := p.Env.Prefs.SampleRate.Get().(int)

	frameRate := p.Env.Prefs.FrameRate.Get().(float64)
	if frameRate <= 0 {
		frameRate = p.Env.Spec.FrameRate
	}

	p.Adapter.SetFrameTime(rate, 1.0/frameRate)

	if p.Adapter.OutputStereo() {
		return 2
	}
	return 1
}

// Close the pipeline. The Pipeline cannot be used after Close().
func (p *Pipeline) Close() {
	p.Adapter.Close()
	p.Sound.Close()
}

// Render runs every frame from the register log and passes host audio to
// the output function as it becomes available. The Pipeline must have been
// configured. Returns the number of video frames run.
//
// The slice passed to the output function is reused on the next call.
func (p *Pipeline) Render(r *reglog.Reader, output func([]float32) error) (int, error) {
	channels := 1
	if p.Adapter.OutputStereo() {
		channels = 2
	}

	frameRate := p.Adapter.FrameRate()
	if frameRate <= 0 {
		return 0, fmt.Errorf("pipeline: rate adapter has not been configured")
	}
	hostPerFrame := float64(p.Adapter.HostRate()) / frameRate

	fragSize := p.Queue.FragmentSize()
	buf := make([]float32, fragSize*channels)

	// host frames that are due but not yet pulled from the adapter
	var owed float64

	pull := func(frames int) error {
		p.Adapter.FillAudio(buf, frames)
		owed -= float64(frames)
		return output(buf[:frames*channels])
	}

	p.Emulation.SetState(emulation.Running)
	defer p.Emulation.SetState(emulation.Ending)

	for {
		f, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // for loop
			}
			return p.Emulation.FrameNum(), fmt.Errorf("pipeline: %w", err)
		}

		p.Emulation.RunFrame(f)
		owed += hostPerFrame

		for p.Queue.Size() >= renderLead && owed >= 1 {
			if err := pull(min(int(owed), fragSize)); err != nil {
				return p.Emulation.FrameNum(), err
			}
		}
	}

	p.Emulation.Flush()

	for p.Queue.Size() > 0 && owed >= 1 {
		if err := pull(min(int(owed), drainChunk)); err != nil {
			return p.Emulation.FrameNum(), err
		}
	}

	if n := p.Adapter.Underruns(); n > 0 {
		logger.Logf(p.Env, "pipeline", "%d underruns during render", n)
	}

	return p.Emulation.FrameNum(), nil
}
