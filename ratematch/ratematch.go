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

// Package ratematch keeps the rate of the sound chip consistent with the
// frame rate of the host display and connects the audio queue to the host
// audio device through a resampler.
//
// The chip is configured so that it produces exactly the number of native
// rate frames needed for one host video frame. The resampler then converts
// from the native rate to the host rate. If the measured host frame rate
// changes, UpdateRate() recalculates the chip rate.
package ratematch

import (
	"fmt"
	"math"
	"sync"

	"github.com/jetsetilly/emuaudio/audioqueue"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/resampler"
	"github.com/jetsetilly/emuaudio/sound"
)

// The range of measured frame rates accepted by UpdateRate(). Measurements
// outside this range are considered to be noise.
const (
	MinFrameRate = 50.0
	MaxFrameRate = 60.0
)

// Adapter connects a Sound instance and an audio queue to the host audio
// device.
type Adapter struct {
	env *environment.Environment
	snd *sound.Sound

	crit sync.Mutex

	queue *audioqueue.Queue

	// the fragment held by the consumer side of the queue
	consumer []int16

	resampler resampler.Resampler
	quality   resampler.Quality

	hostRate     int
	outputStereo bool

	// the duration of a host video frame in seconds
	frameTime float64

	// the frame rate the chip is currently configured for. zero if not yet
	// configured
	frameRate float64

	tiaSoundRate float64
}

// NewAdapter is the preferred method of initialisation for the Adapter type.
func NewAdapter(env *environment.Environment, snd *sound.Sound) *Adapter {
	return &Adapter{
		env: env,
		snd: snd,
	}
}

func (a *Adapter) String() string {
	a.crit.Lock()
	defer a.crit.Unlock()
	if a.resampler == nil {
		return "not configured"
	}
	return fmt.Sprintf("%.0fHz -> %dHz @ %.2ffps (%s)", a.tiaSoundRate, a.hostRate, a.frameRate, a.quality)
}

// Open attaches the audio queue. The Adapter is the consumer for the queue.
func (a *Adapter) Open(q *audioqueue.Queue) {
	a.crit.Lock()
	defer a.crit.Unlock()
	a.queue = q
	a.consumer = nil
	a.resampler = nil
}

// Close detaches the audio queue. The consumer fragment is returned to the
// queue.
func (a *Adapter) Close() {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.queue == nil {
		return
	}

	if err := a.queue.CloseSink(a.consumer); err != nil {
		logger.Log(a.env, "ratematch", err)
	}

	a.queue = nil
	a.consumer = nil
	a.resampler = nil
	a.frameRate = 0
}

// SetFrameTime sets the sample rate of the host audio device and the duration
// of a host video frame in seconds. The chip is configured for the frame rate
// in the preferences, or the nominal frame rate of the console if the
// preference is zero. A previously configured frame rate is kept.
func (a *Adapter) SetFrameTime(hostSampleRate int, frameTime float64) {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.queue == nil {
		logger.Log(a.env, "ratematch", "SetFrameTime() called before Open()")
		return
	}

	if hostSampleRate <= 0 || frameTime <= 0 {
		logger.Logf(a.env, "ratematch", "invalid frame time (%dHz, %fs)", hostSampleRate, frameTime)
		return
	}

	a.hostRate = hostSampleRate
	a.frameTime = frameTime
	a.quality = a.env.Prefs.Quality()
	a.outputStereo = a.env.Prefs.Stereo.Get().(bool)

	if a.frameRate == 0 {
		a.frameRate = a.env.Prefs.FrameRate.Get().(float64)
		if a.frameRate <= 0 {
			a.frameRate = a.env.Spec.FrameRate
		}
	}

	a.configForVideoFrameRate(a.frameRate)
}

// ConfigForVideoFrameRate configures the chip and the resampler for the
// frame rate.
func (a *Adapter) ConfigForVideoFrameRate(frameRate float64) {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.queue == nil {
		logger.Log(a.env, "ratematch", "ConfigForVideoFrameRate() called before Open()")
		return
	}

	a.configForVideoFrameRate(frameRate)
}

func (a *Adapter) configForVideoFrameRate(frameRate float64) {
	if a.frameTime <= 0 {
		logger.Log(a.env, "ratematch", "frame time has not been set")
		return
	}

	a.frameRate = frameRate
	a.tiaSoundRate = math.Round(audio.SampleFreq * frameRate * a.frameTime)
	a.snd.SetRate(a.tiaSoundRate, frameRate)

	// the source rate is the native rate and not tiaSoundRate. one video
	// frame of chip output is then resampled to exactly one frame time of
	// host output
	from := resampler.Format{
		SampleRate:   audio.SampleFreq,
		FragmentSize: a.queue.FragmentSize(),
		Stereo:       a.queue.IsStereo(),
	}
	to := resampler.Format{
		SampleRate:   a.hostRate,
		FragmentSize: a.queue.FragmentSize(),
		Stereo:       a.outputStereo,
	}
	a.resampler = resampler.New(a.quality, from, to, a.nextFragment)

	logger.Logf(a.env, "ratematch", "%.0fHz for %.2ffps: %s -> %s (%s)", a.tiaSoundRate, frameRate, from, to, a.quality)
}

// UpdateRate reconfigures the chip if the measured frame rate differs from
// the configured frame rate. Returns true if the chip was reconfigured.
func (a *Adapter) UpdateRate(measured float64) bool {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.queue == nil {
		logger.Log(a.env, "ratematch", "UpdateRate() called before Open()")
		return false
	}

	if measured == a.frameRate || measured < MinFrameRate || measured > MaxFrameRate {
		return false
	}

	a.configForVideoFrameRate(measured)
	return true
}

// nextFragment is the callback for the resampler. the lock is already held
// by FillAudio()
func (a *Adapter) nextFragment() []int16 {
	f := a.queue.Dequeue(a.consumer)
	if f != nil {
		a.consumer = f
	}
	return f
}

// FillAudio fills buf with the number of frames of host audio. buf must have
// room for frames * the number of output channels. Silence is produced if the
// Adapter is not configured.
//
// FillAudio is called by the host audio device, usually on its own goroutine.
func (a *Adapter) FillAudio(buf []float32, frames int) {
	a.crit.Lock()
	defer a.crit.Unlock()

	if a.resampler == nil {
		n := frames
		if a.outputStereo {
			n *= 2
		}
		clear(buf[:min(n, len(buf))])
		return
	}

	a.resampler.FillFragment(buf, frames)
}

// HostRate returns the sample rate of the host audio device.
func (a *Adapter) HostRate() int {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.hostRate
}

// OutputStereo returns true if FillAudio() produces stereo frames.
func (a *Adapter) OutputStereo() bool {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.outputStereo
}

// FrameRate returns the frame rate that the chip is configured for.
func (a *Adapter) FrameRate() float64 {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.frameRate
}

// FrameTime returns the duration of a host video frame in seconds.
func (a *Adapter) FrameTime() float64 {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.frameTime
}

// TIASoundRate returns the output rate of the chip.
func (a *Adapter) TIASoundRate() float64 {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.tiaSoundRate
}

// Underruns returns the number of times the resampler needed a fragment that
// was not available. The count restarts whenever the resampler is replaced.
func (a *Adapter) Underruns() int {
	a.crit.Lock()
	defer a.crit.Unlock()
	if a.resampler == nil {
		return 0
	}
	return a.resampler.Underruns()
}
