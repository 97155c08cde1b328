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

// Package playmode plays a register log, or notes from the keyboard, through
// the host audio device in real time.
package playmode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/emuaudio/emulation"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/keyboard"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/otoaudio"
	"github.com/jetsetilly/emuaudio/performance"
	"github.com/jetsetilly/emuaudio/performance/limiter"
	"github.com/jetsetilly/emuaudio/pipeline"
	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/sdlaudio"
	"github.com/jetsetilly/emuaudio/version"
)

// List of valid sink names.
const (
	SinkOto = "OTO"
	SinkSDL = "SDL"
)

// SinkList is the list of host audio sinks.
var SinkList = []string{SinkOto, SinkSDL}

// how often the frame rate is measured
const measureInterval = time.Second

// Options for Play().
type Options struct {
	// register log to play. the keyboard is used if the string is empty
	Log string

	// host audio sink. one of the values in SinkList
	Sink string

	// frame rate of the emulation on the host. zero means the frame rate the
	// audio is configured for. the console frame rate is not changed, the
	// rate adapter is given the host frame time instead
	FPS float64

	// record the register writes that are played. if RecordFile is empty a
	// name is generated
	Record     bool
	RecordFile string
}

type playmode struct {
	p   *pipeline.Pipeline
	src source

	// called after every frame for sinks that must be fed
	push func() error

	rec *reglog.Writer

	lim   *limiter.FpsLimiter
	meter *performance.Meter

	intChan chan os.Signal

	// how long to wait for the sink to play the queued audio once the source
	// has finished
	linger time.Duration
}

// Play runs until the register log is exhausted, the quit key is pressed or
// the program is interrupted.
func Play(env *environment.Environment, opts Options) (rerr error) {
	p := pipeline.NewPipeline(env)
	defer p.Close()
	p.Configure()

	pl := &playmode{
		p:       p,
		intChan: make(chan os.Signal, 1),
		linger:  time.Second,
	}

	var name string

	if opts.Log != "" {
		f, err := os.Open(opts.Log)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		defer f.Close()
		pl.src = &logSource{r: reglog.NewReader(f)}
		name = strings.TrimSuffix(filepath.Base(opts.Log), filepath.Ext(opts.Log))
	} else {
		kb, err := keyboard.Open(keyboard.DefaultDevice)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		defer func() {
			if err := kb.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("playmode: %w", err)
			}
		}()

		keys := make(chan rune, 16)
		go func() {
			if err := kb.Service(keys); err != nil {
				logger.Log(env, "playmode", err)
			}
		}()

		pl.src = &keySource{keys: keys, ins: keyboard.NewInstrument()}
		name = "keyboard"
		logger.Log(logger.Allow, "playmode", keyboard.Help())
	}

	if opts.Record {
		fn := opts.RecordFile
		if fn == "" {
			fn = recordingName(name, time.Now())
		}
		f, err := os.Create(fn)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		defer func() {
			if err := pl.rec.Flush(); err != nil && rerr == nil {
				rerr = fmt.Errorf("playmode: %w", err)
			}
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("playmode: %w", err)
			}
		}()
		pl.rec = reglog.NewWriter(f, fmt.Sprintf("recorded from %s (%s)\n%s", name, env.Spec, version.String()))
		logger.Logf(env, "playmode", "recording to %s", fn)
	}

	switch strings.ToUpper(opts.Sink) {
	case SinkOto, "":
		aud, err := otoaudio.NewAudio(env, p.Adapter)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		defer aud.Close()
	case SinkSDL:
		aud, err := sdlaudio.NewAudio(env, p.Adapter)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
		defer aud.Close()
		pl.push = aud.Push
	default:
		return fmt.Errorf("playmode: unknown sink (%s)", opts.Sink)
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = p.Adapter.FrameRate()
	}
	pl.lim = limiter.NewFPSLimiter(fps)
	defer pl.lim.Close()
	pl.meter = performance.NewMeter(measureInterval)
	pl.hostFrameRate(fps)

	// the deferred functions above must run even when ctrl-c is pressed
	signal.Notify(pl.intChan, os.Interrupt)
	defer signal.Stop(pl.intChan)

	return pl.run()
}

// recordingName creates a file name for a recording that is unlikely to
// clash with an existing file.
func recordingName(name string, n time.Time) string {
	return fmt.Sprintf("recording_%s_%s.txt", name, n.Format("20060102_150405"))
}

// hostFrameRate gives the rate adapter the frame time of the host. The
// console frame rate stays as it is so that a frame of chip output is always
// one host frame of audio. Small variations in the measured rate are not
// worth a reconfiguration. Returns true if the adapter was reconfigured.
func (pl *playmode) hostFrameRate(fps float64) bool {
	fps = math.Round(fps)
	if fps <= 0 {
		return false
	}

	a := pl.p.Adapter
	if ft := a.FrameTime(); ft > 0 && math.Round(1/ft) == fps {
		return false
	}

	a.SetFrameTime(a.HostRate(), 1/fps)
	logger.Logf(pl.p.Env, "playmode", "audio reconfigured for %.0ffps on the host", fps)
	return true
}

func (pl *playmode) run() error {
	emu := pl.p.Emulation
	emu.SetState(emulation.Running)

	for pl.eventHandler() == emulation.Running {
		f, err := pl.src.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // for loop
			}
			return fmt.Errorf("playmode: %w", err)
		}

		if pl.rec != nil {
			if err := pl.rec.WriteFrame(f); err != nil {
				return fmt.Errorf("playmode: %w", err)
			}
		}

		emu.RunFrame(f)

		if pl.push != nil {
			if err := pl.push(); err != nil {
				return fmt.Errorf("playmode: %w", err)
			}
		}

		pl.lim.Wait()

		if fps, ok := pl.meter.Frame(time.Now()); ok {
			pl.hostFrameRate(fps)
		}
	}

	emu.SetState(emulation.Ending)
	emu.Flush()

	deadline := time.Now().Add(pl.linger)
	for pl.p.Queue.Size() > 0 && time.Now().Before(deadline) {
		if pl.push != nil {
			if err := pl.push(); err != nil {
				return fmt.Errorf("playmode: %w", err)
			}
		}
		time.Sleep(10 * time.Millisecond)
	}

	return nil
}
