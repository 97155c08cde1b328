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

package ratematch_test

import (
	"math"
	"strings"
	"testing"

	"github.com/jetsetilly/emuaudio/audioqueue"
	"github.com/jetsetilly/emuaudio/console"
	"github.com/jetsetilly/emuaudio/emulation"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/hardware/tia/audio"
	"github.com/jetsetilly/emuaudio/hardware/tia/audio/mix"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/ratematch"
	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/resources"
	"github.com/jetsetilly/emuaudio/sound"
	"github.com/jetsetilly/emuaudio/test"
)

type fixture struct {
	env *environment.Environment
	snd *sound.Sound
	q   *audioqueue.Queue
	a   *ratematch.Adapter
}

func newFixture(t *testing.T, spec console.Spec) fixture {
	t.Helper()
	resources.SetBasePath(t.TempDir())
	t.Cleanup(func() { resources.SetBasePath("") })

	env, err := environment.NewEnvironment(environment.MainEmulation, spec, nil)
	test.DemandSuccess(t, err)

	snd := sound.NewSound(env, audio.NewTIASound())
	snd.Open(1, false)

	return fixture{
		env: env,
		snd: snd,
		q:   audioqueue.NewQueue(env, 512, 20, false),
		a:   ratematch.NewAdapter(env, snd),
	}
}

func TestBeforeOpen(t *testing.T) {
	f := newFixture(t, console.NTSC)

	logger.Clear()
	f.a.SetFrameTime(48000, 1.0/60.0)
	test.ExpectFailure(t, f.a.UpdateRate(55))
	f.a.ConfigForVideoFrameRate(60)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, strings.Count(w.String(), "before Open()"), 3)

	// nothing has been configured
	rate, _ := f.snd.Rate()
	test.ExpectEquality(t, rate, 0.0)
	test.ExpectEquality(t, f.a.FrameRate(), 0.0)

	// silence is produced
	buf := []float32{1, 1, 1, 1}
	f.a.FillAudio(buf, 4)
	for i := range buf {
		test.ExpectEquality(t, buf[i], 0.0, i)
	}
}

func TestSetFrameTime(t *testing.T) {
	f := newFixture(t, console.NTSC)
	f.a.Open(f.q)
	f.a.SetFrameTime(48000, 1.0/60.0)

	test.ExpectEquality(t, f.a.FrameRate(), 60.0)
	test.ExpectEquality(t, f.a.TIASoundRate(), float64(audio.SampleFreq))
	test.ExpectEquality(t, f.a.HostRate(), 48000)

	rate, perFrame := f.snd.Rate()
	test.ExpectEquality(t, rate, float64(audio.SampleFreq))
	test.ExpectApproximate(t, perFrame, audio.SampleFreq/60.0, 1e-9)
}

func TestDefaultFrameRate(t *testing.T) {
	f := newFixture(t, console.PAL)
	f.a.Open(f.q)
	f.a.SetFrameTime(48000, 1.0/60.0)

	// the nominal frame rate of the console is used but the host frame time
	// decides the rate of the chip
	test.ExpectEquality(t, f.a.FrameRate(), 50.0)
	test.ExpectEquality(t, f.a.TIASoundRate(), math.Round(audio.SampleFreq*50.0/60.0))

	// the preference takes priority
	g := newFixture(t, console.PAL)
	g.env.Prefs.FrameRate.Set(55.0)
	g.a.Open(g.q)
	g.a.SetFrameTime(48000, 1.0/55.0)
	test.ExpectEquality(t, g.a.FrameRate(), 55.0)
	test.ExpectEquality(t, g.a.TIASoundRate(), float64(audio.SampleFreq))
}

func TestUpdateRate(t *testing.T) {
	f := newFixture(t, console.NTSC)
	f.a.Open(f.q)
	f.a.SetFrameTime(48000, 1.0/60.0)

	// no change
	test.ExpectFailure(t, f.a.UpdateRate(60.0))

	test.ExpectSuccess(t, f.a.UpdateRate(59.94))
	test.ExpectEquality(t, f.a.FrameRate(), 59.94)
	test.ExpectEquality(t, f.a.TIASoundRate(), math.Round(audio.SampleFreq*59.94/60.0))
	rate, _ := f.snd.Rate()
	test.ExpectEquality(t, rate, f.a.TIASoundRate())

	// repeated measurement
	test.ExpectFailure(t, f.a.UpdateRate(59.94))

	// out of band
	test.ExpectFailure(t, f.a.UpdateRate(49.99))
	test.ExpectFailure(t, f.a.UpdateRate(60.01))
	test.ExpectFailure(t, f.a.UpdateRate(144))
	test.ExpectEquality(t, f.a.FrameRate(), 59.94)

	// the band is inclusive
	test.ExpectSuccess(t, f.a.UpdateRate(50))
	test.ExpectSuccess(t, f.a.UpdateRate(60))
}

func TestFillAudio(t *testing.T) {
	f := newFixture(t, console.NTSC)
	f.env.Prefs.ResampleQuality.Set("NEAREST")
	f.a.Open(f.q)
	f.a.SetFrameTime(audio.SampleFreq, 1.0/60.0)

	emu := emulation.NewEmulation(f.env, f.snd, f.q)
	emu.RunFrame(reglog.Frame{Writes: []reglog.Write{
		{Cycle: 0, Address: audio.AUDV0, Value: 0x0f},
	}})
	emu.RunFrame(reglog.Frame{})
	test.ExpectEquality(t, f.q.Size(), 2)

	buf := make([]float32, 512)
	f.a.FillAudio(buf, len(buf))
	expected := float32(mix.Mono(15, 0)) / 32768.0
	for i := range buf {
		test.DemandEquality(t, buf[i], expected, i)
	}
	// the second fragment is taken when the first is exhausted
	test.ExpectEquality(t, f.q.Size(), 0)
	test.ExpectEquality(t, f.a.Underruns(), 0)

	// detaching returns the consumer fragment to the queue
	f.a.Close()
	test.ExpectEquality(t, f.a.FrameRate(), 0.0)
	f.a.FillAudio(buf, len(buf))
	test.ExpectEquality(t, buf[0], 0.0)
}

func TestHostOutputPerFrame(t *testing.T) {
	f := newFixture(t, console.NTSC)
	f.a.Open(f.q)
	f.a.SetFrameTime(48000, 1.0/60.0)

	// a frame of chip output at the native rate is one frame time of host
	// output
	_, perFrame := f.snd.Rate()
	host := perFrame * 48000 / audio.SampleFreq
	test.ExpectApproximate(t, host, 800.0, 1e-9)
}

func TestHostFrameTime(t *testing.T) {
	f := newFixture(t, console.NTSC)
	f.a.Open(f.q)
	f.a.SetFrameTime(48000, 1.0/60.0)

	// the host runs at 50fps while the console is still a 60Hz machine
	f.a.SetFrameTime(48000, 1.0/50.0)
	test.ExpectEquality(t, f.a.FrameRate(), 60.0)
	test.ExpectApproximate(t, f.a.FrameTime(), 1.0/50.0, 1e-12)

	// one second of host frames produces one second of native output, which
	// the resampler converts to one second of host audio
	_, perFrame := f.snd.Rate()
	native := perFrame * 50
	test.ExpectApproximate(t, native, float64(audio.SampleFreq), 1e-4)
	test.ExpectApproximate(t, native*48000/audio.SampleFreq, 48000.0, 1e-4)

	// treating the host rate as a console rate starves the device
	g := newFixture(t, console.NTSC)
	g.a.Open(g.q)
	g.a.SetFrameTime(48000, 1.0/60.0)
	test.ExpectSuccess(t, g.a.UpdateRate(50))
	_, perFrame = g.snd.Rate()
	test.ExpectInequality(t, math.Round(perFrame*50), float64(audio.SampleFreq))
}
