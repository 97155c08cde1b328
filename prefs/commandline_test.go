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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/emuaudio/prefs"
	"github.com/jetsetilly/emuaudio/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// single value but with additional space
	prefs.PushCommandLineStack("   foo:: bar ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")

	// more than one key/value in the prefs string. remaining string will
	// will be sorted
	prefs.PushCommandLineStack("foo::bar; baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux; foo::bar")

	// check invalid prefs string
	prefs.PushCommandLineStack("foo_bar")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// check (partically) invalid prefs string
	prefs.PushCommandLineStack("foo_bar;baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// get prefs value that doesn't exist after pushing a parially invalid prefs string
	prefs.PushCommandLineStack("foo::bar;baz_qux")
	ok, _ := prefs.GetCommandLinePref("baz")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestCommandLineStack(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("foo::bar")

	// add another command line group
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

func TestCommandLineAudioKeys(t *testing.T) {
	prefs.PushCommandLineStack("audio.stereo::true; audio.sampleRate:: 44100")

	ok, v := prefs.GetCommandLinePref("audio.sampleRate")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "44100")

	// the value is removed once it has been taken
	ok, _ = prefs.GetCommandLinePref("audio.sampleRate")
	test.ExpectFailure(t, ok)

	// audio.stereo was never taken so it is still in the group
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "audio.stereo::true")
}

func TestCommandLineOverridesDisk(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var rate prefs.Int
	var stereo prefs.Bool
	test.ExpectSuccess(t, dsk.Add("audio.sampleRate", &rate))
	test.ExpectSuccess(t, dsk.Add("audio.stereo", &stereo))
	test.ExpectSuccess(t, rate.Set(48000))
	test.ExpectSuccess(t, stereo.Set(false))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("audio.sampleRate::22050; audio.resampleQuality::fast")
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, rate.Get().(int), 22050)
	test.ExpectEquality(t, stereo.Get().(bool), false)

	// keys that the disk does not know about remain in the group
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "audio.resampleQuality::fast")

	// the command line value is not saved unless asked for
	cmpTmpFile(t, fn, "audio.sampleRate :: 48000\naudio.stereo :: false\n")
}
