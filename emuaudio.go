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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/emuaudio/console"
	"github.com/jetsetilly/emuaudio/digest"
	"github.com/jetsetilly/emuaudio/environment"
	"github.com/jetsetilly/emuaudio/keyboard"
	"github.com/jetsetilly/emuaudio/logger"
	"github.com/jetsetilly/emuaudio/modalflag"
	"github.com/jetsetilly/emuaudio/performance"
	"github.com/jetsetilly/emuaudio/pipeline"
	"github.com/jetsetilly/emuaudio/playmode"
	"github.com/jetsetilly/emuaudio/prefs"
	"github.com/jetsetilly/emuaudio/reference"
	"github.com/jetsetilly/emuaudio/reglog"
	"github.com/jetsetilly/emuaudio/statsview"
	"github.com/jetsetilly/emuaudio/version"
	"github.com/jetsetilly/emuaudio/wavwriter"
	"golang.org/x/term"
)

// exit values
const (
	exitOK    = 0
	exitParse = 10
	exitMode  = 20
)

// options that apply to every mode
type globals struct {
	spec      *string
	prefs     *string
	log       *bool
	statsview *bool
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)

	g := globals{
		spec:  md.AddString("spec", "NTSC", fmt.Sprintf("console specification: %s", strings.Join(console.SpecList, ", "))),
		prefs: md.AddString("prefs", "", "preference overrides. eg. \"audio.stereo::true; audio.sampleRate::44100\""),
		log:   md.AddBool("log", false, "echo log to the terminal"),
	}
	if statsview.Available() {
		g.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress))
	}

	md.AddSubMode("RENDER", "render a register log to a WAV file")
	md.AddSubMode("PLAY", "play a register log or the keyboard through the host audio device")
	md.AddSubMode("COMPARE", "render a register log and compare it with a reference recording")
	md.AddSubMode("INSPECT", "render a register log and output a graph of the audio pipeline")
	md.AddSubMode("PREFS", "list or change the audio preferences")
	md.AddSubMode("VERSION", "print the version and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	if md.Mode() == "VERSION" {
		fmt.Fprintln(output, version.String())
		return exitOK
	}

	if *g.log {
		echo := io.Writer(os.Stdout)

		// keep redirected output free of log entries
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			echo = os.Stderr
		}
		logger.SetEcho(echo, false)
		defer logger.SetEcho(nil, false)
	}

	if g.statsview != nil && *g.statsview {
		stop := statsview.Launch(output, statsview.DefaultAddress)
		defer stop()
	}

	if *g.prefs != "" {
		prefs.PushCommandLineStack(*g.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Fprintf(output, "* unused preferences: %s\n", unused)
			}
		}()
	}

	spec, err := console.Lookup(*g.spec)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, spec, nil)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "RENDER":
		err = render(md, env, output)
	case "PLAY":
		err = play(md, env)
	case "COMPARE":
		err = compare(md, env, output)
	case "INSPECT":
		err = inspect(md, env, output)
	case "PREFS":
		err = preferences(md, env, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitMode
	}

	return exitOK
}

// oneArg returns the only remaining argument of the current mode.
func oneArg(md *modalflag.Modes, what string) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("%s required for %s mode", what, md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

// renderLog runs the register log through a new pipeline. The output
// function receives host audio as it is produced.
func renderLog(env *environment.Environment, filename string, output func([]float32) error) (*pipeline.Pipeline, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	p := pipeline.NewPipeline(env)
	p.Configure()

	n, err := p.Render(reglog.NewReader(f), output)
	if err != nil {
		p.Close()
		return nil, n, err
	}

	return p, n, nil
}

func render(md *modalflag.Modes, env *environment.Environment, output io.Writer) error {
	md.NewMode()
	wav := md.AddString("wav", "", "output file. defaults to the name of the register log with the .wav extension")
	profile := md.AddString("profile", "NONE", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")
	stats := md.AddBool("stats", false, "print render speed")
	showDigest := md.AddBool("digest", false, "print digest of the rendered audio")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := oneArg(md, "register log")
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *wav == "" {
		*wav = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".wav"
	}

	aw, err := wavwriter.New(env, *wav, env.Prefs.SampleRate.Get().(int), env.Prefs.Stereo.Get().(bool))
	if err != nil {
		return err
	}

	var frames int
	start := time.Now()
	dig := digest.NewAudio()

	err = performance.RunProfiler(prf, "render", func() error {
		var p *pipeline.Pipeline
		var err error
		p, frames, err = renderLog(env, filename, func(buf []float32) error {
			aw.WriteFloat32(buf)
			dig.WriteFloat32(buf)
			return nil
		})
		if err != nil {
			return err
		}
		p.Close()
		return nil
	})
	if err != nil {
		return err
	}

	if *stats {
		fps, accuracy := performance.CalcFPS(env.Spec, frames, time.Since(start).Seconds())
		fmt.Fprintf(output, "%d frames in %.2f fps (%.0f%% of %s)\n", frames, fps, accuracy, env.Spec)
	}

	if err := aw.Close(); err != nil {
		return err
	}

	fmt.Fprintf(output, "%s: %d frames\n", *wav, aw.Frames())
	if *showDigest {
		fmt.Fprintf(output, "digest: %s\n", dig)
	}
	return nil
}

func play(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	sink := md.AddString("sink", playmode.SinkOto, fmt.Sprintf("host audio sink: %s", strings.Join(playmode.SinkList, ", ")))
	fps := md.AddFloat64("fps", 0, "emulation frame rate. zero for the configured audio frame rate")
	record := md.AddBool("record", false, "record the register writes that are played")
	recordFile := md.AddString("recordFile", "", "name of recording. a name is generated if not specified")
	md.AdditionalHelp(fmt.Sprintf("without a register log notes are played from the keyboard\n%s", keyboard.Help()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var filename string
	switch len(md.RemainingArgs()) {
	case 0:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("keyboard input requires a terminal")
		}
	case 1:
		filename = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return playmode.Play(env, playmode.Options{
		Log:        filename,
		Sink:       *sink,
		FPS:        *fps,
		Record:     *record || *recordFile != "",
		RecordFile: *recordFile,
	})
}

func compare(md *modalflag.Modes, env *environment.Environment, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("register log and reference recording required for %s mode", md)
	}

	ref, err := reference.Load(env, md.GetArg(1))
	if err != nil {
		return err
	}

	// render at the rate of the reference recording
	if err := env.Prefs.SampleRate.Set(ref.SampleRate); err != nil {
		return err
	}

	rendered := reference.PCM{SampleRate: ref.SampleRate}
	stereo := env.Prefs.Stereo.Get().(bool)

	pl, _, err := renderLog(env, md.GetArg(0), func(buf []float32) error {
		if !stereo {
			rendered.Data = append(rendered.Data, buf...)
			return nil
		}
		for i := 0; i < len(buf); i += 2 {
			rendered.Data = append(rendered.Data, buf[i])
		}
		return nil
	})
	if err != nil {
		return err
	}
	pl.Close()

	d, err := reference.Compare(rendered, ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "rendered %.2fs, reference %.2fs\n", rendered.Duration(), ref.Duration())
	fmt.Fprintln(output, d)
	return nil
}

func inspect(md *modalflag.Modes, env *environment.Environment, output io.Writer) error {
	md.NewMode()
	out := md.AddString("out", "", "write graph to file rather than the terminal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := oneArg(md, "register log")
	if err != nil {
		return err
	}

	pl, _, err := renderLog(env, filename, func([]float32) error { return nil })
	if err != nil {
		return err
	}
	defer pl.Close()

	w := output
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	memviz.Map(w, pl)
	return nil
}

func preferences(md *modalflag.Modes, env *environment.Environment, output io.Writer) error {
	md.NewMode()
	md.AddSubMode("LIST", "list the current preferences")
	md.AddSubMode("SET", "set a preference: SET <key> <value>")
	md.AddSubMode("DEFAULTS", "revert all preferences to the default values")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "LIST":
		io.WriteString(output, env.Prefs.String())
		return nil

	case "SET":
		if len(md.RemainingArgs()) != 2 {
			return errors.New("key and value required")
		}
		if err := env.Prefs.Set(md.GetArg(0), md.GetArg(1)); err != nil {
			return err
		}

	case "DEFAULTS":
		env.Prefs.SetDefaults()
	}

	return env.Prefs.Save()
}
