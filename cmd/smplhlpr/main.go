// SPDX-License-Identifier: EPL-2.0

// Command smplhlpr loads an audio sample, applies effects to it and plays or
// saves the result.
//
//	smplhlpr -bits 8 -pitch -3 -loop-start 1s -loop-end 2s -repeat 4 -play break.wav
//	smplhlpr -i break.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ik5/smplhlpr"
	"github.com/ik5/smplhlpr/log"
	"github.com/ik5/smplhlpr/output"
	"github.com/sirupsen/logrus"
)

type options struct {
	in          string
	out         string
	bits        int
	rate        int
	pitch       float64
	gain        float64
	pan         float64
	distort     float64
	loopStart   time.Duration
	loopEnd     time.Duration
	repeat      int
	play        bool
	device      string
	interactive bool
	autoRestart bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("smplhlpr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.in, "in", "", "input audio file (or first argument)")
	fs.StringVar(&o.out, "out", "", "save the processed sample to this file")
	fs.IntVar(&o.bits, "bits", 16, "bit depth, 1-16")
	fs.IntVar(&o.rate, "rate", 0, "degrade to this sample rate in Hz (default: the file's rate)")
	fs.Float64Var(&o.pitch, "pitch", 0, "pitch shift in semitones")
	fs.Float64Var(&o.gain, "gain", 0, "volume change in dB")
	fs.Float64Var(&o.pan, "pan", 0, "pan, -1 (left) to 1 (right); stereo only")
	fs.Float64Var(&o.distort, "distort", 0, "distortion amount")
	fs.DurationVar(&o.loopStart, "loop-start", 0, "loop start offset")
	fs.DurationVar(&o.loopEnd, "loop-end", 0, "loop end offset (default: end of sample)")
	fs.IntVar(&o.repeat, "repeat", 1, "loop repeat count, 0 loops until interrupted")
	fs.BoolVar(&o.play, "play", false, "play the sample")
	fs.StringVar(&o.device, "device", output.NameOto, "output device: "+strings.Join(output.Names(), ", "))
	fs.BoolVar(&o.interactive, "i", false, "interactive mode")
	fs.BoolVar(&o.autoRestart, "auto-restart", false, "restart playback when an effect changes")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.in == "" {
		o.in = fs.Arg(0)
	}
	if o.in == "" {
		fs.Usage()
		return nil, errors.New("no input file given")
	}

	return o, nil
}

// applyEffects sets every effect given on the command line.
func applyEffects(s *smplhlpr.Sampler, o *options) error {
	steps := []struct {
		flag  string
		apply func() error
	}{
		{"bits", func() error { return s.SetBitDepth(o.bits) }},
		{"rate", func() error { return s.SetSampleRate(o.rate) }},
		{"pitch", func() error { return s.SetPitch(o.pitch) }},
		{"gain", func() error { return s.SetVolume(o.gain) }},
		{"distort", func() error { return s.SetDistort(o.distort) }},
		{"pan", func() error { return s.SetPan(o.pan) }},
	}

	for _, step := range steps {
		if !o.set[step.flag] {
			continue
		}
		if err := step.apply(); err != nil {
			return fmt.Errorf("-%s: %w", step.flag, err)
		}
	}

	return s.SetLoop(o.loopStart, o.loopEnd, o.repeat)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, logger logrus.FieldLogger) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	dev, err := output.New(o.device, output.WithLogger(logger))
	if err != nil {
		return err
	}

	s := smplhlpr.New(
		smplhlpr.WithDevice(dev),
		smplhlpr.WithLogger(logger),
		smplhlpr.WithAutoRestart(o.autoRestart),
	)
	defer s.Close()

	if err := s.Load(o.in); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"path":     o.in,
		"rate":     s.SampleRate(),
		"channels": s.Channels(),
		"length":   s.LengthSeconds(),
	}).Info("loaded")

	if err := applyEffects(s, o); err != nil {
		return err
	}

	if o.interactive {
		return newREPL(s, stdin, stdout).Run(ctx)
	}

	if o.play {
		if err := s.Play(); err != nil {
			return err
		}

		err := s.Wait(ctx)
		if errors.Is(err, context.Canceled) {
			// interrupted: stop and let the session unwind
			_ = s.Stop()
			err = s.Wait(context.Background())
		}
		if err != nil {
			return err
		}
	}

	if o.out != "" {
		if err := s.Save(o.out); err != nil {
			return err
		}
		logger.WithField("path", o.out).Info("saved")
	}

	return nil
}

func main() {
	logger := log.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.WithError(err).Fatal("smplhlpr failed")
	}
}
