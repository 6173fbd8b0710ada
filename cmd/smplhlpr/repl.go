// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/smplhlpr"
)

const menu = `
Options:
1. Play
2. Stop
3. Bit depth
4. Sample rate
5. Pitch
6. Volume
7. Pan
8. Distort
9. Loop
10. Reset effects
11. Track info
12. Save
0. Exit`

// repl drives a Sampler from a numbered text menu.
type repl struct {
	s   *smplhlpr.Sampler
	in  *bufio.Scanner
	out io.Writer
}

func newREPL(s *smplhlpr.Sampler, in io.Reader, out io.Writer) *repl {
	return &repl{
		s:   s,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run reads choices until Exit, end of input or ctx is done.
func (r *repl) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, r.s.Info())

	for ctx.Err() == nil {
		fmt.Fprintln(r.out, menu)

		choice, ok := r.prompt("Enter choice: ")
		if !ok {
			break
		}

		if choice == "0" || choice == "q" {
			break
		}

		if err := r.dispatch(choice); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}

	if err := r.in.Err(); err != nil {
		return err
	}

	return r.s.Stop()
}

func (r *repl) dispatch(choice string) error {
	switch choice {
	case "1":
		return r.s.Play()
	case "2":
		return r.s.Stop()
	case "3":
		return withInt(r, "Enter target bit depth: ", r.s.SetBitDepth)
	case "4":
		return withInt(r, "Enter target sample rate: ", r.s.SetSampleRate)
	case "5":
		return withFloat(r, "Enter semitones to shift: ", r.s.SetPitch)
	case "6":
		return withFloat(r, "Enter volume change in dB: ", r.s.SetVolume)
	case "7":
		return withFloat(r, "Enter pan value (-1.0 to 1.0): ", r.s.SetPan)
	case "8":
		return withFloat(r, "Enter distortion amount: ", r.s.SetDistort)
	case "9":
		return r.loop()
	case "10":
		return r.s.Reset()
	case "11":
		fmt.Fprintln(r.out, r.s.Info())
		return nil
	case "12":
		path, ok := r.prompt("Enter path to save audio: ")
		if !ok || path == "" {
			return nil
		}
		if err := r.s.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "saved %s\n", path)
		return nil
	default:
		fmt.Fprintln(r.out, "Invalid choice.")
		return nil
	}
}

func (r *repl) loop() error {
	var start, end time.Duration
	var repeat int

	if err := withDuration(r, "Loop start (e.g. 1s, 250ms): ", func(d time.Duration) error { start = d; return nil }); err != nil {
		return err
	}
	if err := withDuration(r, "Loop end (0 for end of sample): ", func(d time.Duration) error { end = d; return nil }); err != nil {
		return err
	}
	if err := withInt(r, "Repeat count (0 loops forever): ", func(n int) error { repeat = n; return nil }); err != nil {
		return err
	}

	return r.s.SetLoop(start, end, repeat)
}

func (r *repl) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func withInt(r *repl, label string, set func(int) error) error {
	text, ok := r.prompt(label)
	if !ok {
		return nil
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	return set(v)
}

func withFloat(r *repl, label string, set func(float64) error) error {
	text, ok := r.prompt(label)
	if !ok {
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	return set(v)
}

func withDuration(r *repl, label string, set func(time.Duration) error) error {
	text, ok := r.prompt(label)
	if !ok {
		return nil
	}

	v, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q", text)
	}
	return set(v)
}
