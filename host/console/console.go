// Package console is the interactive front panel of the simulator: beam and
// button events, ticks and mode selection typed at a prompt.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"irtimer/core"
	"irtimer/host/sim"
)

// Console reads commands and forwards them to a running simulator
type Console struct {
	sim *sim.Simulator
	rl  *readline.Instance
	out io.Writer

	// askLaps reads the lap count when a timer mode is selected without one
	askLaps func() (string, error)
}

// New creates a console on the terminal
func New(s *sim.Simulator) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "irtimer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := &Console{sim: s, rl: rl, out: rl.Stdout()}
	c.askLaps = func() (string, error) {
		rl.SetPrompt(fmt.Sprintf("laps (0-%d)> ", core.MaxLaps))
		defer rl.SetPrompt("irtimer> ")
		return rl.Readline()
	}
	return c, nil
}

// Stdout returns a writer that keeps log output off the prompt line
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run reads lines until quit, EOF or ctx is cancelled. cancel is called on
// the way out so the simulator stops with the console.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	defer cancel()

	c.printHelp()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return
		}
		if c.Execute(ctx, line) {
			return
		}
	}
}

// Execute runs one console line. Returns true when the console should exit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	req, err := Parse(line)
	if err != nil {
		fmt.Fprintf(c.out, "%v (type 'help' for commands)\n", err)
		return false
	}

	switch req.Action {
	case ActionNone:
	case ActionHelp:
		c.printHelp()
	case ActionQuit:
		fmt.Fprintln(c.out, "Exiting...")
		return true
	case ActionShow:
		f, err := c.sim.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		c.printFrame(f)
	case ActionSim:
		if req.AskLaps {
			laps, err := c.readLaps()
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				return false
			}
			req.Cmd.Laps = laps
		}
		r, err := c.sim.Do(ctx, req.Cmd)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		if req.Cmd.Type == sim.CmdSelect {
			c.printFrame(r.Frame)
		}
	}
	return false
}

func (c *Console) readLaps() (uint8, error) {
	if c.askLaps == nil {
		return 0, nil
	}
	s, err := c.askLaps()
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: laps must be 0-%d", ErrUsage, core.MaxLaps)
	}
	return uint8(v), nil
}

func (c *Console) printFrame(f sim.Frame) {
	fmt.Fprintf(c.out, "[%s]  %s\n", f, f.Status())
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Commands:
  Beams and buttons:
    master, slave      - Break the master or slave beam
    mbtn, sbtn         - Press the master or slave button

  Clock:
    tick [n]           - Deliver n 10ms ticks (default 1)

  Modes:
    mode <0-7> [laps]  - Select a mode, timer modes ask for laps
                         0,1 timer  2,3 counter  4,5 confirm counter
                         6 alarm    7 measure
    show               - Show the display and active mode
    dump               - Dump recent events to the debug log

    help               - Show this help
    quit               - Exit`)
}
