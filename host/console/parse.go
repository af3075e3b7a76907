package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"irtimer/core"
	"irtimer/host/sim"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// Action is what a console line asks for
type Action int

const (
	ActionNone Action = iota // blank line
	ActionSim                // forward Cmd to the simulator
	ActionShow
	ActionHelp
	ActionQuit
)

// Request is a parsed console line
type Request struct {
	Action Action
	Cmd    sim.Command
	// AskLaps is set when a timer mode was selected without a lap count
	AskLaps bool
}

// Parse turns one console line into a Request. Arguments are split with
// shell quoting rules.
func Parse(line string) (Request, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return Request{}, fmt.Errorf("split %q: %w", line, err)
	}
	if len(args) == 0 {
		return Request{Action: ActionNone}, nil
	}

	name := strings.ToLower(args[0])
	args = args[1:]

	if ev, err := core.ParseEvent(alias(name)); err == nil && ev != core.EventMS10 {
		return simRequest(sim.Command{Type: sim.CmdEvent, Event: ev}), nil
	}

	switch name {
	case "tick", "t", "ms10":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return Request{}, fmt.Errorf("%w: tick [count]", ErrUsage)
			}
			n = v
		}
		return simRequest(sim.Command{Type: sim.CmdTicks, Count: n}), nil

	case "mode", "m":
		if len(args) == 0 {
			return Request{}, fmt.Errorf("%w: mode <0-%d> [laps]", ErrUsage, core.NumModes-1)
		}
		index, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return Request{}, fmt.Errorf("%w: mode <0-%d> [laps]", ErrUsage, core.NumModes-1)
		}
		req := simRequest(sim.Command{Type: sim.CmdSelect, Mode: uint8(index)})
		if len(args) > 1 {
			laps, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return Request{}, fmt.Errorf("%w: laps must be 0-%d", ErrUsage, core.MaxLaps)
			}
			req.Cmd.Laps = uint8(laps)
		} else if index == core.ModeTimer1 || index == core.ModeTimer2 {
			req.AskLaps = true
		}
		return req, nil

	case "dump":
		return simRequest(sim.Command{Type: sim.CmdDump}), nil
	case "show", "s", "dots":
		return Request{Action: ActionShow}, nil
	case "help", "?", "h":
		return Request{Action: ActionHelp}, nil
	case "quit", "exit", "q":
		return Request{Action: ActionQuit}, nil
	}
	return Request{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

func simRequest(cmd sim.Command) Request {
	return Request{Action: ActionSim, Cmd: cmd}
}

// alias maps the short console names onto event names
func alias(name string) string {
	switch name {
	case "master", "m1":
		return core.EventMasterBroken.String()
	case "slave", "s1":
		return core.EventSlaveBroken.String()
	case "mbtn", "b1":
		return core.EventMasterButton.String()
	case "sbtn", "b2":
		return core.EventSlaveButton.String()
	}
	return name
}
