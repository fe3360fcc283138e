// =============================================================================
// demo.go - Demo Command Set
// =============================================================================
//
// The commands every front end registers:
//
//	LED ON | LED OFF | LED Blink <n>    drive a simulated board LED
//	cmd1 check|check2 <int> <float>     argument inspection example
//	add <a> <b>                         32-bit integer addition
//	echo <args...>                      print the arguments back
//	help                                list the registered commands
//
// All output goes through the interpreter's reporter (cmd.Printf), so the
// same handlers serve a terminal, a piped byte stream and a socket
// connection without knowing which one they are talking to.
//
// =============================================================================

package main

import (
	"fmt"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// usageError is returned by a handler given arguments it does not accept.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

// led is the simulated LED driven by the LED command.
type led struct {
	on     bool
	blinks int // total blink cycles since start
}

// demoCommand pairs a command name with its handler and one-line usage.
type demoCommand struct {
	name  string
	usage string
	fn    func(cmd *tinycmd.Command) error
}

// demo holds the state shared by the demo handlers.
type demo struct {
	in       *tinycmd.Interpreter
	led      led
	commands []demoCommand
}

// registerDemo registers the demo command set on in.
func registerDemo(in *tinycmd.Interpreter) (*demo, error) {
	d := &demo{in: in}
	d.commands = []demoCommand{
		{"LED", "LED ON|OFF|Blink <n>", d.handleLED},
		{"cmd1", "cmd1 check|check2 <int> <float>", d.handleCmd1},
		{"add", "add <a> <b>", d.handleAdd},
		{"echo", "echo <args...>", d.handleEcho},
		{"help", "help", d.handleHelp},
	}
	for _, c := range d.commands {
		if err := in.RegisterFunc(c.name, c.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", c.name, err)
		}
	}
	return d, nil
}

// usage returns the usage line for a registered command name.
func (d *demo) usage(name string) string {
	for _, c := range d.commands {
		if c.name == name {
			return c.usage
		}
	}
	return name
}

// usageLines returns one usage line per registered command, in registration
// order.
func (d *demo) usageLines() []string {
	entries := d.in.Registry().Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, d.usage(e.Name))
	}
	return lines
}

func (d *demo) handleLED(cmd *tinycmd.Command) error {
	switch {
	case cmd.ArgCheck("ON", 0):
		d.led.on = true
		cmd.Printf("LED on\n")
		return nil

	case cmd.ArgCheck("OFF", 0):
		d.led.on = false
		cmd.Printf("LED off\n")
		return nil

	case cmd.ArgCheck("Blink", 0):
		n, err := cmd.ArgInt8(1)
		if err != nil {
			return err
		}
		if n < 0 {
			n = 0
		}
		// Each cycle ends with the LED off.
		d.led.blinks += int(n)
		d.led.on = false
		cmd.Printf("LED blinked %d times\n", n)
		return nil
	}
	return &usageError{usage: d.usage("LED")}
}

// handleCmd1 reports which of its optional arguments are present.
func (d *demo) handleCmd1(cmd *tinycmd.Command) error {
	cmd.Printf("Command1 is called!\n")

	if cmd.ArgCheck("check", 0) {
		cmd.Printf("Position 0 has parameter: check\n")
	} else if cmd.ArgCheck("check2", 0) {
		cmd.Printf("Position 0 has parameter: check2\n")
	}

	if v, err := cmd.ArgInt32(1); err == nil && v != 0 {
		cmd.Printf("Position 1 has parameter: %d\n", v)
	}
	if f, err := cmd.ArgFloat32(2); err == nil && f != 0 {
		cmd.Printf("Position 2 has parameter: %f\n", f)
	}
	return nil
}

func (d *demo) handleAdd(cmd *tinycmd.Command) error {
	if cmd.NArgs() != 2 {
		return &usageError{usage: d.usage("add")}
	}
	a, err := cmd.ArgInt32(0)
	if err != nil {
		return err
	}
	b, err := cmd.ArgInt32(1)
	if err != nil {
		return err
	}
	_, err = cmd.Printf("%d\n", int64(a)+int64(b))
	return err
}

func (d *demo) handleEcho(cmd *tinycmd.Command) error {
	for i, arg := range cmd.Args() {
		if i > 0 {
			cmd.Printf(" ")
		}
		cmd.Printf("%s", arg)
	}
	_, err := cmd.Printf("\n")
	return err
}

func (d *demo) handleHelp(cmd *tinycmd.Command) error {
	for _, line := range d.usageLines() {
		if _, err := cmd.Printf("  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
