package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ubxctl/internal/config"
	"ubxctl/internal/gnss"
	"ubxctl/internal/hwreset"
	"ubxctl/internal/serialport"
	"ubxctl/internal/ubx"
)

// Seams so tests can run the CLI without hardware.
var (
	openPort   = serialport.Open
	pulseReset = hwreset.Pulse
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("ubxctl", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		portPath     = fs.String("port", "", "serial port (e.g. /dev/ttyACM0); overrides the config file")
		baud         = fs.Int("baud", 0, "baud rate (default 9600)")
		configPath   = fs.String("config", "", "optional YAML config path")
		getModel     = fs.Bool("get-model", false, "query current dynamic model")
		setModel     = fs.Int("set-model", -1, "set dynamic model (e.g. 6 for Airborne <1g)")
		doReset      = fs.Bool("reset", false, "send cold-start reset (equivalent to power cycle)")
		confirmReset = fs.Bool("confirm-reset", false, "send cold-start reset and wait for the ACK")
		hwReset      = fs.Bool("hw-reset", false, "pulse the GPIO reset line instead of sending CFG-RST")
		verbose      = fs.Bool("verbose", false, "log ignored frames")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(out, "Config error: %v\n", err)
			return 1
		}
	}
	if *portPath != "" {
		cfg.Serial.Device = *portPath
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}

	// The GPIO reset path never touches the serial port; a receiver that
	// needs it usually isn't answering UBX anyway.
	if *hwReset {
		if cfg.Reset.GPIOPin <= 0 {
			fmt.Fprintln(out, "hw-reset requires reset.gpio_pin in the config")
			return 2
		}
		if err := pulseReset(cfg.Reset.GPIOPin, cfg.Reset.Hold); err != nil {
			fmt.Fprintf(out, "GPIO reset error: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, "GPIO reset pulsed. GPS is rebooting...")
		return 0
	}

	if !*getModel && *setModel < 0 && !*doReset && !*confirmReset {
		fmt.Fprintln(out, "no operation requested")
		fs.Usage()
		return 2
	}
	if cfg.Serial.Device == "" {
		fmt.Fprintln(out, "no serial port given (use -port or a config file)")
		return 2
	}
	if *setModel > 255 {
		fmt.Fprintf(out, "invalid dynamic model %d (wire value is one byte)\n", *setModel)
		return 2
	}

	port, err := openPort(cfg.Serial.Device, cfg.Serial.Baud)
	if err != nil {
		fmt.Fprintf(out, "Serial error: %v\n", err)
		return 1
	}
	opts := gnss.Options{
		AckTimeout:      cfg.Engine.AckTimeout,
		PollTimeout:     cfg.Engine.PollTimeout,
		VerifyChecksums: cfg.Engine.VerifyChecksums,
	}
	if *verbose {
		opts.Logf = log.Printf
	}
	dev := gnss.New(port, opts)
	defer dev.Close()

	// A reset takes priority over get/set: the receiver reboots, so there
	// is nothing meaningful to do afterwards in the same invocation.
	if *doReset || *confirmReset {
		if *confirmReset {
			res, err := dev.ResetAndConfirm(ubx.ResetHardware, ubx.BBRColdStart)
			if err != nil {
				fmt.Fprintf(out, "Serial error: %v\n", err)
				return 1
			}
			fmt.Fprintf(out, "Cold reset sent (%s). GPS is rebooting...\n", res)
			return 0
		}
		if err := dev.Reset(ubx.ResetHardware, ubx.BBRColdStart); err != nil {
			fmt.Fprintf(out, "Serial error: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, "Cold reset sent. GPS is rebooting...")
		return 0
	}

	if *getModel {
		model, err := dev.PollDynamicModel()
		switch {
		case errors.Is(err, gnss.ErrNoResponse):
			fmt.Fprintln(out, "No response from GPS (timeout).")
		case err != nil:
			fmt.Fprintf(out, "Serial error: %v\n", err)
			return 1
		default:
			fmt.Fprintf(out, "Current Dynamic Model: %d (%s)\n", model, model)
		}
	}

	if *setModel >= 0 {
		model := ubx.DynModel(*setModel)
		fmt.Fprintf(out, "Setting Dynamic Model to %d (%s)...\n", model, model)
		res, err := dev.SetDynamicModel(model)
		if err != nil {
			fmt.Fprintf(out, "Serial error: %v\n", err)
			return 1
		}
		switch res {
		case gnss.Acked:
			fmt.Fprintln(out, "Model set successfully (ACK received).")
		case gnss.Rejected:
			fmt.Fprintln(out, "Failed to set model (NAK received).")
		default:
			fmt.Fprintln(out, "No response from GPS (timeout).")
		}
	}

	return 0
}
