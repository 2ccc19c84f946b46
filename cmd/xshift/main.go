// Command xshift encodes, decodes and verifies text files with the tagged character shift codec.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xitonix/xshift/config"
	"github.com/xitonix/xshift/logging"
	"github.com/xitonix/xshift/shift"
	"golang.org/x/crypto/ssh/terminal"
)

// app holds the state shared by the commands
type app struct {
	cfg *config.Config
	log logging.Logger
	zap *logging.ZapLogger

	in          io.Reader
	out         io.Writer
	interactive func() bool

	configPath string
	verbose    bool
	shift1     int
	shift2     int
}

func newApp() *app {
	return &app{
		in:  os.Stdin,
		out: os.Stdout,
		interactive: func() bool {
			return terminal.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "xshift",
		Short:         "Tagged character shift codec",
		Long:          "xshift encodes text into a line oriented record stream and reverses it using two integer shift values.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.zap != nil {
				_ = a.zap.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "xshift.yaml", "Path to the configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().IntVar(&a.shift1, "shift1", 0, "The first shift value (n)")
	root.PersistentFlags().IntVar(&a.shift2, "shift2", 0, "The second shift value (m)")

	root.AddCommand(
		newRunCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newVerifyCmd(a),
		newWatchCmd(a),
		newKeygenCmd(a),
	)
	return root
}

// init loads the configuration, applies the command line overrides and sets up the logger
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("shift1") {
		cfg.Shift1 = &a.shift1
	}
	if flags.Changed("shift2") {
		cfg.Shift2 = &a.shift2
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	a.cfg = cfg

	if a.log == nil {
		z, err := logging.NewZap(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialise the logger: %w", err)
		}
		a.zap = z
		a.log = z
	}
	return nil
}

// params returns the configured shift values. The user will be asked for
// the missing values if the standard input is a terminal.
func (a *app) params() (shift.Params, error) {
	p, err := a.cfg.Params()
	if err == nil {
		return p, nil
	}
	if !a.interactive() {
		return shift.Params{}, fmt.Errorf("%w: use --shift1 and --shift2, the config file or %s and %s",
			err, config.Shift1EnvVar, config.Shift2EnvVar)
	}

	prompt := newPrompter(a.in, a.out)
	if a.cfg.Shift1 == nil {
		n, err := prompt.AskForInt("Enter shift1 value: ")
		if err != nil {
			return shift.Params{}, err
		}
		a.cfg.Shift1 = &n
	}
	if a.cfg.Shift2 == nil {
		m, err := prompt.AskForInt("Enter shift2 value: ")
		if err != nil {
			return shift.Params{}, err
		}
		a.cfg.Shift2 = &m
	}
	return a.cfg.Params()
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
