package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xitonix/xshift/shift"
	"github.com/xitonix/xshift/taps"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		source, target string
		decode         bool
		polling        bool
		interval       time.Duration
		settle         time.Duration
		parallelism    uint16
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and process every new file into the target directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &a.cfg.Watch
			flags := cmd.Flags()
			if flags.Changed("source") {
				w.Source = source
			}
			if flags.Changed("target") {
				w.Target = target
			}
			if flags.Changed("decode") {
				w.Decode = decode
			}
			if flags.Changed("polling") {
				w.Polling = polling
			}
			if flags.Changed("interval") {
				w.PollingInterval = interval
			}
			if flags.Changed("settle") {
				w.SettleTime = settle
			}
			if flags.Changed("parallelism") {
				w.Parallelism = parallelism
			}
			return a.watch(cmd)
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "The directory to watch (default from config: src)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "The directory to write the results into (default from config: target)")
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode the files instead of encoding them")
	cmd.Flags().BoolVar(&polling, "polling", false, "Poll the source directory instead of relying on filesystem notifications")
	cmd.Flags().DurationVar(&interval, "interval", 0, "The polling interval")
	cmd.Flags().DurationVar(&settle, "settle", 0, "The time a file must remain untouched before it gets processed")
	cmd.Flags().Uint16VarP(&parallelism, "parallelism", "p", 0, "The number of files to process at the same time")
	return cmd
}

func (a *app) watch(cmd *cobra.Command) error {
	p, err := a.params()
	if err != nil {
		return err
	}

	w := a.cfg.Watch
	mode := shift.Encode
	if w.Decode {
		mode = shift.Decode
	}

	tap, err := taps.NewDirectoryWatcherTap(taps.WatchOptions{
		Source:          w.Source,
		Target:          w.Target,
		Mode:            mode,
		Polling:         w.Polling,
		PollingInterval: w.PollingInterval,
		SettleTime:      w.SettleTime,
	}, a.log)
	if err != nil {
		return err
	}

	engine := shift.NewEngine(w.Parallelism, p, tap)
	engine.SetLogger(a.log)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range tap.Errors() {
			a.printf("Err: %v\n", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range tap.Progress() {
			a.printf("%s > %s %s\n", r.Input.Name, r.Output.Name, r.Status)
		}
	}()

	engine.Start()
	opts := tap.Options()
	a.log.Infof("watching '%s' (%s > %s)", opts.Source, mode, opts.Target)
	a.printf("The service is up and running. Press Ctrl+C to stop it\n")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
	case <-cmd.Context().Done():
	case <-tap.Failed():
	}

	engine.Stop()
	tap.Close()
	a.printf("The engine has been stopped successfully\n")
	wg.Wait()
	return tap.Err()
}
