package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/xitonix/xshift/shift"
	"github.com/xitonix/xshift/taps"
)

func newEncodeCmd(a *app) *cobra.Command {
	return newBatchCmd(a, shift.Encode, "encode [files...]", "Encode one or more text files", taps.EncodedFileExtension)
}

func newDecodeCmd(a *app) *cobra.Command {
	return newBatchCmd(a, shift.Decode, "decode [files...]", "Decode one or more encoded files",
		fmt.Sprintf("removed (or %s appended)", taps.DecodedFileExtension))
}

func newBatchCmd(a *app, mode shift.Operation, use, short, extension string) *cobra.Command {
	var (
		output      string
		parallelism uint16
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  fmt.Sprintf("%s. The output of every file is written next to it with the %s extension, unless --output is specified.", short, extension),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.New("--output can only be used with a single file")
			}
			jobs := make([]taps.Job, len(args))
			for i, arg := range args {
				jobs[i] = taps.Job{Input: arg, Output: output}
			}
			p, err := a.params()
			if err != nil {
				return err
			}
			return a.runBatch(cmd.Context(), mode, p, parallelism, jobs...)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "The output file (single input only)")
	cmd.Flags().Uint16VarP(&parallelism, "parallelism", "p", 4, "The number of files to process at the same time")
	return cmd
}

// runBatch processes the jobs on an engine and returns an error if any of them fails
func (a *app) runBatch(ctx context.Context, mode shift.Operation, p shift.Params, parallelism uint16, jobs ...taps.Job) error {
	tap, err := taps.NewFileTap(mode, a.log, jobs...)
	if err != nil {
		return err
	}

	var failed int32
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for err := range tap.Errors() {
			atomic.AddInt32(&failed, 1)
			a.printf("Err: %v\n", err)
		}
	}()
	go func() {
		defer wg.Done()
		for r := range tap.Progress() {
			if r.Status.IsFinal() {
				a.printf("%s > %s %s\n", r.Input.Name, r.Output.Name, r.Status)
			}
		}
	}()

	engine := shift.NewEngine(parallelism, p, tap)
	engine.SetLogger(a.log)
	engine.Start()

	var cancelled bool
	select {
	case <-tap.Done():
	case <-ctx.Done():
		cancelled = true
	}
	engine.Stop()
	tap.Close()
	wg.Wait()

	if cancelled {
		return ctx.Err()
	}
	if n := atomic.LoadInt32(&failed); n > 0 {
		return fmt.Errorf("%d error(s) occurred while trying to %s %d file(s)", n, mode, len(jobs))
	}
	return nil
}
