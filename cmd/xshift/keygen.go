package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xitonix/xshift/shift"
)

func newKeygenCmd(a *app) *cobra.Command {
	var (
		limit int
		save  bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a pair of random shift values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := shift.RandomParams(limit)
			a.printf("shift1: %d\nshift2: %d\n", p.Shift1, p.Shift2)
			if !save {
				return nil
			}

			if _, err := os.Stat(a.configPath); err == nil && a.interactive() {
				if !newPrompter(a.in, a.out).AskForConfirmation("The shift values in '" + a.configPath + "' will be replaced. Are you sure") {
					return nil
				}
			}
			a.cfg.SetParams(p)
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}
			a.log.Debugf("the shift values have been saved into %s", a.configPath)
			a.printf("The shift values have been saved into '%s'.\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 26, "The shift values are generated in the [-limit, limit] range")
	cmd.Flags().BoolVar(&save, "save", false, "Save the generated values into the config file")
	return cmd
}
