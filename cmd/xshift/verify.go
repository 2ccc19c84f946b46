package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [original] [decrypted]",
		Short: "Verify that the decrypted file is identical to the original file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts either no arguments or two files, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			original, decoded := a.cfg.RawFile, a.cfg.DecodedFile
			if len(args) == 2 {
				original, decoded = args[0], args[1]
			}
			report, err := verifyFiles(original, decoded)
			if err != nil {
				return err
			}
			a.log.Debugf("%s: %x (%d bytes)", original, report.OriginalDigest, report.OriginalSize)
			a.log.Debugf("%s: %x (%d bytes)", decoded, report.DecodedDigest, report.DecodedSize)
			if !report.Match {
				a.printf("Verification FAILED: '%s' does not match '%s'.\n", decoded, original)
				return errVerificationFailed
			}
			a.printf("Verification successful: '%s' matches '%s'.\n", decoded, original)
			return nil
		},
	}
}
