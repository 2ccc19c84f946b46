package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/xitonix/xshift/shift"
)

const sampleText = "This is a sample text file for testing purposes."

var errVerificationFailed = errors.New("the decrypted text does not match the original text")

func newRunCmd(a *app) *cobra.Command {
	var raw, encoded, decoded string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Encrypt the raw text file, decrypt it back and verify the result",
		Long: `Encrypts the raw text file into the encrypted file, decrypts the encrypted file into the
decrypted file and verifies that the decrypted text is identical to the original.

A sample raw text file is created if the raw file does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw != "" {
				a.cfg.RawFile = raw
			}
			if encoded != "" {
				a.cfg.EncodedFile = encoded
			}
			if decoded != "" {
				a.cfg.DecodedFile = decoded
			}
			return a.run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&raw, "raw", "", "The raw text file (default from config: raw_text.txt)")
	cmd.Flags().StringVar(&encoded, "encrypted", "", "The encrypted output file (default from config: encrypted_text.txt)")
	cmd.Flags().StringVar(&decoded, "decrypted", "", "The decrypted output file (default from config: decrypted_text.txt)")
	return cmd
}

func (a *app) run(ctx context.Context) error {
	p, err := a.params()
	if err != nil {
		return err
	}
	raw, encoded, decoded := a.cfg.RawFile, a.cfg.EncodedFile, a.cfg.DecodedFile
	a.log.Debugf("running with %s", p)

	if _, err := os.Stat(raw); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		a.printf("The file '%s' was not found.\n", raw)
		if err := os.WriteFile(raw, []byte(sampleText), 0644); err != nil {
			return fmt.Errorf("failed to create the sample file: %w", err)
		}
		a.printf("Created a sample file '%s'. Encrypting it now...\n", raw)
	}

	if err := encodeFile(ctx, p, raw, encoded); err != nil {
		return err
	}
	a.printf("Encryption complete. Output saved to '%s'.\n", encoded)

	if err := decodeFile(ctx, p, encoded, decoded); err != nil {
		return err
	}
	a.printf("Decryption complete. Output saved to '%s'.\n", decoded)

	report, err := verifyFiles(raw, decoded)
	if err != nil {
		return err
	}
	if !report.Match {
		a.printf("Verification FAILED: The decrypted text does not match the original text.\n")
		return errVerificationFailed
	}
	a.printf("Verification successful: The decrypted text matches the original text.\n")
	return nil
}

func encodeFile(ctx context.Context, p shift.Params, inputPath, outputPath string) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	status, err := shift.NewEncoder(0, p, input, output).EncodeContext(ctx)
	closeErr := output.Close()
	if err != nil {
		return fmt.Errorf("failed to encrypt '%s': %w", inputPath, err)
	}
	if status != shift.Completed {
		return fmt.Errorf("encrypting '%s' has been %s", inputPath, status)
	}
	return closeErr
}

// decodeFile creates the output file only if the whole input has been decoded successfully
func decodeFile(ctx context.Context, p shift.Params, inputPath, outputPath string) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	var text bytes.Buffer
	status, err := shift.NewDecoder(0, p, input, &text).DecodeContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to decrypt '%s': %w", inputPath, err)
	}
	if status != shift.Completed {
		return fmt.Errorf("decrypting '%s' has been %s", inputPath, status)
	}
	return os.WriteFile(outputPath, text.Bytes(), 0644)
}

func verifyFiles(originalPath, decodedPath string) (*shift.Report, error) {
	original, err := os.Open(originalPath)
	if err != nil {
		return nil, err
	}
	defer original.Close()

	decoded, err := os.Open(decodedPath)
	if err != nil {
		return nil, err
	}
	defer decoded.Close()

	return shift.VerifyReaders(original, decoded)
}
