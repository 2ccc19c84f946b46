package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xitonix/xshift/config"
	"github.com/xitonix/xshift/logging"
	"github.com/xitonix/xshift/shift"
	"github.com/xitonix/xshift/taps"
)

// lockedBuffer is written by the progress and error reporting go routines concurrently
type lockedBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.buf.String()
}

func newTestApp(stdin string, interactive bool) (*app, *lockedBuffer) {
	out := &lockedBuffer{}
	return &app{
		in:          strings.NewReader(stdin),
		out:         out,
		log:         logging.Nop(),
		interactive: func() bool { return interactive },
	}, out
}

func execute(ctx context.Context, a *app, args ...string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(ctx)
}

func unsetShiftEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.Shift1EnvVar, config.Shift2EnvVar} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRunCreatesSampleFile(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw_text.txt")
	encrypted := filepath.Join(dir, "encrypted_text.txt")
	decrypted := filepath.Join(dir, "decrypted_text.txt")

	a, out := newTestApp("", false)
	err := execute(context.Background(), a, "run",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--shift1", "3", "--shift2", "4",
		"--raw", raw, "--encrypted", encrypted, "--decrypted", decrypted)
	require.NoError(t, err)

	require.Equal(t, sampleText, readFile(t, raw))
	require.Equal(t, shift.EncodeString(sampleText, shift.NewParams(3, 4)), readFile(t, encrypted))
	require.Equal(t, sampleText, readFile(t, decrypted))

	output := out.String()
	require.Contains(t, output, "was not found")
	require.Contains(t, output, "Encryption complete")
	require.Contains(t, output, "Decryption complete")
	require.Contains(t, output, "Verification successful")
}

func TestRunKeepsTheRawFileWhenTheOutputCannotBeCreated(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw_text.txt")
	writeFile(t, raw, "my precious original text")

	a, out := newTestApp("", false)
	err := execute(context.Background(), a, "run",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--shift1", "3", "--shift2", "4",
		"--raw", raw,
		"--encrypted", filepath.Join(dir, "missing", "encrypted_text.txt"),
		"--decrypted", filepath.Join(dir, "decrypted_text.txt"))
	require.Error(t, err)

	require.Equal(t, "my precious original text", readFile(t, raw))
	require.NotContains(t, out.String(), "was not found")
	require.NotContains(t, out.String(), "Created a sample file")
}

func TestRunPromptsForMissingShifts(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.txt")
	encrypted := filepath.Join(dir, "encrypted.txt")
	writeFile(t, raw, "Hi!\n")

	a, out := newTestApp("3\n4\n", true)
	err := execute(context.Background(), a, "run",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--raw", raw, "--encrypted", encrypted, "--decrypted", filepath.Join(dir, "decrypted.txt"))
	require.NoError(t, err)

	require.Equal(t, "E,AM\nu,lm\n!,sp\n[NL],nl\n", readFile(t, encrypted))
	require.Contains(t, out.String(), "Enter shift1 value: ")
	require.Contains(t, out.String(), "Enter shift2 value: ")
	require.NotContains(t, out.String(), "was not found")
}

func TestRunOnlyPromptsForTheMissingShift(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.txt")
	encrypted := filepath.Join(dir, "encrypted.txt")
	writeFile(t, raw, "Hi!\n")

	a, out := newTestApp("4\n", true)
	err := execute(context.Background(), a, "run",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--shift1", "3",
		"--raw", raw, "--encrypted", encrypted, "--decrypted", filepath.Join(dir, "decrypted.txt"))
	require.NoError(t, err)

	require.Equal(t, "E,AM\nu,lm\n!,sp\n[NL],nl\n", readFile(t, encrypted))
	require.NotContains(t, out.String(), "Enter shift1 value: ")
}

func TestRunInvalidShiftInput(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.txt")
	writeFile(t, raw, "abc")

	a, _ := newTestApp("three\n", true)
	err := execute(context.Background(), a, "run",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--raw", raw, "--encrypted", filepath.Join(dir, "e.txt"), "--decrypted", filepath.Join(dir, "d.txt"))
	require.ErrorIs(t, err, errInvalidShift)
	require.NoFileExists(t, filepath.Join(dir, "e.txt"))
}

func TestRunWithoutShiftsWhenNotInteractive(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()

	a, _ := newTestApp("3\n4\n", false)
	err := execute(context.Background(), a, "run", "--config", filepath.Join(dir, "xshift.yaml"))
	require.ErrorIs(t, err, config.ErrMissingShift)
}

func TestRunUsesTheConfigFile(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SetParams(shift.NewParams(-7, 12))
	cfg.RawFile = filepath.Join(dir, "in.txt")
	cfg.EncodedFile = filepath.Join(dir, "in.txt.xs")
	cfg.DecodedFile = filepath.Join(dir, "out.txt")
	path := filepath.Join(dir, "xshift.yaml")
	require.NoError(t, cfg.Save(path))
	writeFile(t, cfg.RawFile, "Mixed CASE, with\r\nline endings and ünïcode\n")

	a, _ := newTestApp("", false)
	require.NoError(t, execute(context.Background(), a, "run", "--config", path))
	require.Equal(t, readFile(t, cfg.RawFile), readFile(t, cfg.DecodedFile))
}

func TestEncodeAndDecodeCommands(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	texts := map[string]string{
		filepath.Join(dir, "first.txt"):  "The first file\n",
		filepath.Join(dir, "second.txt"): "The second, file!",
	}
	args := []string{"encode", "--config", filepath.Join(dir, "xshift.yaml"), "--shift1", "5", "--shift2", "9"}
	for path, text := range texts {
		writeFile(t, path, text)
		args = append(args, path)
	}

	a, out := newTestApp("", false)
	require.NoError(t, execute(context.Background(), a, args...))
	require.Contains(t, out.String(), "completed")

	params := shift.NewParams(5, 9)
	for path, text := range texts {
		require.Equal(t, shift.EncodeString(text, params), readFile(t, path+taps.EncodedFileExtension))

		decoded := path + ".decoded"
		a, _ := newTestApp("", false)
		err := execute(context.Background(), a, "decode",
			"--config", filepath.Join(dir, "xshift.yaml"),
			"--shift1", "5", "--shift2", "9",
			"-o", decoded, path+taps.EncodedFileExtension)
		require.NoError(t, err)
		require.Equal(t, text, readFile(t, decoded))
	}
}

func TestDecodeCommandWithMalformedInput(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.xs")
	writeFile(t, input, "a,lm\nxyz\n")

	a, out := newTestApp("", false)
	err := execute(context.Background(), a, "decode",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--shift1", "1", "--shift2", "1", input)
	require.Error(t, err)
	require.Contains(t, out.String(), "Err:")
}

func TestOutputFlagWithMultipleFiles(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	a, _ := newTestApp("", false)
	err := execute(context.Background(), a, "encode",
		"--config", filepath.Join(dir, "xshift.yaml"),
		"--shift1", "1", "--shift2", "1",
		"-o", filepath.Join(dir, "out"), "a.txt", "b.txt")
	require.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original.txt")
	same := filepath.Join(dir, "same.txt")
	different := filepath.Join(dir, "different.txt")
	writeFile(t, original, "Hello, World!\n")
	writeFile(t, same, "Hello, World!\n")
	writeFile(t, different, "Hello, World?\n")
	cfgPath := filepath.Join(dir, "xshift.yaml")

	a, out := newTestApp("", false)
	require.NoError(t, execute(context.Background(), a, "verify", "--config", cfgPath, original, same))
	require.Contains(t, out.String(), "Verification successful")

	a, out = newTestApp("", false)
	err := execute(context.Background(), a, "verify", "--config", cfgPath, original, different)
	require.ErrorIs(t, err, errVerificationFailed)
	require.Contains(t, out.String(), "Verification FAILED")

	a, _ = newTestApp("", false)
	require.Error(t, execute(context.Background(), a, "verify", "--config", cfgPath, original))
}

func TestKeygenSave(t *testing.T) {
	unsetShiftEnv(t)
	path := filepath.Join(t.TempDir(), "xshift.yaml")

	a, out := newTestApp("", false)
	require.NoError(t, execute(context.Background(), a, "keygen", "--config", path, "--limit", "5", "--save"))
	require.Contains(t, out.String(), "shift1: ")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	p, err := cfg.Params()
	require.NoError(t, err)
	require.True(t, p.Shift1 >= -5 && p.Shift1 <= 5, "shift1 out of range: %d", p.Shift1)
	require.True(t, p.Shift2 >= -5 && p.Shift2 <= 5, "shift2 out of range: %d", p.Shift2)
}

func TestKeygenKeepsTheConfigWhenNotConfirmed(t *testing.T) {
	unsetShiftEnv(t)
	path := filepath.Join(t.TempDir(), "xshift.yaml")
	cfg := config.Default()
	cfg.SetParams(shift.NewParams(100, 200))
	require.NoError(t, cfg.Save(path))

	a, _ := newTestApp("n\n", true)
	require.NoError(t, execute(context.Background(), a, "keygen", "--config", path, "--save"))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	p, err := loaded.Params()
	require.NoError(t, err)
	require.Equal(t, shift.NewParams(100, 200), p)
}

func TestWatchCommand(t *testing.T) {
	unsetShiftEnv(t)
	dir := t.TempDir()
	src, target := filepath.Join(dir, "src"), filepath.Join(dir, "target")
	require.NoError(t, os.MkdirAll(src, 0700))
	writeFile(t, filepath.Join(src, "note.txt"), "Watch me!\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, out := newTestApp("", false)
	result := make(chan error, 1)
	go func() {
		result <- execute(ctx, a, "watch",
			"--config", filepath.Join(dir, "xshift.yaml"),
			"--shift1", "2", "--shift2", "3",
			"--source", src, "--target", target,
			"--polling", "--interval", "20ms", "--settle", "50ms")
	}()

	expected := shift.EncodeString("Watch me!\n", shift.NewParams(2, 3))
	output := filepath.Join(target, "note.txt"+taps.EncodedFileExtension)
	require.Eventually(t, func() bool {
		content, err := os.ReadFile(output)
		return err == nil && string(content) == expected
	}, 10*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the watcher to stop")
	}
	require.Contains(t, out.String(), "The engine has been stopped successfully")
}
