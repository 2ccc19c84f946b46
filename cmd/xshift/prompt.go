package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xitonix/xshift/config"
)

// errInvalidShift is returned when the user enters something other than an integer
var errInvalidShift = errors.New("invalid input. Please enter integers for shift values")

// prompter asks the user for input on the terminal
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// AskForInt asks the user for an integer. Anything else is rejected with errInvalidShift.
func (p *prompter) AskForInt(msg string) (int, error) {
	fmt.Fprint(p.out, msg)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := config.ParseShift(strings.TrimSpace(p.scanner.Text()))
	if err != nil {
		return 0, errInvalidShift
	}
	return v, nil
}

// AskForConfirmation asks the user for confirmation. The user must type in "yes" or "no" and
// then press enter. It has fuzzy matching, so "y", "Y", "yes", "YES", and "Yes" all count as
// confirmations. If the input is not recognized, it will ask again. The function does not return
// until it gets a valid response from the user or the input is exhausted.
func (p *prompter) AskForConfirmation(s string) bool {
	msg := fmt.Sprintf("%s [y/n]?: ", s)
	for fmt.Fprint(p.out, msg); p.scanner.Scan(); fmt.Fprint(p.out, msg) {
		response := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
		if response == "y" || response == "yes" {
			return true
		} else if response == "n" || response == "no" {
			return false
		}
	}
	return false
}
