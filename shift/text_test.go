package shift

import (
	"errors"
	"math"
	"testing"

	"github.com/NebulousLabs/fastrand"
	"github.com/google/go-cmp/cmp"
	"github.com/xitonix/xshift/assert"
)

func TestEncodeRecordsScenario(t *testing.T) {
	params := NewParams(3, 4)
	records := EncodeRecords("Hi!\n", params)

	expected := []Record{
		{Repr: "E", Category: UpperFirstHalf},
		{Repr: "u", Category: LowerFirstHalf},
		{Repr: "!", Category: Other},
		{Repr: NewlineMarker, Category: Newline},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}

	stream := EncodeString("Hi!\n", params)
	if stream != "E,AM\nu,lm\n!,sp\n[NL],nl\n" {
		t.Errorf("unexpected stream %q", stream)
	}

	decoded, err := DecodeString(stream, params)
	if !assert.Errors(t, false, err, nil) {
		return
	}
	if !Verify("Hi!\n", decoded) {
		t.Errorf("expected %q, actual %q", "Hi!\n", decoded)
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		title string
		input string
	}{
		{title: "empty_input", input: ""},
		{title: "letters_only", input: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{title: "non_letters_only", input: "0123456789 !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~\t"},
		{title: "mixed_case", input: "The Quick Brown Fox Jumps Over The Lazy Dog"},
		{title: "embedded_newlines", input: "line one\nline two\n\nline four\n"},
		{title: "windows_line_endings", input: "first\r\nsecond\r\n"},
		{title: "only_commas", input: ",,,"},
		{title: "only_newlines", input: "\n\n\n"},
		{title: "marker_lookalike", input: "[NL],nl\n"},
		{title: "unicode", input: "Grüße, 世界 🌍"},
		{title: "invalid_utf8", input: "a\xffb\xc3"},
	}

	params := []Params{NewParams(0, 0), NewParams(3, 4), NewParams(-5, 3), NewParams(-13, -26), NewParams(99, 101)}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			for _, p := range params {
				decoded, err := DecodeString(EncodeString(tc.input, p), p)
				if !assert.Errors(t, false, err, assert.Fields{"params": p}) {
					continue
				}
				if !Verify(tc.input, decoded) {
					t.Errorf("expected %q, actual %q (%s)", tc.input, decoded, p)
				}

				decoded, err = DecodeRecords(EncodeRecords(tc.input, p), p)
				if !assert.Errors(t, false, err, assert.Fields{"params": p}) {
					continue
				}
				if decoded != tc.input {
					t.Errorf("expected %q, actual %q (%s)", tc.input, decoded, p)
				}
			}
		})
	}
}

func TestRandomRoundTrip(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 ,.!?\n\r\t"
	for i := 0; i < 200; i++ {
		p := RandomParams(1000)
		buf := make([]byte, fastrand.Intn(64))
		for j := range buf {
			buf[j] = alphabet[fastrand.Intn(len(alphabet))]
		}
		text := string(buf)

		decoded, err := DecodeString(EncodeString(text, p), p)
		if !assert.Errors(t, false, err, assert.Fields{"params": p, "text": text}) {
			continue
		}
		if decoded != text {
			t.Errorf("expected %q, actual %q (%s)", text, decoded, p)
		}
	}
}

func TestRecordCountMatchesCharacterCount(t *testing.T) {
	text := "Hello,\nWorld!"
	records := EncodeRecords(text, NewParams(7, 2))
	if len(records) != len([]rune(text)) {
		t.Errorf("expected %d records, actual %d", len([]rune(text)), len(records))
	}
}

func TestDecodeStringSkipsEmptyLines(t *testing.T) {
	decoded, err := DecodeString("\nE,AM\n\n\nu,lm\n\n", NewParams(3, 4))
	if !assert.Errors(t, false, err, nil) {
		return
	}
	if decoded != "Hi" {
		t.Errorf("expected 'Hi', actual %q", decoded)
	}
}

func TestDecodeStringMalformedStream(t *testing.T) {
	testCases := []struct {
		title         string
		stream        string
		expectedError error
		expectedLine  int
	}{
		{
			title:         "missing_separator",
			stream:        "E,AM\nxyz\n",
			expectedError: ErrMissingSeparator,
			expectedLine:  2,
		},
		{
			title:         "unknown_tag",
			stream:        "E,AM\n\nu,LM\n",
			expectedError: ErrUnknownTag,
			expectedLine:  3,
		},
		{
			title:         "letter_of_the_wrong_case",
			stream:        "e,AM\n",
			expectedError: ErrInvalidRepresentation,
			expectedLine:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			decoded, err := DecodeString(tc.stream, NewParams(3, 4))
			if !assert.ErrorIs(t, err, tc.expectedError, nil) {
				return
			}
			if decoded != "" {
				t.Errorf("expected no decoded text, actual %q", decoded)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected a *FormatError, actual %T", err)
			}
			if fe.Line != tc.expectedLine {
				t.Errorf("expected line %d, actual %d", tc.expectedLine, fe.Line)
			}
		})
	}
}

func TestDecodeWithMismatchedParamsIsNotDetected(t *testing.T) {
	stream := EncodeString("Hello", NewParams(3, 4))
	decoded, err := DecodeString(stream, NewParams(4, 3))
	if !assert.Errors(t, false, err, nil) {
		return
	}
	if Verify("Hello", decoded) {
		t.Error("decoding with different shift values was not expected to reproduce the text")
	}
}

func TestRandomParams(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := RandomParams(5)
		if p.Shift1 < -5 || p.Shift1 > 5 || p.Shift2 < -5 || p.Shift2 > 5 {
			t.Fatalf("shift values out of range: %s", p)
		}
	}
}

func TestRandomParamsLargeLimits(t *testing.T) {
	testCases := []struct {
		title string
		limit int
	}{
		{title: "boundary", limit: maxRandomLimit},
		{title: "above_boundary", limit: maxRandomLimit + 1},
		{title: "max_int", limit: math.MaxInt},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				p := RandomParams(tc.limit)
				if p.Shift1 < -maxRandomLimit || p.Shift1 > maxRandomLimit || p.Shift2 < -maxRandomLimit || p.Shift2 > maxRandomLimit {
					t.Fatalf("shift values out of range: %s", p)
				}
			}
		})
	}
}
