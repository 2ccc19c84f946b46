// Package shift implements a tagged character substitution codec.
//
// Every character of the input text is classified into one of six categories (see Classify),
// transformed with the arithmetic of its category driven by two shift values (see Params) and
// persisted as one record per line, next to the short tag of its category:
//
//	E,AM
//	u,lm
//	!,sp
//	[NL],nl
//
// Decoding relies on the stored tag rather than classifying the transformed character again,
// which makes the transformation exactly reversible for any pair of shift values:
//
//	params := shift.NewParams(3, 4)
//	stream := shift.EncodeString("Hi!\n", params)
//	text, err := shift.DecodeString(stream, params)
//
// The stream must be decoded with the same shift values which have been used to encode it.
// The codec has no way to detect a mismatch, in which case the decoded text will be garbage.
//
// Encoder and Decoder process any io.Reader into one or more io.Writer outputs. To process
// many files at the same time, implement a Tap and connect it to an Engine:
//
//	engine := shift.NewEngine(parallelism, params, tap)
//	engine.Start()
//	...
//	engine.Stop()
//
// This is not a secure cipher.
package shift
