// Package xshift is a tagged character shift codec.
//
// Every character of a text is classified into one of six categories and written as a
// "<representation>,<tag>" record, one per line. Letters are rotated within the alphabet of
// their case by amounts derived from two integer shift values; newlines are written as the [NL]
// marker and everything else is carried over unchanged. Decoding trusts the tag of every record,
// so the original text is restored byte for byte given the same shift values.
//
// The codec lives in the shift package. You can use the Encoder and Decoder types directly, or
// automate the work by passing a Tap to an Engine. Check the taps package for a list of files
// (FileTap) and a watched directory (DirectoryWatcherTap). The xshift command in cmd/xshift puts
// everything together.
//
// The transform is educational and offers no security.
package xshift
