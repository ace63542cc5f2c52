// Package resp implements the RESP2 wire format used by respkv.
//
// The package is split into three parts:
//
//   - value.go: the Value tagged union covering every wire type
//   - decoder.go: a streaming Decoder that produces one Value per call
//   - encoder.go: Encode/AppendValue and a buffered Encoder, the exact
//     inverse of the decoder
//
// Wire grammar (lines terminated by CRLF):
//
//	+<text>            simple string
//	-<text>            simple error
//	:<int64>           integer
//	$<len> <payload>   bulk string, len=-1 is the null bulk
//	*<count> <values>  array, count=-1 is the null array
//
// Lengths are bounded by MaxLength (512 MiB) and array nesting is bounded
// by the decoder's maximum depth.
package resp
