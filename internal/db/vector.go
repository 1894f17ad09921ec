package db

import (
	"encoding/binary"
	"math"
)

// EncodeVector encodes float32s as little-endian binary, the layout
// RediSearch expects for FLOAT32 vector blobs (both stored hash fields and
// query parameters).
func EncodeVector(vec []float32) string {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// DecodeVector is the inverse of EncodeVector. Returns nil if the input
// length is not a multiple of four bytes.
func DecodeVector(s string) []float32 {
	if len(s)%4 != 0 {
		return nil
	}
	out := make([]float32, len(s)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32([]byte(s[i*4 : i*4+4])))
	}
	return out
}
