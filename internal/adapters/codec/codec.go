// Package codec serializes cached loaded values for the value gateway:
// CBOR inside a small envelope, compressed with zstd on disk.
package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/zerr"
)

// Envelope wraps a cached value with the type digests it was written
// under. The gateway compares them against the current hasher before
// deserializing, guarding against type-shape drift.
type Envelope struct {
	TypeHashes map[string]string `cbor:"type_hashes,omitempty"`
	Value      cbor.RawMessage   `cbor:"value"`
}

// Codec encodes and decodes value payloads. Safe for concurrent use.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a Codec.
func New() (*Codec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create zstd encoder")
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create zstd decoder")
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Encode serializes the value and its type digests into a compressed
// payload.
func (c *Codec) Encode(value any, typeHashes map[string]string) ([]byte, error) {
	raw, err := cbor.Marshal(value)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode cached value")
	}
	data, err := cbor.Marshal(Envelope{TypeHashes: typeHashes, Value: raw})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode value envelope")
	}
	return c.enc.EncodeAll(data, nil), nil
}

// Decode parses a compressed payload back into its envelope.
func (c *Codec) Decode(data []byte) (*Envelope, error) {
	plain, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decompress value payload")
	}
	var env Envelope
	if err := cbor.Unmarshal(plain, &env); err != nil {
		return nil, zerr.Wrap(err, "failed to decode value envelope")
	}
	return &env, nil
}

// DecodeValue deserializes the envelope's value.
func (c *Codec) DecodeValue(env *Envelope) (any, error) {
	var value any
	if err := cbor.Unmarshal(env.Value, &value); err != nil {
		return nil, zerr.Wrap(err, "failed to decode cached value")
	}
	return value, nil
}
