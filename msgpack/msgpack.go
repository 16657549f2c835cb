// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"

	serializer "github.com/Bismuth083/ObjectSerializer"
)

// msgpackCodec implements serializer.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. MessagePack output is binary and does
// not participate in the portable JSON text format; use it with the
// sealed path or anywhere the bytes stay opaque.
func New() serializer.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
