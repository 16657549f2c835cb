package serializer

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error classes.
var (
	// ErrEncode indicates a value could not be rendered as text.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates text is not valid for the requested type: not
	// valid JSON, a structural mismatch, or a null where a value was
	// required.
	ErrDecode = errors.New("decode failed")

	// ErrFormat indicates a malformed Base64 envelope payload.
	ErrFormat = errors.New("malformed base64 payload")

	// ErrCrypto indicates an encryption or decryption failure: invalid
	// ciphertext length, padding mismatch, or an unusable secret.
	ErrCrypto = errors.New("crypto failure")

	// ErrCompression indicates a corrupt or truncated compressed stream.
	ErrCompression = errors.New("compression failure")
)

// Specializations wrapped alongside the classes above.
var (
	// ErrCiphertextShort indicates an envelope too small to hold an IV
	// and at least one cipher block.
	ErrCiphertextShort = errors.New("ciphertext too short")

	// ErrInvalidPadding indicates PKCS7 padding validation failed after
	// decryption, typically a wrong secret or corrupted ciphertext.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrEmptySecret indicates Seal or Open was called with an empty
	// secret.
	ErrEmptySecret = errors.New("empty secret")

	// ErrNullValue indicates a JSON null where a non-nilable value was
	// required.
	ErrNullValue = errors.New("required value is null")
)

// CodecError represents a marshal/unmarshal failure on the codec boundary.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrEncode, ErrDecode)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newCodecError wraps a codec failure with its sentinel class.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
