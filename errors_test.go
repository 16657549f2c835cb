package serializer

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodecError_Is(t *testing.T) {
	err := newCodecError(ErrDecode, errors.New("invalid json"))

	if !errors.Is(err, ErrDecode) {
		t.Error("CodecError should unwrap to ErrDecode")
	}
	if errors.Is(err, ErrEncode) {
		t.Error("CodecError should not match ErrEncode")
	}
}

func TestCodecError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  newCodecError(ErrDecode, errors.New("unexpected token")),
			want: "decode failed: unexpected token",
		},
		{
			name: "without cause",
			err:  &CodecError{Err: ErrEncode},
			want: "encode failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		class error
	}{
		{
			name:  "short ciphertext carries crypto class",
			err:   fmt.Errorf("%w: %w", ErrCrypto, ErrCiphertextShort),
			class: ErrCrypto,
		},
		{
			name:  "padding carries crypto class",
			err:   fmt.Errorf("%w: %w", ErrCrypto, ErrInvalidPadding),
			class: ErrCrypto,
		},
		{
			name:  "empty secret carries crypto class",
			err:   fmt.Errorf("%w: %w", ErrCrypto, ErrEmptySecret),
			class: ErrCrypto,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.class) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.class)
			}
		})
	}
}
