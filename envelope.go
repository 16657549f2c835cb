package serializer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// ivSize is the envelope IV length; it always equals the AES block size.
const ivSize = aes.BlockSize

// cbcCipher implements Cipher with the fixed envelope parameters:
// AES-256 in CBC mode with PKCS7 padding, key = SHA-256(secret).
type cbcCipher struct{}

// AESCBC returns the envelope cipher. The envelope layout is
//
//	IV (16 bytes) ++ ciphertext
//
// with a fresh random IV per Encrypt call. The parameters are wire-format
// constants; any interoperating implementation must match them exactly.
// The envelope is not authenticated.
func AESCBC() Cipher {
	return &cbcCipher{}
}

// deriveKey turns an arbitrary-length secret into a 256-bit AES key.
// One SHA-256 hash, no stretching: this is part of the wire contract.
func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

func (c *cbcCipher) Encrypt(plaintext []byte, secret string) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	envelope := make([]byte, ivSize+len(padded))
	if _, err := io.ReadFull(rand.Reader, envelope[:ivSize]); err != nil {
		return nil, fmt.Errorf("%w: reading iv: %w", ErrCrypto, err)
	}

	cipher.NewCBCEncrypter(block, envelope[:ivSize]).CryptBlocks(envelope[ivSize:], padded)
	return envelope, nil
}

func (c *cbcCipher) Decrypt(envelope []byte, secret string) ([]byte, error) {
	if len(envelope) < ivSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: %w: %d bytes", ErrCrypto, ErrCiphertextShort, len(envelope))
	}
	iv, ciphertext := envelope[:ivSize], envelope[ivSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrCrypto, len(ciphertext))
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}
	return plaintext, nil
}

// pkcs7Pad appends 1..blockSize padding bytes, each holding the padding
// length. Input that already ends on a block boundary gains a full block.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad validates and strips PKCS7 padding. A wrong key almost
// always fails here, but a forged or bit-flipped envelope can slip
// through: padding is not an integrity check.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
