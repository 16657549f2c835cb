package serializer

import (
	"context"
	"encoding/base64"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"github.com/zoobzio/sentinel"
)

// config collects pipeline options before construction.
type config struct {
	codec      Codec
	converters *Registry
	compressor Compressor
	cipher     Cipher
	debug      *zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*config)

// WithCodec replaces the default JSON codec. A custom codec does not
// consult the converter registry; only the default JSON codec does.
func WithCodec(c Codec) Option {
	return func(cfg *config) { cfg.codec = c }
}

// WithConverters sets the converter registry backing the default JSON
// codec. Share one registry by reference across all pipelines that must
// agree on converter behavior.
func WithConverters(r *Registry) Option {
	return func(cfg *config) { cfg.converters = r }
}

// WithConverter registers a single converter into the pipeline's registry,
// creating one if no registry was supplied.
func WithConverter(c Converter) Option {
	return func(cfg *config) {
		if cfg.converters == nil {
			cfg.converters = NewRegistry()
		}
		cfg.converters.Register(c)
	}
}

// WithCompressor replaces the default gzip compressor.
func WithCompressor(c Compressor) Option {
	return func(cfg *config) { cfg.compressor = c }
}

// WithCipher replaces the default AES-256-CBC envelope cipher. Envelopes
// produced with a non-default cipher are not interoperable with the
// standard envelope format.
func WithCipher(c Cipher) Option {
	return func(cfg *config) { cfg.cipher = c }
}

// WithDebugLogger enables the opt-in diagnostic mode: stage byte counts
// and the (public) envelope IV are logged at debug level. The secret and
// the derived key are never logged. Leave unset in production unless
// actively debugging interop issues.
func WithDebugLogger(logger zerolog.Logger) Option {
	return func(cfg *config) { cfg.debug = &logger }
}

// newConfig applies options over defaults.
func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.converters == nil {
		cfg.converters = NewRegistry()
	}
	if cfg.codec == nil {
		cfg.codec = JSON(cfg.converters)
	}
	if cfg.compressor == nil {
		cfg.compressor = Gzip()
	}
	if cfg.cipher == nil {
		cfg.cipher = AESCBC()
	}
	return cfg
}

// Pipeline is the only entry point external callers use. It orchestrates
// encode → compress → encrypt → base64 on Seal and the mirror order on
// Open; Marshal and Unmarshal skip the compression and encryption stages
// entirely.
//
// A Pipeline is stateless per call and safe for concurrent use once its
// converter registry is stable. Every call is a synchronous, in-memory
// transformation bounded by the size of its input; there is no
// cancellation surface.
type Pipeline[T any] struct {
	codec      Codec
	compressor Compressor
	cipher     Cipher
	typeName   string
	debug      *zerolog.Logger
}

// New builds a pipeline for type T with the given options.
func New[T any](opts ...Option) *Pipeline[T] {
	return newPipeline[T](newConfig(opts))
}

func newPipeline[T any](cfg config) *Pipeline[T] {
	p := &Pipeline[T]{
		codec:      cfg.codec,
		compressor: cfg.compressor,
		cipher:     cfg.cipher,
		typeName:   typeNameFor[T](),
		debug:      cfg.debug,
	}
	emitPipelineCreated(context.Background(), cfg.codec.ContentType(), p.typeName)
	return p
}

// typeNameFor resolves T's display name, letting sentinel scan named
// struct types so later structural encoding hits its metadata cache.
func typeNameFor[T any]() string {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Struct && rt.Name() != "" {
		spec := sentinel.Scan[T]()
		return spec.TypeName
	}
	return rt.String()
}

// Marshal encodes v as plain text in the codec's format.
func (p *Pipeline[T]) Marshal(v T) (string, error) {
	start := time.Now()
	ctx := context.Background()
	emitStart(ctx, SignalMarshalStart, p.codec.ContentType(), p.typeName)

	data, err := p.codec.Marshal(v)
	if err != nil {
		err = newCodecError(ErrEncode, err)
	}
	emitComplete(ctx, SignalMarshalComplete, p.codec.ContentType(), p.typeName, len(data), time.Since(start), err)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes plain text produced by Marshal back into a T.
func (p *Pipeline[T]) Unmarshal(text string) (T, error) {
	start := time.Now()
	ctx := context.Background()
	emitStart(ctx, SignalUnmarshalStart, p.codec.ContentType(), p.typeName)

	var v T
	err := p.codec.Unmarshal([]byte(text), &v)
	if err != nil {
		err = newCodecError(ErrDecode, err)
	}
	emitComplete(ctx, SignalUnmarshalComplete, p.codec.ContentType(), p.typeName, len(text), time.Since(start), err)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Seal encodes v, compresses it, encrypts it under secret, and returns
// the Base64 envelope. Two Seal calls with identical inputs never yield
// identical envelopes; the IV is random per call.
func (p *Pipeline[T]) Seal(v T, secret string) (string, error) {
	start := time.Now()
	ctx := context.Background()
	emitStart(ctx, SignalSealStart, p.codec.ContentType(), p.typeName)

	envelope, err := p.seal(v, secret)
	emitComplete(ctx, SignalSealComplete, p.codec.ContentType(), p.typeName, len(envelope), time.Since(start), err)
	if err != nil {
		return "", err
	}
	return envelope, nil
}

func (p *Pipeline[T]) seal(v T, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: %w", ErrCrypto, ErrEmptySecret)
	}

	plain, err := p.codec.Marshal(v)
	if err != nil {
		return "", newCodecError(ErrEncode, err)
	}

	packed, err := p.compressor.Compress(plain)
	if err != nil {
		return "", err
	}

	sealed, err := p.cipher.Encrypt(packed, secret)
	if err != nil {
		return "", err
	}

	if p.debug != nil {
		p.debug.Debug().
			Str("type", p.typeName).
			Int("plaintext_bytes", len(plain)).
			Int("compressed_bytes", len(packed)).
			Int("envelope_bytes", len(sealed)).
			Hex("iv", sealed[:ivSize]).
			Msg("sealed envelope")
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal: Base64 decode, decrypt under secret, decompress,
// decode. The first failing stage aborts the call; a wrong secret and a
// corrupted envelope are indistinguishable and both surface as a
// decode-class failure.
func (p *Pipeline[T]) Open(envelope string, secret string) (T, error) {
	start := time.Now()
	ctx := context.Background()
	emitStart(ctx, SignalOpenStart, p.codec.ContentType(), p.typeName)

	v, err := p.open(envelope, secret)
	emitComplete(ctx, SignalOpenComplete, p.codec.ContentType(), p.typeName, len(envelope), time.Since(start), err)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (p *Pipeline[T]) open(envelope string, secret string) (T, error) {
	var zero T
	if secret == "" {
		return zero, fmt.Errorf("%w: %w", ErrCrypto, ErrEmptySecret)
	}

	sealed, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	packed, err := p.cipher.Decrypt(sealed, secret)
	if err != nil {
		return zero, err
	}

	plain, err := p.compressor.Decompress(packed)
	if err != nil {
		return zero, err
	}

	if p.debug != nil {
		p.debug.Debug().
			Str("type", p.typeName).
			Int("envelope_bytes", len(sealed)).
			Int("compressed_bytes", len(packed)).
			Int("plaintext_bytes", len(plain)).
			Hex("iv", sealed[:ivSize]).
			Msg("opened envelope")
	}

	var v T
	if err := p.codec.Unmarshal(plain, &v); err != nil {
		return zero, newCodecError(ErrDecode, err)
	}
	return v, nil
}
