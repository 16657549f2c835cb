package serializer

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for pipeline events.
var (
	SignalPipelineCreated   = capitan.NewSignal("serializer.pipeline.created", "Pipeline instantiated")
	SignalMarshalStart      = capitan.NewSignal("serializer.marshal.start", "Plain serialization beginning")
	SignalMarshalComplete   = capitan.NewSignal("serializer.marshal.complete", "Plain serialization finished")
	SignalUnmarshalStart    = capitan.NewSignal("serializer.unmarshal.start", "Plain deserialization beginning")
	SignalUnmarshalComplete = capitan.NewSignal("serializer.unmarshal.complete", "Plain deserialization finished")
	SignalSealStart         = capitan.NewSignal("serializer.seal.start", "Envelope serialization beginning")
	SignalSealComplete      = capitan.NewSignal("serializer.seal.complete", "Envelope serialization finished")
	SignalOpenStart         = capitan.NewSignal("serializer.open.start", "Envelope deserialization beginning")
	SignalOpenComplete      = capitan.NewSignal("serializer.open.complete", "Envelope deserialization finished")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitPipelineCreated emits an event when a pipeline is created.
func emitPipelineCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalPipelineCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitStart emits the start event for any of the four operations.
func emitStart(ctx context.Context, signal capitan.Signal, contentType, typeName string) {
	capitan.Emit(ctx, signal,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitComplete emits the completion event for any of the four operations.
// size is the byte count of the operation's textual side (output for
// marshal/seal, input for unmarshal/open).
func emitComplete(ctx context.Context, signal capitan.Signal, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, signal, fields...)
	} else {
		capitan.Emit(ctx, signal, fields...)
	}
}
