package integration

import (
	"reflect"
	"testing"

	serializer "github.com/Bismuth083/ObjectSerializer"
	"github.com/Bismuth083/ObjectSerializer/msgpack"
	fixtures "github.com/Bismuth083/ObjectSerializer/testing"
	"github.com/Bismuth083/ObjectSerializer/yaml"
)

func TestPipeline_SealOpen_JSON(t *testing.T) {
	testSealOpen(t, nil)
}

func TestPipeline_SealOpen_YAML(t *testing.T) {
	testSealOpen(t, yaml.New())
}

func TestPipeline_SealOpen_MessagePack(t *testing.T) {
	testSealOpen(t, msgpack.New())
}

// testSealOpen drives a full seal/open cycle through the given codec.
// A nil codec exercises the default JSON path.
func testSealOpen(t *testing.T, codec serializer.Codec) {
	t.Helper()

	var opts []serializer.Option
	if codec != nil {
		opts = append(opts, serializer.WithCodec(codec))
	}
	p := serializer.New[fixtures.GameState](opts...)

	orig := fixtures.NewGameState()
	envelope, err := p.Seal(orig, fixtures.TestSecret())
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	got, err := p.Open(envelope, fixtures.TestSecret())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestPipeline_PlainAcrossCodecs(t *testing.T) {
	codecs := map[string]serializer.Codec{
		"yaml":    yaml.New(),
		"msgpack": msgpack.New(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			p := serializer.New[fixtures.GameState](serializer.WithCodec(codec))
			orig := fixtures.NewGameState()

			text, err := p.Marshal(orig)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			got, err := p.Unmarshal(text)
			if err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if !reflect.DeepEqual(orig, got) {
				t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, orig)
			}
		})
	}
}

func TestPipeline_EnvelopeNotInteroperableAcrossCodecs(t *testing.T) {
	jsonPipeline := serializer.New[fixtures.GameState]()
	msgpackPipeline := serializer.New[fixtures.GameState](serializer.WithCodec(msgpack.New()))

	envelope, err := jsonPipeline.Seal(fixtures.NewGameState(), "pw")
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	// The envelope decrypts and decompresses fine, but the inner bytes
	// are JSON, not MessagePack.
	if _, err := msgpackPipeline.Open(envelope, "pw"); err == nil {
		t.Error("msgpack pipeline opened a JSON envelope")
	}
}
