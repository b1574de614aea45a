package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/andybalholm/brotli"
	"github.com/fxamacker/cbor/v2"
)

// Format selects the serialization of the stored blob.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat maps a configuration value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown codec format %q", s)
	}
}

// Blobs other than plain JSON start with a two byte header: frameMagic followed by flags.
// A JSON document never begins with frameMagic, so headerless blobs are read as plain JSON.
const (
	frameMagic byte = 0xA7

	flagCBOR   byte = 1 << 0
	flagBrotli byte = 1 << 1
)

// ErrUnknownFrame is returned when a blob header carries flags this codec does not understand.
var ErrUnknownFrame = errors.New("unknown blob frame flags")

// Codec encodes values to blobs and back. The zero value writes plain JSON.
type Codec struct {
	Format   Format // Serialization written by Encode.
	Compress bool   // Whether Encode compresses the payload with brotli.
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	// Core Deterministic Encoding gives identical bytes for identical ledgers.
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("persist: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("persist: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes v according to the codec settings.
func (c Codec) Encode(v any) ([]byte, error) {
	var (
		payload []byte
		flags   byte
		err     error
	)

	switch c.Format {
	case FormatCBOR:
		payload, err = cborEnc.Marshal(v)
		flags |= flagCBOR
	case FormatJSON, "":
		payload, err = json.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown codec format %q", c.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshalling %s : %w", c.formatName(), err)
	}

	if c.Compress {
		payload, err = compress(payload)
		if err != nil {
			return nil, err
		}
		flags |= flagBrotli
	}

	if flags == 0 {
		return payload, nil
	}

	return append([]byte{frameMagic, flags}, payload...), nil
}

// Decode deserializes blob into v. The frame header decides the format, so a codec reads blobs
// written with any settings.
func (c Codec) Decode(blob []byte, v any) error {
	flags := byte(0)
	payload := blob
	if len(blob) >= 2 && blob[0] == frameMagic {
		flags = blob[1]
		payload = blob[2:]
	}

	if flags&^(flagCBOR|flagBrotli) != 0 {
		return fmt.Errorf("decoding frame %#x : %w", flags, ErrUnknownFrame)
	}

	if flags&flagBrotli != 0 {
		var err error
		payload, err = decompress(payload)
		if err != nil {
			return err
		}
	}

	if flags&flagCBOR != 0 {
		if err := cborDec.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("unmarshalling cbor : %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("unmarshalling json : %w", err)
	}
	return nil
}

func (c Codec) formatName() string {
	if c.Format == "" {
		return string(FormatJSON)
	}
	return string(c.Format)
}

func compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(payload); err != nil {
		return nil, fmt.Errorf("writing brotli content : %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("closing brotli writer : %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(payload []byte) ([]byte, error) {
	decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(payload)))
	if err != nil {
		return nil, fmt.Errorf("reading brotli content : %w", err)
	}
	return decompressed, nil
}
