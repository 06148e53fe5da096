package params

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/hugr-lab/pgliteral"
)

// Compressor handles ZStandard compression for parameter batches.
// Create once and reuse to eliminate allocations.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor.
// Uses SpeedDefault (level 3) for balanced compression ratio and speed.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("params: failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data using ZStandard.
// Safe for concurrent use from multiple goroutines.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, 0, len(data)/2)
	return c.encoder.EncodeAll(data, dst), nil
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
		c.encoder = nil
	}
	return nil
}

// Decompressor handles ZStandard decompression for parameter batches.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("params: failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses ZStandard data.
// Safe for concurrent use from multiple goroutines.
func (d *Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	out, err := d.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("params: failed to decompress: %w", err)
	}
	return out, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() error {
	if d.decoder != nil {
		d.decoder.Close()
		d.decoder = nil
	}
	return nil
}

// MarshalCompressed serializes a batch of values and compresses the result.
func MarshalCompressed(values []pgliteral.Value) ([]byte, error) {
	data, err := Marshal(values)
	if err != nil {
		return nil, err
	}

	compressor, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer compressor.Close()

	return compressor.Compress(data)
}

// UnmarshalCompressed decompresses and deserializes a batch of values.
func UnmarshalCompressed(data []byte) ([]pgliteral.Value, error) {
	decompressor, err := NewDecompressor()
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	raw, err := decompressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	return Unmarshal(raw)
}
