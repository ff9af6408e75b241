package storage

import (
	"fmt"

	"emotrack/internal/storage/interfaces"
	"emotrack/internal/structures"

	"github.com/klauspost/compress/zstd"
)

const defaultCompressionLevel = 3

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

// NewZstdCompressor maps persistence.compressionLevel (zstd's 1..22 scale)
// onto the closest encoder preset.
func NewZstdCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	level := conf.Persistence.CompressionLevel
	if level <= 0 {
		level = defaultCompressionLevel
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
