package filestore

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type zstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZstdCompression() (*zstdCompression, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &zstdCompression{encoder: encoder, decoder: decoder}, nil
}

func (z *zstdCompression) compress(val []byte) []byte {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2))
}

func (z *zstdCompression) decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *zstdCompression) close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}
