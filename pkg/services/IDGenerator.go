package services

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/sqids/sqids-go"
)

const (
	DefaultAlbumIDLength = 8
	albumIDAlphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
	maxSqidsLength       = 255
)

/*
IDGenerator produces album IDs. Every generated ID must be safe to drop
straight into a query string without encoding.
*/
type IDGenerator interface {
	GenerateID() (string, error)
}

/*
NewIDGenerator returns the generator for the named scheme: "random",
"sqids" or "uuid".
*/
func NewIDGenerator(scheme string, length int) (IDGenerator, error) {
	switch strings.ToLower(scheme) {
	case "", "random":
		return NewRandomIDGenerator(length), nil

	case "sqids":
		return NewSqidsIDGenerator(length)

	case "uuid":
		return UUIDIDGenerator{}, nil
	}

	return nil, fmt.Errorf("unknown album ID scheme '%s'", scheme)
}

type RandomIDGenerator struct {
	length int
}

func NewRandomIDGenerator(length int) RandomIDGenerator {
	if length <= 0 {
		length = DefaultAlbumIDLength
	}

	return RandomIDGenerator{
		length: length,
	}
}

// GenerateID returns lowercase base-36 characters from crypto/rand.
func (g RandomIDGenerator) GenerateID() (string, error) {
	var (
		err error
		n   *big.Int
	)

	max := big.NewInt(int64(len(albumIDAlphabet)))
	result := make([]byte, g.length)

	for i := range result {
		if n, err = rand.Int(rand.Reader, max); err != nil {
			return "", fmt.Errorf("error generating album ID: %w", err)
		}

		result[i] = albumIDAlphabet[n.Int64()]
	}

	return string(result), nil
}

type SqidsIDGenerator struct {
	encoder *sqids.Sqids
}

func NewSqidsIDGenerator(minLength int) (SqidsIDGenerator, error) {
	if minLength <= 0 {
		minLength = DefaultAlbumIDLength
	}

	if minLength > maxSqidsLength {
		return SqidsIDGenerator{}, fmt.Errorf("sqids album IDs cannot be longer than %d characters, got %d", maxSqidsLength, minLength)
	}

	encoder, err := sqids.New(sqids.Options{
		MinLength: uint8(minLength),
	})

	if err != nil {
		return SqidsIDGenerator{}, fmt.Errorf("error initializing sqids encoder: %w", err)
	}

	return SqidsIDGenerator{
		encoder: encoder,
	}, nil
}

// GenerateID encodes a random number. IDs are at least the configured length.
func (g SqidsIDGenerator) GenerateID() (string, error) {
	var (
		err error
		id  string
	)

	b := make([]byte, 8)

	if _, err = rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating album ID: %w", err)
	}

	if id, err = g.encoder.Encode([]uint64{binary.BigEndian.Uint64(b)}); err != nil {
		return "", fmt.Errorf("error encoding album ID: %w", err)
	}

	return id, nil
}

type UUIDIDGenerator struct{}

func (UUIDIDGenerator) GenerateID() (string, error) {
	id, err := uuid.NewRandom()

	if err != nil {
		return "", fmt.Errorf("error generating album ID: %w", err)
	}

	return strings.ReplaceAll(id.String(), "-", ""), nil
}
