package assets

import (
	"encoding/hex"
	"slices"
	"strings"
)

const (
	songFormatVersion = 0
	// DefaultTempo is used for new songs when no tempo is configured.
	DefaultTempo = 120
)

// Song holds a tempo and opaque track data.
type Song struct {
	Tempo  int
	Tracks []byte
}

var _ Payload = (*Song)(nil)

// NewSong returns an empty song at the given tempo.
func NewSong(tempo int) *Song {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	return &Song{Tempo: tempo, Tracks: []byte{}}
}

func (s *Song) Kind() Type { return TypeSong }

func (s *Song) Clone() Payload {
	if s == nil {
		return (*Song)(nil)
	}
	tracks := slices.Clone(s.Tracks)
	if tracks == nil {
		tracks = []byte{}
	}
	return &Song{Tempo: s.Tempo, Tracks: tracks}
}

func (s *Song) Equal(other Payload) bool {
	o, ok := other.(*Song)
	if !ok || s == nil || o == nil {
		return ok && s == o
	}
	return s.Tempo == o.Tempo && slices.Equal(s.Tracks, o.Tracks)
}

// EncodeSongLiteral renders the song as hex`...`: a version byte, the tempo
// as little endian uint16, then the track bytes.
func EncodeSongLiteral(s *Song) string {
	if s == nil {
		s = NewSong(0)
	}
	buf := make([]byte, 0, 3+len(s.Tracks))
	buf = append(buf, songFormatVersion, byte(s.Tempo), byte(s.Tempo>>8))
	buf = append(buf, s.Tracks...)
	return "hex`" + hex.EncodeToString(buf) + "`"
}

// DecodeSongLiteral parses a hex`...` song literal.
func DecodeSongLiteral(text string) (*Song, error) {
	body, ok := taggedBody(text, "hex")
	if !ok {
		return nil, ErrInvalidLiteral
	}
	raw, err := hex.DecodeString(strings.TrimSpace(body))
	if err != nil || len(raw) < 3 || raw[0] != songFormatVersion {
		return nil, ErrInvalidLiteral
	}
	tempo := int(raw[1]) | int(raw[2])<<8
	if tempo == 0 {
		return nil, ErrInvalidLiteral
	}
	return &Song{Tempo: tempo, Tracks: slices.Clone(raw[3:])}, nil
}
