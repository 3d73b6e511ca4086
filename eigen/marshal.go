package eigen

import (
	"bytes"
	"encoding/gob"
)

// spectrumWire is the gob image of a Spectrum.
type spectrumWire struct {
	Values  []float64
	Vectors [][]complex128
}

// MarshalBinary encodes the spectrum for persistent caches.
func (s *Spectrum) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(spectrumWire{Values: s.values, Vectors: s.vectors})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a spectrum encoded by MarshalBinary.
func (s *Spectrum) UnmarshalBinary(data []byte) error {
	var w spectrumWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	s.values, s.vectors = w.Values, w.Vectors
	return nil
}
