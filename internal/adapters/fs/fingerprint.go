package fs

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
// The same bytes hash differently as a source fingerprint and as a file-name hash.
type domainKey [32]byte

var (
	sourceDomainKey = domainKey{
		's', 'r', 'c', 's', 'e', 't', '.', 'd', 'e', 'r', 'i', 'v', 'a', 't', 'i', 'v',
		'e', '.', 's', 'o', 'u', 'r', 'c', 'e', 0, 0, 0, 0, 0, 0, 0, 0,
	}

	nameDomainKey = domainKey{
		's', 'r', 'c', 's', 'e', 't', '.', 'd', 'e', 'r', 'i', 'v', 'a', 't', 'i', 'v',
		'e', '.', 'n', 'a', 'm', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Fingerprinter derives source fingerprints and derivative name hashes with keyed BLAKE3.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint hashes the source bytes, the matrix version and every transform.
// Variable-length fields are length-prefixed so no two inputs share an encoding.
func (f *Fingerprinter) Fingerprint(data []byte, matrixVersion string, specs []domain.TransformSpec) domain.Fingerprint {
	h := newKeyed(sourceDomainKey)

	writeField(h, data)
	writeField(h, []byte(matrixVersion))
	writeUint(h, uint64(len(specs)))
	for _, s := range specs {
		writeSpec(h, s)
	}

	var fp domain.Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// DerivativeHash returns the hex digest naming one derivative of a fingerprinted source.
func (f *Fingerprinter) DerivativeHash(fp domain.Fingerprint, spec domain.TransformSpec) string {
	h := newKeyed(nameDomainKey)

	_, _ = h.Write(fp[:])
	writeSpec(h, spec)

	return hex.EncodeToString(h.Sum(nil))
}

func writeSpec(h *blake3.Hasher, s domain.TransformSpec) {
	writeField(h, []byte(s.Format))
	writeUint(h, uint64(s.Width))  //nolint:gosec // Widths are validated positive
	writeUint(h, uint64(s.Quality)) //nolint:gosec // Quality is validated in 1..100
}

func writeField(h *blake3.Hasher, b []byte) {
	writeUint(h, uint64(len(b)))
	_, _ = h.Write(b)
}

func writeUint(h *blake3.Hasher, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func newKeyed(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes long.
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("fs: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return h
}
