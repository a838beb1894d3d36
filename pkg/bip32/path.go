package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// MaxPathDepth mirrors the ten-level limit of hardware wallet firmwares.
const MaxPathDepth = 10

// Path is a parsed derivation path, hardened components carry the
// hdkeychain.HardenedKeyStart bit.
type Path []uint32

// ParsePath accepts "m/44'/535348'/0'/0/0" style paths; "h" is accepted as
// an alternative hardened marker.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s != "m" && !strings.HasPrefix(s, "m/") {
		return nil, fmt.Errorf("%w: %q must start with m/", ErrInvalidPath, s)
	}
	if s == "m" {
		return Path{}, nil
	}

	segments := strings.Split(s[2:], "/")
	if len(segments) > MaxPathDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrInvalidPath, len(segments), MaxPathDepth)
	}

	path := make(Path, 0, len(segments))
	for _, segment := range segments {
		hardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			hardened = true
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil || val >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: bad segment %q", ErrInvalidPath, segment)
		}
		index := uint32(val)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		path = append(path, index)
	}
	return path, nil
}

// MustParsePath is ParsePath for package level constants.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range p {
		sb.WriteByte('/')
		if index >= hdkeychain.HardenedKeyStart {
			sb.WriteString(strconv.FormatUint(uint64(index-hdkeychain.HardenedKeyStart), 10))
			sb.WriteByte('\'')
		} else {
			sb.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return sb.String()
}

// Clone returns a copy so callers can never mutate a shared path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
