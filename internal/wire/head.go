// Package wire implements the lowest layer of the decoder: reading one
// CBOR head (major type, additional-info, and its argument bytes) from a
// byte cursor. The wire format is always big-endian; there is no host byte
// order to abstract over here, unlike a typed binary container format.
package wire

import (
	"encoding/binary"

	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/types"
)

// Head is one decoded CBOR head: major type, additional-info code, and the
// resolved argument (the inline ainfo value, or the big-endian integer that
// followed it).
type Head struct {
	Major     types.MajorType
	AddInfo   byte
	Arg       uint64
	ArgBytes  int // number of argument bytes consumed after the head byte (0,1,2,4,8)
	HeadBytes int // total bytes consumed by the head (1 + ArgBytes)
}

// IsIndefinite reports whether this head signals an indefinite-length
// string/array/map (ainfo 31, major types 2-5) or a BREAK (ainfo 31, major
// type 7).
func (h Head) IsIndefinite() bool {
	return h.AddInfo == types.AddInfoIndefinite
}

// IsBreak reports whether this head is the BREAK sentinel (0xff).
func (h Head) IsBreak() bool {
	return h.Major == types.MajorSimple && h.AddInfo == types.AddInfoIndefinite
}

// ReadHead decodes one CBOR head starting at buf[off] and returns it along
// with the offset of the first byte following the head.
func ReadHead(buf []byte, off int) (Head, int, error) {
	if off >= len(buf) {
		return Head{}, off, errs.ErrHitEnd
	}

	b := buf[off]
	h := Head{
		Major:   types.MajorType(b >> 5),
		AddInfo: b & 0x1f,
	}
	cursor := off + 1

	switch {
	case h.AddInfo < types.AddInfoOneByte:
		h.Arg = uint64(h.AddInfo)

	case h.AddInfo == types.AddInfoOneByte:
		v, next, err := readUint(buf, cursor, 1)
		if err != nil {
			return Head{}, off, err
		}
		h.Arg, cursor, h.ArgBytes = v, next, 1

	case h.AddInfo == types.AddInfoTwoBytes:
		v, next, err := readUint(buf, cursor, 2)
		if err != nil {
			return Head{}, off, err
		}
		h.Arg, cursor, h.ArgBytes = v, next, 2

	case h.AddInfo == types.AddInfoFourBytes:
		v, next, err := readUint(buf, cursor, 4)
		if err != nil {
			return Head{}, off, err
		}
		h.Arg, cursor, h.ArgBytes = v, next, 4

	case h.AddInfo == types.AddInfoEightBytes:
		v, next, err := readUint(buf, cursor, 8)
		if err != nil {
			return Head{}, off, err
		}
		h.Arg, cursor, h.ArgBytes = v, next, 8

	case h.AddInfo == types.AddInfoReserved1, h.AddInfo == types.AddInfoReserved2, h.AddInfo == types.AddInfoReserved3:
		return Head{}, off, errs.ErrUnsupported

	case h.AddInfo == types.AddInfoIndefinite:
		switch h.Major {
		case types.MajorUnsignedInt, types.MajorNegativeInt:
			return Head{}, off, errs.ErrBadInt
		}
		// indefinite length or BREAK: no argument bytes follow
	}

	h.HeadBytes = cursor - off
	return h, cursor, nil
}

func readUint(buf []byte, off, n int) (uint64, int, error) {
	if off+n > len(buf) {
		return 0, off, errs.ErrHitEnd
	}
	var v uint64
	switch n {
	case 1:
		v = uint64(buf[off])
	case 2:
		v = uint64(binary.BigEndian.Uint16(buf[off : off+2]))
	case 4:
		v = uint64(binary.BigEndian.Uint32(buf[off : off+4]))
	case 8:
		v = binary.BigEndian.Uint64(buf[off : off+8])
	}
	return v, off + n, nil
}
