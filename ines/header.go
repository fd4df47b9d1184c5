package ines

import (
	"fmt"
	"math"
)

// Header holds the decoded 16-byte cartridge header. All fields are decoded
// following the NES 2.0 layout, whatever the detected format.
type Header struct {
	raw [HeaderLen]byte

	Format Format

	// PRGSize and CHRSize are the 12-bit size fields (bytes 4/5 extended
	// by byte 9), already decoded when they use the exponent-multiplier
	// notation. Use PRGBytes and CHRBytes for section lengths.
	PRGSize int
	CHRSize int

	Mapper    uint16
	Submapper uint8

	AltNametables      bool // byte 6 bit 3
	HasTrainer         bool
	HasBattery         bool
	HardwiredNametable bool // byte 6 bit 0, set for vertical mirroring

	Console ConsoleType

	PRGRAMShift   uint8
	PRGNVRAMShift uint8
	CHRRAMShift   uint8
	CHRNVRAMShift uint8

	Timing Timing

	VSPPUType           uint8
	VSHardwareType      uint8
	ExtendedConsoleType uint8

	MiscROMs         uint8
	DefaultExpansion uint8
}

// Decode decodes the first 16 bytes of p.
func (hdr *Header) Decode(p []byte) error {
	if len(p) < HeaderLen {
		return fmt.Errorf("too small, needs %d bytes, got %d", HeaderLen, len(p))
	}
	if string(p[:4]) != Magic {
		return fmt.Errorf("%w: % x", ErrInvalidMagic, p[:4])
	}

	*hdr = Header{}
	copy(hdr.raw[:], p[:HeaderLen])
	b := &hdr.raw

	hdr.Format = INES
	if b[7]&0x0C == 0x08 {
		hdr.Format = NES20
	}

	hdr.PRGSize = decodeSize(uint16(b[9]&0x0F)<<8 | uint16(b[4]))
	hdr.CHRSize = decodeSize(uint16(b[9]&0xF0)<<4 | uint16(b[5]))

	hdr.Mapper = uint16(b[6]>>4) | uint16(b[7]&0xF0) | uint16(b[8]&0x0F)<<8
	hdr.Submapper = b[8] >> 4

	hdr.AltNametables = b[6]&0x08 != 0
	hdr.HasTrainer = b[6]&0x04 != 0
	hdr.HasBattery = b[6]&0x02 != 0
	hdr.HardwiredNametable = b[6]&0x01 != 0

	hdr.Console = ConsoleType(b[7] & 0x03)

	hdr.PRGNVRAMShift = b[10] >> 4
	hdr.PRGRAMShift = b[10] & 0x0F
	hdr.CHRNVRAMShift = b[11] >> 4
	hdr.CHRRAMShift = b[11] & 0x0F

	hdr.Timing = Timing(b[12] & 0x03)

	switch hdr.Console {
	case VsSystem:
		hdr.VSHardwareType = b[13] >> 4
		hdr.VSPPUType = b[13] & 0x0F
	case ExtendedConsole:
		hdr.ExtendedConsoleType = b[13] & 0x0F
	}

	hdr.MiscROMs = b[14] & 0x03
	hdr.DefaultExpansion = b[15] & 0x3F
	return nil
}

// decodeSize decodes a 12-bit rom size field. When the top nibble is all ones
// the low byte is an exponent-multiplier pair giving a size in bytes, else
// the field is a count of banks.
func decodeSize(raw uint16) int {
	if !isExpMul(raw) {
		return int(raw)
	}
	exp := (raw & 0xFC) >> 2
	mul := uint64(raw & 0x03)
	// Exponents go up to 63, sizes that can't be real are clamped and fail
	// the section length check.
	size := uint64(1) << min(exp, 40) * (2*mul + 1)
	return int(min(size, math.MaxInt32))
}

func isExpMul(raw uint16) bool {
	return raw&0xF00 == 0xF00
}

// Raw returns the undecoded header bytes.
func (hdr *Header) Raw() [HeaderLen]byte {
	return hdr.raw
}

// PRGBytes returns the length in bytes of the PRG ROM section.
func (hdr *Header) PRGBytes() int {
	return hdr.romBytes(hdr.raw[4], hdr.raw[9]&0x0F, hdr.PRGSize, PRGBankSize)
}

// CHRBytes returns the length in bytes of the CHR ROM section.
func (hdr *Header) CHRBytes() int {
	return hdr.romBytes(hdr.raw[5], hdr.raw[9]>>4, hdr.CHRSize, CHRBankSize)
}

func (hdr *Header) romBytes(lsb, msb uint8, decoded, banksz int) int {
	// iNES images often carry garbage in bytes 9-15 so only the lsb counts.
	if hdr.Format == INES {
		return int(lsb) * banksz
	}
	if isExpMul(uint16(msb)<<8 | uint16(lsb)) {
		return decoded
	}
	return decoded * banksz
}

// PRGRAMSize returns the PRG RAM size in bytes, 0 if absent.
func (hdr *Header) PRGRAMSize() int { return shiftSize(hdr.PRGRAMShift) }

// PRGNVRAMSize returns the battery backed PRG RAM size in bytes, 0 if absent.
func (hdr *Header) PRGNVRAMSize() int { return shiftSize(hdr.PRGNVRAMShift) }

// CHRRAMSize returns the CHR RAM size in bytes, 0 if absent.
func (hdr *Header) CHRRAMSize() int { return shiftSize(hdr.CHRRAMShift) }

// CHRNVRAMSize returns the battery backed CHR RAM size in bytes, 0 if absent.
func (hdr *Header) CHRNVRAMSize() int { return shiftSize(hdr.CHRNVRAMShift) }

func shiftSize(shift uint8) int {
	if shift == 0 {
		return 0
	}
	return 64 << shift
}

// Mirroring returns the nametable mirroring hardwired on the cartridge board.
func (hdr *Header) Mirroring() NTMirroring {
	switch {
	case hdr.AltNametables:
		return FourScreen
	case hdr.HardwiredNametable:
		return VertMirroring
	}
	return HorzMirroring
}
