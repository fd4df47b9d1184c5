// Package ines reads NES cartridge images in the iNES and NES 2.0 formats.
package ines

import (
	"errors"
	"fmt"
	"io"
	"os"

	"nescore/emu/log"
)

const (
	Magic = "NES\x1a"

	HeaderLen  = 16
	TrainerLen = 512

	PRGBankSize = 0x4000 // 16k
	CHRBankSize = 0x2000 // 8k
)

var (
	ErrInvalidMagic = errors.New("invalid magic number")
	ErrTruncated    = errors.New("truncated rom")
)

type Rom struct {
	Header
	Trainer []byte // Trainer, 512 bytes if present, or empty.
	PRG     []byte // PRG is PRG ROM data
	CHR     []byte // CHR is CHR ROM data, empty if the cartridge uses CHR RAM
	Misc    []byte // Misc holds whatever follows CHR ROM
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.Decode(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

// Decode parses a whole rom image held in memory. The rom sections alias buf.
func (rom *Rom) Decode(buf []byte) error {
	if err := rom.Header.Decode(buf); err != nil {
		return fmt.Errorf("failed to decode header: %w", err)
	}
	off := HeaderLen

	section := func(name string, size int) ([]byte, error) {
		if size < 0 || size > len(buf)-off {
			return nil, fmt.Errorf("incomplete %s section (%d bytes, want %d): %w",
				name, len(buf)-off, size, ErrTruncated)
		}
		b := buf[off : off+size]
		off += size
		return b, nil
	}

	var err error
	if rom.HasTrainer {
		if rom.Trainer, err = section("TRAINER", TrainerLen); err != nil {
			return err
		}
	}
	if rom.PRG, err = section("PRG", rom.PRGBytes()); err != nil {
		return err
	}
	if rom.CHR, err = section("CHR", rom.CHRBytes()); err != nil {
		return err
	}
	rom.Misc = buf[off:]

	log.ModCart.InfoZ("Loaded rom").
		Stringer("format", rom.Format).
		Uint16("mapper", rom.Mapper).
		Int("prg", len(rom.PRG)).
		Int("chr", len(rom.CHR)).
		Int("misc", len(rom.Misc)).
		Stringer("mirroring", rom.Mirroring()).
		End()
	return nil
}
