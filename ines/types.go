package ines

//go:generate go tool stringer -type=NTMirroring,Format,ConsoleType,Timing -linecomment -output types_string.go

// NTMirroring describes how the 4 logical nametables fold into the 2 KiB
// of PPU VRAM.
type NTMirroring uint8

const (
	HorzMirroring NTMirroring = iota // Horizontal
	VertMirroring                    // Vertical
	OnlyAScreen                      // SingleScreenLower
	OnlyBScreen                      // SingleScreenUpper
	FourScreen                       // FourScreen
)

// Format is the rom file format, detected from header byte 7.
type Format uint8

const (
	INES  Format = iota // iNES
	NES20               // NES 2.0
)

type ConsoleType uint8

const (
	NES             ConsoleType = iota // NES/Famicom
	VsSystem                           // Vs. System
	Playchoice10                       // Playchoice 10
	ExtendedConsole                    // Extended
)

type Timing uint8

const (
	NTSC        Timing = iota // NTSC
	PAL                       // PAL
	MultiRegion               // Multi-region
	Dendy                     // Dendy
)
