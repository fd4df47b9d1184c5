package ines

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintInfos writes a human readable description of all header fields.
func (rom *Rom) PrintInfos(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	row := func(name string, format string, args ...any) {
		fmt.Fprintf(tw, "%s\t"+format+"\n", append([]any{name}, args...)...)
	}
	raw := rom.Raw()
	row("header", "% X", raw[:])
	row("format", "%s", rom.Format)
	row("mapper", "%d", rom.Mapper)
	row("submapper", "%d", rom.Submapper)
	row("PRG ROM", "%dKB", len(rom.PRG)/1024)
	row("CHR ROM", "%dKB", len(rom.CHR)/1024)
	row("mirroring", "%s", rom.Mirroring())
	row("trainer", "%t", rom.HasTrainer)
	row("battery", "%t", rom.HasBattery)
	row("console", "%s", rom.Console)
	row("timing", "%s", rom.Timing)
	if rom.Format == NES20 {
		row("PRG RAM", "%d bytes", rom.PRGRAMSize())
		row("PRG NVRAM", "%d bytes", rom.PRGNVRAMSize())
		row("CHR RAM", "%d bytes", rom.CHRRAMSize())
		row("CHR NVRAM", "%d bytes", rom.CHRNVRAMSize())
		switch rom.Console {
		case VsSystem:
			row("Vs. PPU", "%d", rom.VSPPUType)
			row("Vs. hardware", "%d", rom.VSHardwareType)
		case ExtendedConsole:
			row("extended console", "%d", rom.ExtendedConsoleType)
		}
		row("misc ROMs", "%d", rom.MiscROMs)
		row("expansion device", "%d", rom.DefaultExpansion)
	}
	return tw.Flush()
}
