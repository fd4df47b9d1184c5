package main

import (
	"testing"

	"nescore/emu/log"
)

func TestParseLogModules(t *testing.T) {
	tests := []struct {
		names     []string
		wantMask  log.ModuleMask
		wantNolog bool
		wantErr   bool
	}{
		{names: []string{"cpu"}, wantMask: log.ModCPU.Mask()},
		{names: []string{"ppu", "mapper"}, wantMask: log.ModPPU.Mask() | log.ModMapper.Mask()},
		{names: []string{"all"}, wantMask: log.ModuleMaskAll},
		{names: []string{"no"}, wantNolog: true},
		{names: []string{"no", "all"}, wantErr: true},
		{names: []string{"no", "cpu"}, wantErr: true},
		{names: []string{"apu"}, wantMask: log.ModAPU.Mask()},
		{names: []string{"sound"}, wantErr: true},
	}
	for _, tt := range tests {
		mask, nolog, err := parseLogModules(tt.names)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLogModules(%q) error = %v, wantErr %t", tt.names, err, tt.wantErr)
			continue
		}
		if mask != tt.wantMask || nolog != tt.wantNolog {
			t.Errorf("parseLogModules(%q) = %x, %t, want %x, %t", tt.names, mask, nolog, tt.wantMask, tt.wantNolog)
		}
	}
}

func TestApplyLogConfig(t *testing.T) {
	defer log.DisableDebugModules(log.ModuleMaskAll)

	// The flag wins, even over an invalid configuration.
	flag := &logModMask{mask: log.ModCPU.Mask()}
	if err := applyLogConfig([]string{"ppu", "bogus"}, flag); err != nil {
		t.Fatalf("applyLogConfig() with --log = %v, want nil", err)
	}
	if log.ModPPU.Enabled(log.DebugLevel) {
		t.Errorf("ppu debug logs enabled by config despite --log")
	}

	if err := applyLogConfig([]string{"ppu"}, nil); err != nil {
		t.Fatalf("applyLogConfig() = %v", err)
	}
	if !log.ModPPU.Enabled(log.DebugLevel) {
		t.Errorf("ppu debug logs not enabled by config")
	}

	if err := applyLogConfig([]string{"bogus"}, nil); err == nil {
		t.Errorf("applyLogConfig() with unknown module succeeded")
	}
}
