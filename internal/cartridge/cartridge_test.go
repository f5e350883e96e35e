package cartridge

import (
	"testing"
)

func romImage(banks int) []byte {
	rom := make([]byte, BankSize*banks)
	copy(rom[titleStart:], "TESTROM")
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	return rom
}

func TestLoad(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Error("Expected an error for an empty image")
	}
	if _, err := Load(make([]byte, 1234)); err == nil {
		t.Error("Expected an error for a non-32K-multiple image")
	}
	if _, err := Load(romImage(1)); err != nil {
		t.Errorf("Expected a 32 KiB image to load, got %v", err)
	}
	if _, err := Load(romImage(4)); err != nil {
		t.Errorf("Expected a 128 KiB image to load, got %v", err)
	}
}

func TestRead(t *testing.T) {
	rom := romImage(1)
	rom[0x0000] = 0x3C
	rom[0x7FFF] = 0xA5

	c, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}

	if v := c.Read(0x0000); v != 0x3C {
		t.Errorf("Expected 0x3C at 0x0000, got %#02x", v)
	}
	if v := c.Read(0x7FFF); v != 0xA5 {
		t.Errorf("Expected 0xA5 at 0x7FFF, got %#02x", v)
	}
}

func TestHeader(t *testing.T) {
	c, err := Load(romImage(1))
	if err != nil {
		t.Fatal(err)
	}

	h := c.Header()
	if h.Title != "TESTROM" {
		t.Errorf("Expected title TESTROM, got %q", h.Title)
	}
	if h.CartridgeType != 0x00 {
		t.Errorf("Expected ROM-only cartridge type, got %#02x", h.CartridgeType)
	}
	if h.ROMSize != 32*1024 {
		t.Errorf("Expected 32 KiB ROM size, got %d", h.ROMSize)
	}
}
