package boot

import (
	"testing"
)

func TestLoad(t *testing.T) {
	if _, err := Load(make([]byte, 255)); err == nil {
		t.Error("Expected an error for a 255-byte image")
	}
	if _, err := Load(make([]byte, 257)); err == nil {
		t.Error("Expected an error for a 257-byte image")
	}

	img := make([]byte, Size)
	img[0] = 0x31
	rom, err := Load(img)
	if err != nil {
		t.Fatal(err)
	}
	if rom.Read(0) != 0x31 {
		t.Errorf("Expected 0x31 at 0x0000, got %#02x", rom.Read(0))
	}
	if len(rom.Logo()) != LogoEnd-LogoStart {
		t.Errorf("Expected a %d-byte logo, got %d", LogoEnd-LogoStart, len(rom.Logo()))
	}
	if rom.Checksum() == "" {
		t.Error("Expected a checksum")
	}
}
