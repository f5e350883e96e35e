// Package display defines the display driver interface and the
// registry drivers install themselves into. The core emits RGBA
// framebuffers; everything about putting them on screen (or on the
// wire) lives behind Driver.
package display

import (
	"fmt"
)

// FrameWidth and FrameHeight are the dimensions of the frames pushed
// to drivers.
const (
	FrameWidth  = 160
	FrameHeight = 144
)

// Driver is the interface a display backend implements. Start blocks
// until the driver shuts down, consuming frames from fb; each frame
// is a FrameWidth x FrameHeight RGBA buffer owned by the driver once
// received.
type Driver interface {
	Start(fb <-chan []byte) error
	Stop() error
}

// InstalledDriver is a named driver registered by its package's
// init.
type InstalledDriver struct {
	Name string
	Driver
}

// InstalledDrivers lists every driver compiled into the binary.
var InstalledDrivers []InstalledDriver

// Install registers a driver under the given name; drivers call this
// from init.
func Install(name string, driver Driver) {
	InstalledDrivers = append(InstalledDrivers, InstalledDriver{Name: name, Driver: driver})
}

// GetDriver returns the driver with the given name.
func GetDriver(name string) (Driver, error) {
	for _, d := range InstalledDrivers {
		if d.Name == name {
			return d.Driver, nil
		}
	}
	return nil, fmt.Errorf("display: no such driver: %s (installed: %v)", name, DriverNames())
}

// DriverNames returns the names of every installed driver.
func DriverNames() []string {
	names := make([]string, 0, len(InstalledDrivers))
	for _, d := range InstalledDrivers {
		names = append(names, d.Name)
	}
	return names
}
