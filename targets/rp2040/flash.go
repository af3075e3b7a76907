//go:build rp2040

package main

import (
	"machine"

	"irtimer/core"
	"irtimer/storage"
)

// loadCalibration reads the calibration image from the last flash sector.
// A blank or damaged sector yields the factory defaults.
func loadCalibration() *storage.Memory {
	image := make([]byte, storage.ImageSize)
	offset := machine.Flash.Size() - machine.Flash.EraseBlockSize()

	if _, err := machine.Flash.ReadAt(image, offset); err != nil {
		core.DebugPrintln("[FLASH] read failed: " + err.Error())
		return storage.NewMemory(storage.DefaultCalibration)
	}
	mem, err := storage.Load(image)
	if err != nil {
		core.DebugPrintln("[FLASH] " + err.Error() + ", using defaults")
	}
	return mem
}
