package storage

import (
	"fmt"
	"os"
)

// LoadFile reads a calibration image from path. Like Load, the returned store
// is always usable; the error explains why defaults were substituted.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewMemory(DefaultCalibration), fmt.Errorf("read calibration %s: %w", path, err)
	}
	m, err := Load(data)
	if err != nil {
		return m, fmt.Errorf("load calibration %s: %w", path, err)
	}
	return m, nil
}

// SaveFile writes cal with its checksum to path
func SaveFile(path string, cal Calibration) error {
	if err := os.WriteFile(path, Encode(cal), 0644); err != nil {
		return fmt.Errorf("write calibration %s: %w", path, err)
	}
	return nil
}
