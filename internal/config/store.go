package config

import (
	"encoding/json"
	"fmt"
)

// Store persists settings as JSON documents addressed by category and key.
type Store interface {
	// Get returns the stored document, or found=false when absent.
	Get(category, key string) (value []byte, found bool, err error)
	// Set writes or replaces the document.
	Set(category, key string, value []byte) error
	Close() error
}

// The calibration snapshot lives in a single record.
const (
	calibrationCategory = "calibration"
	calibrationKey      = "state"
)

// LoadCalibration reads the persisted snapshot. A missing record is not
// an error; found reports whether one existed.
func LoadCalibration(s Store) (Calibration, bool, error) {
	data, found, err := s.Get(calibrationCategory, calibrationKey)
	if err != nil {
		return Calibration{}, false, fmt.Errorf("load calibration: %w", err)
	}
	if !found {
		return Calibration{}, false, nil
	}
	var cal Calibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return Calibration{}, false, fmt.Errorf("decode calibration: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, false, fmt.Errorf("stored calibration: %w", err)
	}
	return cal, true, nil
}

// SaveCalibration writes the snapshot as one record.
func SaveCalibration(s Store, cal Calibration) error {
	data, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("encode calibration: %w", err)
	}
	if err := s.Set(calibrationCategory, calibrationKey, data); err != nil {
		return fmt.Errorf("save calibration: %w", err)
	}
	return nil
}
