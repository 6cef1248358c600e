package license

import (
	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
	"github.com/dsmgraph/dsm-analyzer/internal/dsm"
)

// LicenseDetector handles file-based license detection
type LicenseDetector struct{}

// LicenseMatch represents a detected license with metadata
type LicenseMatch struct {
	License    string
	Confidence float32
	File       string
}

// NewLicenseDetector creates a new license detector
func NewLicenseDetector() *LicenseDetector {
	return &LicenseDetector{}
}

// DetectLicensesInDirectory detects licenses from LICENSE files in a directory
// Returns a list of detected licenses with metadata (confidence > 0.9)
func (d *LicenseDetector) DetectLicensesInDirectory(dirPath string) []LicenseMatch {
	// Create a filer for the directory
	fs, err := filer.FromDirectory(dirPath)
	if err != nil {
		return nil
	}

	// Detect licenses
	matches, err := licensedb.Detect(fs)
	if err != nil {
		return nil
	}

	// Extract license matches with high confidence (> 0.9)
	var licenses []LicenseMatch
	for licenseID, match := range matches {
		if match.Confidence > 0.9 {
			licenses = append(licenses, LicenseMatch{
				License:    licenseID,
				Confidence: match.Confidence,
				File:       match.File,
			})
		}
	}

	return licenses
}

// AddLicensesToAux detects licenses in dirPath and merges any new license
// identifiers into aux.Licenses, skipping ones already present.
func (d *LicenseDetector) AddLicensesToAux(aux *dsm.AuxMetadata, dirPath string) {
	for _, match := range d.DetectLicensesInDirectory(dirPath) {
		exists := false
		for _, existing := range aux.Licenses {
			if existing == match.License {
				exists = true
				break
			}
		}
		if !exists {
			aux.Licenses = append(aux.Licenses, match.License)
		}
	}
}
