package playground

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpectrumSample is one (wavelength, intensity) reading.
type SpectrumSample struct {
	Wavelength float64 `json:"wavelength"`
	Intensity  float64 `json:"intensity"`
}

// SpectralFeatures summarizes a spectrum for the feature-extraction
// demo: where the energy sits and how peaked the signal is.
type SpectralFeatures struct {
	// PeakCount is the number of local intensity maxima above the
	// mean intensity.
	PeakCount int `json:"peak_count"`

	// PeakWavelength is the wavelength of the strongest reading.
	PeakWavelength float64 `json:"peak_wavelength"`

	// PeakIntensity is the strongest reading.
	PeakIntensity float64 `json:"peak_intensity"`

	// CentroidWavelength is the intensity-weighted mean wavelength,
	// the spectrum's center of mass.
	CentroidWavelength float64 `json:"centroid_wavelength"`

	// MeanIntensity is the plain average intensity.
	MeanIntensity float64 `json:"mean_intensity"`
}

// ExtractSpectralFeatures computes the demo feature set from a spectrum
// ordered by wavelength.
func ExtractSpectralFeatures(spectrum []SpectrumSample) (*SpectralFeatures, error) {
	if len(spectrum) < 3 {
		return nil, fmt.Errorf("spectra: need at least 3 samples, got %d", len(spectrum))
	}

	wavelengths := make([]float64, len(spectrum))
	intensities := make([]float64, len(spectrum))
	for i, s := range spectrum {
		wavelengths[i] = s.Wavelength
		intensities[i] = s.Intensity
	}

	features := &SpectralFeatures{
		MeanIntensity: stat.Mean(intensities, nil),
	}

	peakIdx := floats.MaxIdx(intensities)
	features.PeakIntensity = intensities[peakIdx]
	features.PeakWavelength = wavelengths[peakIdx]

	// Local maxima above the mean count as peaks; endpoints qualify
	// when they exceed their single neighbor.
	for i := range intensities {
		if intensities[i] <= features.MeanIntensity {
			continue
		}
		leftOK := i == 0 || intensities[i] > intensities[i-1]
		rightOK := i == len(intensities)-1 || intensities[i] > intensities[i+1]
		if leftOK && rightOK {
			features.PeakCount++
		}
	}

	totalIntensity := floats.Sum(intensities)
	if totalIntensity > 0 {
		weighted := 0.0
		for i := range spectrum {
			weighted += wavelengths[i] * intensities[i]
		}
		features.CentroidWavelength = weighted / totalIntensity
	}

	return features, nil
}

// BandRatio compares the mean intensity inside [loA, hiA] against
// [loB, hiB], a classic toy discriminator for spectral classes.
// Bands with no samples or a zero-intensity denominator are errors.
func BandRatio(spectrum []SpectrumSample, loA, hiA, loB, hiB float64) (float64, error) {
	meanBand := func(lo, hi float64) (float64, int) {
		sum, n := 0.0, 0
		for _, s := range spectrum {
			if s.Wavelength >= lo && s.Wavelength <= hi {
				sum += s.Intensity
				n++
			}
		}
		if n == 0 {
			return 0, 0
		}
		return sum / float64(n), n
	}

	a, na := meanBand(loA, hiA)
	if na == 0 {
		return 0, fmt.Errorf("spectra: no samples in band [%.1f, %.1f]", loA, hiA)
	}
	b, nb := meanBand(loB, hiB)
	if nb == 0 {
		return 0, fmt.Errorf("spectra: no samples in band [%.1f, %.1f]", loB, hiB)
	}
	if b == 0 {
		return 0, fmt.Errorf("spectra: reference band [%.1f, %.1f] has zero mean intensity", loB, hiB)
	}
	return a / b, nil
}
