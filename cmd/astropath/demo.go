package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"astropath/internal/playground"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the guided ML demos on built-in sample data",
	Long: `Run one of the guided machine-learning demos on a small built-in
dataset. Each demo prints its input, the model's output and a short
note on what to look for.`,
}

// demoKNNCmd classifies candidate worlds against labeled exoplanets.
var demoKNNCmd = &cobra.Command{
	Use:   "knn",
	Short: "Classify candidate worlds with k-nearest neighbors",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Radius in Earth radii vs equilibrium temperature, scaled
		// to a few hundred Kelvin per unit.
		training := []playground.LabeledPoint{
			{X: 0.9, Y: 2.6, Label: "rocky"},
			{X: 1.1, Y: 2.9, Label: "rocky"},
			{X: 1.4, Y: 2.2, Label: "rocky"},
			{X: 1.7, Y: 3.4, Label: "rocky"},
			{X: 3.8, Y: 6.1, Label: "gaseous"},
			{X: 4.5, Y: 5.2, Label: "gaseous"},
			{X: 6.2, Y: 7.0, Label: "gaseous"},
			{X: 9.8, Y: 4.4, Label: "gaseous"},
		}
		clf, err := playground.NewKNNClassifier(3, training)
		if err != nil {
			return err
		}

		fmt.Println("k-nearest neighbors, k=3")
		fmt.Println("features: radius (Earth radii), equilibrium temperature (100s of K)")
		fmt.Printf("training samples: %d\n\n", len(training))

		candidates := []struct{ x, y float64 }{
			{1.2, 2.5},
			{2.8, 4.6},
			{5.5, 6.3},
		}
		for _, c := range candidates {
			fmt.Printf("candidate (%.1f, %.1f) -> %s\n", c.x, c.y, clf.Classify(c.x, c.y))
		}
		fmt.Println("\nNote how the middle candidate sits between the groups; its label")
		fmt.Println("comes down to which three neighbors are closest.")
		return nil
	},
}

// demoAnomalyCmd flags outliers in a stellar brightness series.
var demoAnomalyCmd = &cobra.Command{
	Use:   "anomaly",
	Short: "Find outliers in a light curve with z-scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Relative flux of a star over time. The two dips are
		// transit-like events.
		flux := []float64{
			1.000, 1.002, 0.998, 1.001, 0.999, 1.003, 0.997, 1.000,
			0.962, 1.001, 0.998, 1.002, 1.000, 0.999, 0.958, 1.001,
		}

		det := playground.NewAnomalyDetector(2.0)
		if err := det.Fit(flux); err != nil {
			return err
		}

		fmt.Println("z-score anomaly detection, threshold=2.0")
		fmt.Printf("readings: %d\n\n", len(flux))

		outliers, err := det.Detect(flux)
		if err != nil {
			return err
		}
		for _, i := range outliers {
			fmt.Printf("reading %2d: flux %.3f  z=%.2f\n", i, flux[i], det.Score(flux[i]))
		}
		fmt.Println("\nBoth dips stand well clear of the noise floor. Real transit")
		fmt.Println("searches use the same idea with a model of the expected shape.")
		return nil
	},
}

// demoSpectraCmd extracts features from a synthetic emission spectrum.
var demoSpectraCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Extract features from an emission spectrum",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A synthetic spectrum with emission lines near the H-alpha
		// (656nm) and O III (501nm) wavelengths.
		spectrum := []playground.SpectrumSample{
			{Wavelength: 450, Intensity: 0.12},
			{Wavelength: 470, Intensity: 0.15},
			{Wavelength: 490, Intensity: 0.35},
			{Wavelength: 501, Intensity: 0.92},
			{Wavelength: 515, Intensity: 0.30},
			{Wavelength: 540, Intensity: 0.14},
			{Wavelength: 580, Intensity: 0.13},
			{Wavelength: 620, Intensity: 0.22},
			{Wavelength: 656, Intensity: 1.00},
			{Wavelength: 680, Intensity: 0.25},
			{Wavelength: 700, Intensity: 0.11},
		}

		feats, err := playground.ExtractSpectralFeatures(spectrum)
		if err != nil {
			return err
		}

		fmt.Println("spectral feature extraction")
		fmt.Printf("samples: %d, %.0f-%.0fnm\n\n", len(spectrum),
			spectrum[0].Wavelength, spectrum[len(spectrum)-1].Wavelength)
		fmt.Printf("peaks above mean:    %d\n", feats.PeakCount)
		fmt.Printf("strongest line:      %.0fnm at intensity %.2f\n", feats.PeakWavelength, feats.PeakIntensity)
		fmt.Printf("spectral centroid:   %.1fnm\n", feats.CentroidWavelength)
		fmt.Printf("mean intensity:      %.2f\n", feats.MeanIntensity)

		ratio, err := playground.BandRatio(spectrum, 480, 520, 640, 680)
		if err != nil {
			return err
		}
		fmt.Printf("O III / H-alpha band ratio: %.2f\n", ratio)
		fmt.Println("\nFeatures like these turn a raw spectrum into a handful of numbers")
		fmt.Println("a classifier or clustering run can work with.")
		return nil
	},
}

func init() {
	demoCmd.AddCommand(demoKNNCmd)
	demoCmd.AddCommand(demoAnomalyCmd)
	demoCmd.AddCommand(demoSpectraCmd)
}
