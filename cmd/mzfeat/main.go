// Command mzfeat turns a FlatZinc-subset model file into a fixed
// feature row, for use as a training signal by search/solver-portfolio
// selectors.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "mzfeat",
		Short: "mzfeat — FlatZinc-style constraint-model feature extractor",
		Long:  "Extracts a fixed vector of structural and statistical features from a constraint model, for use by solver/search selectors.",
	}
	root.AddCommand(extractCmd())

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("mzfeat: command failed")
		os.Exit(1)
	}
}
