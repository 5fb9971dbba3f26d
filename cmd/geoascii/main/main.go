package main

import (
	"os"

	"github.com/arthur-debert/geoascii/cmd/geoascii"
	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/ui"
)

func main() {
	rootCmd := geoascii.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		theme := ui.NewTheme(os.Stderr, ui.FromColorMode(config.Get().Output.Color))
		theme.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
