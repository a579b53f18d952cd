package main

import (
	"encoding/json"
	"fmt"

	"github.com/Zanice/2D-Game-Framework/internal/version"
	"github.com/spf13/cobra"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(_ *cobra.Command, _ []string) error {
		if !versionJSON {
			fmt.Println(version.String())
			return nil
		}
		data, err := json.MarshalIndent(version.Info(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print as JSON")
}
