package main

import (
	"rockbot/internal/structures"

	"github.com/spf13/cobra"
)

const releaseVersion = "1.3.0"

func main() {
	cobra.CheckErr(newCmd(&structures.CliFlags{}).Execute())
}
