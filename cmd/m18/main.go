package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vitaminmoo/m18-tool/internal/cli"
	"github.com/vitaminmoo/m18-tool/internal/m18"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("m18"),
		kong.Description("Milwaukee M18 battery diagnostics over a UART adapter."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&root)
	if err != nil && m18.IsConnectivity(err) {
		fmt.Fprintln(os.Stderr, cli.WiringHelp)
	}
	ctx.FatalIfErrorf(err)
}
