package main

import (
	"fmt"
	"os"

	"github.com/BardoBard/Bardrix-sub000/cmd"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
