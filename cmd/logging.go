package cmd

import (
	"github.com/BardoBard/Bardrix-sub000/log"
	"github.com/urfave/cli"
)

var logger = log.New("bardrix")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
