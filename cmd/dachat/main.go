package main

//      _                 _               _
//   __| |  __ _    ___  | |__     __ _  | |_
//  / _` | / _` |  / __| | '_ \   / _` | | __|
// | (_| || (_| | | (__  | | | | | (_| | | |_
//  \__,_| \__,_|  \___| |_| |_|  \__,_|  \__|
//  .  .  .  a  chat  with  hands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"pkdindustries/dachat/internal/config"
)

const version = "0.1"

func main() {
	fmt.Printf("%s\n", getBanner())

	app := &cli.Command{
		Name:    "dachat",
		Usage:   "a chat with hands",
		Version: version + " - http://github.com/pkdindustries/dachat",
		Flags:   config.GetFlags(),
		Action:  run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
