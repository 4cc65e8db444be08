// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/csvctl/csvctl/internal/command"
	"github.com/csvctl/csvctl/internal/log"
	"github.com/csvctl/csvctl/internal/util"
	"github.com/csvctl/csvctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v immediately after the binary name and
// returns whether it was handled. Only args[1] is considered because -v means
// --invert once a subcommand is present.
func handleVersion(args []string) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Println(version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs rewrites shorthand invocations into canonical ones.
// "csvctl data.csv" and "csvctl - ..." become "csvctl filter ...", so the
// common case needs no subcommand at all.
func processCommandArgs(args []string) []string {
	if len(args) < 2 {
		return args
	}
	switch args[1] {
	case "filter", "sniff", "completion":
		return args
	}
	if args[1] == "-" || util.IsExistingFile(args[1]) {
		return append(args[:1], append([]string{"filter"}, args[1:]...)...)
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
