package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
	"github.com/jaminalder/tic-tac-toe-history/internal/config"
	"github.com/jaminalder/tic-tac-toe-history/internal/logging"
	"github.com/jaminalder/tic-tac-toe-history/internal/term"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	// stdout belongs to the board
	logger := logging.New(os.Stderr, conf.LogLevel, conf.LogFormat)

	out := termenv.NewOutput(os.Stdout)
	svc := app.NewService(logger)

	if err := term.Run(os.Stdin, out, svc, term.NewRenderer(out, conf.Term.Color)); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}
