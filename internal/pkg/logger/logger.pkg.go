package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	Debug   *log.Logger
	HTTP    *log.Logger
)

func init() {
	Setup()
}

// Setup (re)creates the package loggers on stdout/stderr. LOG_LEVEL=debug
// enables the Debug logger, otherwise its output is discarded.
func Setup() {
	SetupWithWriter(os.Stdout, os.Stderr)
}

func SetupWithWriter(out io.Writer, errOut io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lshortfile

	Info = log.New(out, "INFO: ", flags)
	Warning = log.New(out, "WARNING: ", flags)
	Error = log.New(errOut, "ERROR: ", flags)
	HTTP = log.New(out, "HTTP: ", log.Ldate|log.Ltime)

	debugOut := io.Discard
	if os.Getenv("LOG_LEVEL") == "debug" {
		debugOut = out
	}
	Debug = log.New(debugOut, "DEBUG: ", flags)
}
