package main

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	info *log.Logger
	err  *log.Logger
}

func newLogger(w io.Writer, verbose bool) Logger {
	infoOut := io.Discard
	if verbose {
		infoOut = w
	}
	return &stdLogger{
		info: log.New(infoOut, "[INFO] ", log.LstdFlags),
		err:  log.New(w, "[ERROR] ", log.LstdFlags),
	}
}

func (l *stdLogger) Infof(format string, v ...any)  { l.info.Printf(format, v...) }
func (l *stdLogger) Errorf(format string, v ...any) { l.err.Printf(format, v...) }
