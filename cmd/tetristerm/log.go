package main

import (
	"log"
	"os"
)

// InitLog redirects the standard logger to dest. The terminal belongs to the
// GUI while a game runs, so nothing may be written to stderr.
func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
