// Package logger re-exports the shared goLogger so internal packages import a
// single path.
package logger

import (
	gologger "github.com/Bparsons0904/goLogger"
)

type Logger = gologger.Logger

var New = gologger.New
