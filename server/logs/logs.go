/******************************************************************************
 *
 *  Description :
 *    Package exposes info, warning and error loggers.
 *
 *****************************************************************************/
package logs

import (
	"io"
	"log"
	"os"
	"strings"
)

// Loggers at the three supported severities. Initialized by Init; usable
// with default settings before Init is called.
var (
	Info *log.Logger
	Warn *log.Logger
	Err  *log.Logger
)

func init() {
	Info = log.New(os.Stdout, "I", log.LstdFlags)
	Warn = log.New(os.Stdout, "W", log.LstdFlags)
	Err = log.New(os.Stderr, "E", log.LstdFlags)
}

// Init re-creates the loggers with the given output and a comma-separated
// list of log.Logger flag names: datetime, date, time, microseconds, utc,
// longfile, shortfile.
func Init(out io.Writer, flags string) {
	var logFlags int
	for _, str := range strings.Split(flags, ",") {
		switch strings.TrimSpace(str) {
		case "datetime":
			logFlags |= log.LstdFlags
		case "date":
			logFlags |= log.Ldate
		case "time":
			logFlags |= log.Ltime
		case "microseconds":
			logFlags |= log.Ltime | log.Lmicroseconds
		case "utc":
			logFlags |= log.LUTC
		case "longfile":
			logFlags |= log.Llongfile
		case "shortfile":
			logFlags |= log.Lshortfile
		case "":
		default:
			Warn.Println("logs: unknown flag", str)
		}
	}

	Info = log.New(out, "I", logFlags)
	Warn = log.New(out, "W", logFlags)
	Err = log.New(out, "E", logFlags)
}
