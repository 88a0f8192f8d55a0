/******************************************************************************
 *
 *  Description :
 *
 *    Setup and initialization.
 *
 *****************************************************************************/

package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	jcr "github.com/tinode/jsonco"

	_ "github.com/livelog/livelog/server/db/mysql"
	_ "github.com/livelog/livelog/server/db/postgres"

	"github.com/livelog/livelog/server/concurrency"
	"github.com/livelog/livelog/server/logs"
	"github.com/livelog/livelog/server/store"
)

const (
	// currentVersion is the version reported to clients and to monitoring.
	currentVersion = "0.17"

	// idleSessionTimeout: terminate a session after this timeout without
	// a single inbound frame or pong.
	idleSessionTimeout = time.Second * 55

	// sendQueueLimit is the maximum number of undelivered outbound frames
	// queued for a single session before it is declared stuck.
	sendQueueLimit = 128

	// defaultMaxMessageSize is the default maximum size of an inbound
	// frame, in bytes.
	defaultMaxMessageSize = 1 << 19 // 512K

	// Number of goroutines handling targeted per-user pushes.
	numPushWorkers = 8
)

// Build timestamp set by the compiler:
//
//	-ldflags "-X main.buildstamp=`date -u '+%Y%m%dT%H:%M:%SZ'`"
var buildstamp = "undef"

var globals struct {
	// Topic dispatch and broadcast routing.
	hub *Hub
	// Live sessions.
	sessionStore *SessionStore
	// Channel for stats updates, nil if stats are disabled.
	statsUpdate chan *varUpdate
	// Worker pool for targeted per-user pushes.
	pushPool *concurrency.GoRoutinePool

	// Maximum size of an inbound frame, in bytes.
	maxMessageSize int64
	// Take client IP from the X-Forwarded-For header (reverse proxy setups).
	useXForwardedFor bool
	// Strict-Transport-Security max age, seconds, as a string. Empty if
	// HSTS is disabled.
	tlsStrictMaxAge string
	// Intentional termination of the process: don't report errors while
	// unwinding.
	shuttingDown bool
}

type configType struct {
	// HTTP(S) address:port to listen on.
	Listen string `json:"listen"`
	// URL path prefix for the client API, default "/v0/".
	ApiPath string `json:"api_path"`
	// Path to access log file, disabled if empty.
	AccessLog string `json:"access_log"`
	// CORS origins allowed to connect, all origins allowed if empty.
	AllowedOrigins []string `json:"allowed_origins"`
	// URL path where exp vars are exposed, disabled if empty.
	Expvar string `json:"expvar"`
	// URL path for mounting the debug profiler, disabled if empty.
	PprofUrl string `json:"pprof_url"`

	// Maximum size of an inbound frame, in bytes.
	MaxMessageSize int64 `json:"max_message_size"`
	// Enable websocket per message compression (RFC 7692).
	WSCompression bool `json:"ws_compression_enabled"`
	// Take client IP from the X-Forwarded-For header.
	UseXForwardedFor bool `json:"use_x_forwarded_for"`

	Store json.RawMessage `json:"store_config"`
	Tls   json.RawMessage `json:"tls"`
}

func main() {
	logs.Init(os.Stderr, "stdFlags")
	logs.Info.Printf("Server v%s:%s; pid %d; %d process(es)",
		currentVersion, buildstamp, os.Getpid(), runtime.GOMAXPROCS(runtime.NumCPU()))

	var configfile = flag.String("config", "livelog.conf", "Path to config file.")
	var listenOn = flag.String("listen", "", "Override address and port to listen on.")
	var apiPath = flag.String("api_path", "", "Override the base URL path of the API.")
	var expvarPath = flag.String("expvar", "", "Override the URL path where runtime stats are exposed. Use '-' to disable.")
	var pprofUrl = flag.String("pprof_url", "", "Override the URL path where the debug profiler is exposed. Use '-' to disable.")
	var pprofFile = flag.String("pprof", "", "File name to save profiling info to. Disabled if not set.")
	var resetDb = flag.Bool("reset_db", false, "Drop and recreate the database.")
	var logFlags = flag.String("log_flags", "stdFlags", "Comma-separated list of log flags.")
	flag.Parse()

	logs.Init(os.Stderr, *logFlags)

	curwd, err := os.Getwd()
	if err != nil {
		logs.Err.Fatal("Couldn't get current working directory: ", err)
	}

	*configfile = toAbsolutePath(curwd, *configfile)
	logs.Info.Printf("Using config from '%s'", *configfile)

	var config configType
	if file, err := os.Open(*configfile); err != nil {
		logs.Err.Fatal("Failed to read config file: ", err)
	} else {
		jr := jcr.New(file)
		if err = json.NewDecoder(jr).Decode(&config); err != nil {
			switch jerr := err.(type) {
			case *json.UnmarshalTypeError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
					jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
			case *json.SyntaxError:
				lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
				logs.Err.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
					lnum, cnum, jerr.Offset, jerr.Error())
			default:
				logs.Err.Fatal("Failed to parse config file: ", err)
			}
		}
		file.Close()
	}

	if *listenOn != "" {
		config.Listen = *listenOn
	}

	if *pprofFile != "" {
		*pprofFile = toAbsolutePath(curwd, *pprofFile)

		cpuf, err := os.Create(*pprofFile + ".cpu")
		if err != nil {
			logs.Err.Fatal("Failed to create CPU pprof file: ", err)
		}
		defer cpuf.Close()

		memf, err := os.Create(*pprofFile + ".mem")
		if err != nil {
			logs.Err.Fatal("Failed to create Mem pprof file: ", err)
		}
		defer memf.Close()

		pprof.StartCPUProfile(cpuf)
		defer pprof.StopCPUProfile()
		defer pprof.WriteHeapProfile(memf)

		logs.Info.Printf("Profiling info saved to '%s.(cpu|mem)'", *pprofFile)
	}

	if *resetDb {
		logs.Info.Println("Recreating the database")
		if err := store.Store.InitDb(config.Store, true); err != nil {
			logs.Err.Fatal("Failed to init the database: ", err)
		}
	}

	err = store.Store.Open(1, config.Store)
	logs.Info.Println("DB adapter", store.Store.GetAdapterName(), store.Store.GetAdapterVersion())
	if err != nil {
		logs.Err.Fatal("Failed to connect to DB: ", err)
	}
	defer func() {
		store.Store.Close()
		logs.Info.Println("Closed database connection(s)")
		logs.Info.Println("All done, good bye")
	}()

	globals.maxMessageSize = config.MaxMessageSize
	if globals.maxMessageSize <= 0 {
		globals.maxMessageSize = defaultMaxMessageSize
	}
	globals.useXForwardedFor = config.UseXForwardedFor
	upgrader.EnableCompression = config.WSCompression

	globals.sessionStore = NewSessionStore()
	globals.hub = newHub()
	globals.pushPool = concurrency.NewGoRoutinePool(numPushWorkers)
	defer globals.pushPool.Stop()

	apipath := *apiPath
	if apipath == "" {
		apipath = config.ApiPath
	}
	if apipath == "" {
		apipath = "/v0/"
	}
	apipath = normalizePath(apipath)

	mux := setupMux(&config, apipath)

	evpath := *expvarPath
	if evpath == "" {
		evpath = config.Expvar
	}
	statsInit(mux, evpath)
	statsRegisterInt("Version")
	statsSet("Version", base10Version(parseVersion(currentVersion)))

	pprofpath := *pprofUrl
	if pprofpath == "" {
		pprofpath = config.PprofUrl
	}
	servePprof(mux, pprofpath)

	if err = listenAndServe(config.Listen, mux, config.Tls, signalHandler()); err != nil {
		logs.Err.Fatal(err)
	}
}

// toAbsolutePath converts a relative filepath to absolute.
func toAbsolutePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(base, path))
}

// normalizePath ensures the URL path starts and ends with a slash.
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
