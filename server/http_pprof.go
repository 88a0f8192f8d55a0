// Runtime profiling over HTTP. Mounted only when a pprof URL path is
// configured; requesting the bare path lists the available profiles.

package main

import (
	"fmt"
	"net/http"
	"path"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"

	"github.com/livelog/livelog/server/logs"
)

var pprofHttpRoot string

// servePprof mounts the profile handler at the given URL path.
func servePprof(mux *http.ServeMux, serveAt string) {
	if serveAt == "" || serveAt == "-" {
		return
	}

	pprofHttpRoot = path.Clean("/"+serveAt) + "/"
	mux.HandleFunc(pprofHttpRoot, profileHandler)

	logs.Info.Printf("pprof: profiling info exposed at '%s'", pprofHttpRoot)
}

func profileHandler(wrt http.ResponseWriter, req *http.Request) {
	wrt.Header().Set("X-Content-Type-Options", "nosniff")
	wrt.Header().Set("Content-Type", "text/plain; charset=utf-8")

	name := strings.TrimPrefix(req.URL.Path, pprofHttpRoot)
	if name == "" {
		listProfiles(wrt)
		return
	}

	profile := pprof.Lookup(name)
	if profile == nil {
		servePprofError(wrt, http.StatusNotFound, "unknown profile '"+name+"'")
		return
	}

	// debug=0 produces the binary proto format, 1 adds symbolized stacks,
	// 2 (goroutine only) dumps full stack traces.
	debug, err := strconv.Atoi(req.URL.Query().Get("debug"))
	if err != nil {
		debug = 1
	}

	profile.WriteTo(wrt, debug)
}

// listProfiles responds to a bare profile path with the profile names and
// their current sample counts.
func listProfiles(wrt http.ResponseWriter) {
	profiles := pprof.Profiles()
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name() < profiles[j].Name() })
	for _, p := range profiles {
		fmt.Fprintf(wrt, "%d\t%s\n", p.Count(), p.Name())
	}
}

func servePprofError(wrt http.ResponseWriter, status int, txt string) {
	wrt.Header().Set("Content-Type", "text/plain; charset=utf-8")
	wrt.Header().Set("X-Go-Pprof", "1")
	wrt.Header().Del("Content-Disposition")
	wrt.WriteHeader(status)
	fmt.Fprintln(wrt, txt)
}
