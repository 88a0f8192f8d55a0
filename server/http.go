/******************************************************************************
 *
 *  Description :
 *
 *    Web server initialization and shutdown.
 *
 *****************************************************************************/

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"golang.org/x/crypto/acme/autocert"

	"github.com/livelog/livelog/server/logs"
)

type tlsAutocertConfig struct {
	// Domains to support by autocert.
	Domains []string `json:"domains"`
	// Name of directory where auto-certificates are cached.
	CertCache string `json:"cache"`
	// Contact email for letsencrypt.
	Email string `json:"email"`
}

type tlsConfig struct {
	// Flag enabling TLS.
	Enabled bool `json:"enabled"`
	// Listen for connections on this address:port and redirect them to HTTPS port.
	RedirectHTTP string `json:"http_redirect"`
	// Enable Strict-Transport-Security by setting max_age > 0.
	StrictMaxAge int `json:"strict_max_age"`
	// ACME autocert config, e.g. letsencrypt.org.
	Autocert *tlsAutocertConfig `json:"autocert"`
	// If Autocert is not defined, provide file names of static certificate and key.
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
}

// setupMux assembles the request routing table: the websocket endpoint under
// the API prefix, wrapped in the optional access-log and CORS middleware.
func setupMux(config *configType, apipath string) *http.ServeMux {
	var stream http.Handler = http.HandlerFunc(serveWebSocket)

	if len(config.AllowedOrigins) > 0 {
		stream = handlers.CORS(
			handlers.AllowedOrigins(config.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet}),
			handlers.AllowedHeaders([]string{"Authorization"}),
		)(stream)
	}

	if config.AccessLog != "" {
		logFile, err := os.OpenFile(config.AccessLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			logs.Err.Fatal("Failed to open access log: ", err)
		}
		stream = handlers.CombinedLoggingHandler(logFile, stream)
	}

	mux := http.NewServeMux()
	mux.Handle(apipath+"stream", stream)
	mux.HandleFunc("/", serve404)

	logs.Info.Printf("Streaming endpoint at '%sstream'", apipath)

	return mux
}

func listenAndServe(addr string, mux *http.ServeMux, tlfConf json.RawMessage, stop <-chan bool) error {
	globals.shuttingDown = false

	var tlsConfig tlsConfig
	if len(tlfConf) > 0 {
		if err := json.Unmarshal(tlfConf, &tlsConfig); err != nil {
			return errors.New("http: failed to parse tls config: " + err.Error())
		}
	}

	server := &http.Server{
		Addr:    addr,
		Handler: hstsHandler(mux),
	}

	if tlsConfig.Enabled {
		if tlsConfig.StrictMaxAge > 0 {
			globals.tlsStrictMaxAge = strconv.Itoa(tlsConfig.StrictMaxAge)
		}

		// If port is not specified, use default https port (443),
		// otherwise it will default to 80.
		if server.Addr == "" {
			server.Addr = ":https"
		}

		server.TLSConfig = &tls.Config{}
		if tlsConfig.Autocert != nil {
			certManager := autocert.Manager{
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(tlsConfig.Autocert.Domains...),
				Cache:      autocert.DirCache(tlsConfig.Autocert.CertCache),
				Email:      tlsConfig.Autocert.Email,
			}

			server.TLSConfig.GetCertificate = certManager.GetCertificate
			if tlsConfig.CertFile != "" || tlsConfig.KeyFile != "" {
				logs.Info.Println("HTTP server: using autocert, static cert and key files ignored")
				tlsConfig.CertFile = ""
				tlsConfig.KeyFile = ""
			}
		} else if tlsConfig.CertFile == "" || tlsConfig.KeyFile == "" {
			return errors.New("HTTP server: missing certificate or key file names")
		}
	}

	httpdone := make(chan bool)

	go func() {
		var err error
		if tlsConfig.Enabled {
			if tlsConfig.RedirectHTTP != "" {
				logs.Info.Printf("Redirecting connections from HTTP at [%s] to HTTPS at [%s]",
					tlsConfig.RedirectHTTP, server.Addr)

				// This go routine dies when the main process exits.
				go func() {
					err := http.ListenAndServe(tlsConfig.RedirectHTTP, tlsRedirect(addr))
					if err != nil && err != http.ErrServerClosed {
						logs.Err.Println("HTTP redirect failed:", err)
					}
				}()
			}

			logs.Info.Printf("Listening for client HTTPS connections on [%s]", server.Addr)
			err = server.ListenAndServeTLS(tlsConfig.CertFile, tlsConfig.KeyFile)
		} else {
			logs.Info.Printf("Listening for client HTTP connections on [%s]", server.Addr)
			err = server.ListenAndServe()
		}

		if globals.shuttingDown {
			logs.Info.Println("HTTP server: stopped")
		} else if err != nil {
			logs.Err.Println("HTTP server: failed", err)
		}
		httpdone <- true
	}()

	// Wait for either a termination signal or an error.
Loop:
	for {
		select {
		case <-stop:
			// Flip the flag that we are terminating and close the Accept-ing
			// socket, so no new connections are possible.
			globals.shuttingDown = true
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
			if err := server.Shutdown(ctx); err != nil {
				// Failure/timeout shutting down the server gracefully.
				logs.Err.Println("HTTP server failed to terminate gracefully", err)
			}
			cancel()

			// Wait for http server to stop Accept()-ing connections.
			<-httpdone

			// Shutdown the hub. The hub will drain and stop all topics.
			hubdone := make(chan bool)
			globals.hub.shutdown <- hubdone
			<-hubdone

			// Terminate all sessions.
			globals.sessionStore.Shutdown()

			// Stop publishing stats.
			statsShutdown()

			break Loop

		case <-httpdone:
			break Loop
		}
	}
	return nil
}

func signalHandler() <-chan bool {
	stop := make(chan bool)

	signchan := make(chan os.Signal, 1)
	signal.Notify(signchan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		// Wait for a signal. Don't care which signal it is.
		sig := <-signchan
		logs.Info.Printf("Signal received: '%s', shutting down", sig)
		stop <- true
	}()

	return stop
}

// hstsHandler is a wrapper for http.Handler which optionally adds a
// Strict-Transport-Security header to the response.
func hstsHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if globals.tlsStrictMaxAge != "" {
			w.Header().Set("Strict-Transport-Security", "max-age="+globals.tlsStrictMaxAge)
		}
		handler.ServeHTTP(w, r)
	})
}

func serve404(wrt http.ResponseWriter, req *http.Request) {
	wrt.Header().Set("Content-Type", "application/json; charset=utf-8")
	wrt.WriteHeader(http.StatusNotFound)
	json.NewEncoder(wrt).Encode(
		&ServerComMessage{Ctrl: &MsgServerCtrl{
			Timestamp: time.Now().UTC().Round(time.Millisecond),
			Code:      http.StatusNotFound,
			Text:      "not found"}})
}

// tlsRedirect returns an http.Handler which redirects all requests to the
// HTTPS port of the given host.
func tlsRedirect(toPort string) http.HandlerFunc {
	if toPort == ":443" || toPort == ":https" {
		toPort = ""
	} else if toPort != "" && toPort[0] == ':' {
		// Strip leading colon. JoinHostPort will add it back.
		toPort = toPort[1:]
	}

	return func(wrt http.ResponseWriter, req *http.Request) {
		host, _, err := parseHostPort(req.Host)
		if err != nil {
			host = req.Host
		}

		target := "https://" + host
		if toPort != "" {
			target += ":" + toPort
		}
		target += req.URL.Path
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		http.Redirect(wrt, req, target, http.StatusTemporaryRedirect)
	}
}

// parseHostPort splits a network address of the form "host:port" into host
// and port. Unlike net.SplitHostPort it tolerates a missing port.
func parseHostPort(hostport string) (string, string, error) {
	if i := strings.LastIndex(hostport, ":"); i >= 0 {
		return hostport[:i], hostport[i+1:], nil
	}
	return hostport, "", nil
}
