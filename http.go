package main

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/procfault/zombiemaker/generator"
	"github.com/procfault/zombiemaker/procinfo"
)

// DiagServer serves read-only diagnostics about the generator and its
// unreaped children. It never touches the children themselves.
type DiagServer struct {
	listeners map[string]net.Listener
	// true if the diagnostics server is started
	started bool
	gen     *generator.Generator
}

// NewDiagServer returns object for DiagServer
func NewDiagServer(gen *generator.Generator) *DiagServer {
	return &DiagServer{listeners: make(map[string]net.Listener), started: false, gen: gen}
}

// Stop stops network listening
func (p *DiagServer) Stop() {
	if !p.started {
		return
	}
	log.Info("stop listening")
	for _, listener := range p.listeners {
		listener.Close()
	}
	p.started = false
}

// StartUnixHTTPServer serves the diagnostics on a unix domain socket
func (p *DiagServer) StartUnixHTTPServer(listenAddr string) {
	os.Remove(listenAddr)
	p.startHTTPServer("unix", listenAddr)
}

// StartInetHTTPServer serves the diagnostics on a tcp address
func (p *DiagServer) StartInetHTTPServer(listenAddr string) {
	p.startHTTPServer("tcp", listenAddr)
}

func (p *DiagServer) startHTTPServer(protocol string, listenAddr string) {
	if p.started {
		return
	}
	p.started = true
	prometheus.MustRegister(generator.NewGenCollector(p.gen))
	serveMux := http.NewServeMux()
	serveMux.Handle("/metrics", promhttp.Handler())
	serveMux.Handle("/", p.createStatusHandler())
	listener, err := net.Listen(protocol, listenAddr)
	if err == nil {
		log.WithFields(log.Fields{"addr": listenAddr, "protocol": protocol}).Info("success to listen on address")
		p.listeners[protocol] = listener
		http.Serve(listener, serveMux)
	} else {
		log.WithFields(log.Fields{"addr": listenAddr, "protocol": protocol}).Fatal("fail to listen on address")
	}

}

func (p *DiagServer) createStatusHandler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/status", p.Status).Methods("GET")
	router.HandleFunc("/children", p.Children).Methods("GET")
	return router
}

type statusReply struct {
	PID              int             `json:"pid"`
	Version          string          `json:"version"`
	StartedAt        time.Time       `json:"started_at"`
	UptimeSeconds    int64           `json:"uptime_seconds"`
	Interval         string          `json:"interval"`
	ChildLifetime    string          `json:"child_lifetime"`
	ChildrenSpawned  int64           `json:"children_spawned"`
	UnreapedChildren int             `json:"unreaped_children"`
	Children         []procinfo.Proc `json:"children"`
}

// Status reports the generator counters and a fresh snapshot of its children
//
// json object with the generator state and one entry per current child
func (p *DiagServer) Status(w http.ResponseWriter, req *http.Request) {
	children, err := procinfo.Children(p.gen.PID())
	if err != nil {
		r := map[string]bool{"success": false}
		json.NewEncoder(w).Encode(r)
		return
	}
	reply := statusReply{
		PID:              p.gen.PID(),
		Version:          Version,
		StartedAt:        p.gen.StartedAt(),
		UptimeSeconds:    int64(time.Since(p.gen.StartedAt()).Seconds()),
		Interval:         p.gen.Interval().String(),
		ChildLifetime:    p.gen.ChildLifetime().String(),
		ChildrenSpawned:  p.gen.ChildrenSpawned(),
		UnreapedChildren: procinfo.CountZombies(children),
		Children:         children,
	}
	json.NewEncoder(w).Encode(&reply)
}

// Children reports a fresh snapshot of the generator's children
func (p *DiagServer) Children(w http.ResponseWriter, req *http.Request) {
	children, err := procinfo.Children(p.gen.PID())
	if err != nil {
		r := map[string]bool{"success": false}
		json.NewEncoder(w).Encode(r)
		return
	}
	json.NewEncoder(w).Encode(children)
}
