package api

import (
	"log"
	"net/http"
)

// Api serves the rendered artifacts for preview in a browser.
type Api struct {
	dir  string
	addr string
}

// NewApi creates an Api serving files from dir on addr.
func NewApi(dir string, addr string) *Api {
	a := new(Api)
	a.dir = dir
	a.addr = addr
	return a
}

// Handler serves the artifact directory.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(a.dir)))
	return mux
}

// Serve blocks serving the artifact directory.
func (a *Api) Serve() error {
	log.Printf("Listening on %s...", a.addr)
	return http.ListenAndServe(a.addr, a.Handler())
}
