package core

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// endpoint is an http.Server that binds and serves as two separate
// steps, so callers decide when the port is taken.
type endpoint struct {
	port      int
	handler   http.Handler
	mu        sync.Mutex
	server    *http.Server
	listener  net.Listener
	bound     *Awaiter
	boundN    *AwaitNotifier
	logFields log.Fields
}

func newEndpoint(port int, handler http.Handler, logFields log.Fields) *endpoint {
	bound, boundN := NewAwaiter()
	return &endpoint{
		port:      port,
		handler:   handler,
		bound:     bound,
		boundN:    boundN,
		logFields: logFields,
	}
}

func (e *endpoint) listen() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listener != nil {
		return errors.New("already listening")
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", e.port))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", e.port)
	}
	e.listener = listener
	e.server = &http.Server{Handler: e.handler}
	e.boundN.Notify(nil)
	return nil
}

// serve runs the server loop. The returned Awaiter resolves with nil
// once the endpoint is closed.
func (e *endpoint) serve() *Awaiter {
	awaiter, awaitNotifier := NewAwaiter()

	e.mu.Lock()
	server, listener := e.server, e.listener
	e.mu.Unlock()

	if server == nil {
		awaitNotifier.Notify(errors.New("serve called before listen"))
		return awaiter
	}

	go func() {
		err := server.Serve(listener)
		if err == http.ErrServerClosed {
			err = nil
		}
		if err != nil {
			log.WithFields(e.logFields).WithField("err", err).Error("server exited")
			err = errors.WithStack(err)
		}
		awaitNotifier.Notify(err)
	}()
	return awaiter
}

func (e *endpoint) close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.server != nil {
		return e.server.Close()
	}
	return nil
}

// addr is nil until listen succeeded.
func (e *endpoint) addr() net.Addr {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listener == nil {
		return nil
	}
	return e.listener.Addr()
}

func (e *endpoint) boundPort() int {
	if tcp, ok := e.addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return e.port
}
