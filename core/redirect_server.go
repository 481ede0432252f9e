/*
Copyright © 2026 Dashshim Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"bytes"
	"net"
	"net/http"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var redirectPage = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>{{html .Title}}</title>
  <meta http-equiv="refresh" content="0;url={{html .Target}}">
  <style>
    body {
      font-family: Arial, sans-serif;
      text-align: center;
      margin-top: 50px;
    }
  </style>
</head>
<body>
  <h1>Redirecting to {{html .Title}}...</h1>
  <p>If you are not redirected automatically, <a href="{{html .Target}}">click here</a>.</p>
</body>
</html>
`))

// ResolvePort parses the PORT value. Anything that is not an
// integer in 1..65535 yields DefaultPort.
func ResolvePort(value string) int {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

// RedirectServer serves a single static page on `/` that sends the
// browser to Target.
type RedirectServer struct {
	Target  string
	Title   string
	page    []byte
	metrics *Metrics
	*endpoint
}

func (s *RedirectServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	s.metrics.observeRedirect()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.page)
}

// Listen binds the port and logs the address.
func (s *RedirectServer) Listen() error {
	if err := s.listen(); err != nil {
		return err
	}
	log.WithFields(s.logFields).Infof("redirect server listening on http://localhost:%d", s.boundPort())
	log.WithFields(s.logFields).Infof("redirecting to the application at %s", s.Target)
	return nil
}

// Serve must follow a successful Listen.
func (s *RedirectServer) Serve() *Awaiter {
	return s.serve()
}

func (s *RedirectServer) Close() error {
	return s.close()
}

// Addr is nil until Listen succeeded.
func (s *RedirectServer) Addr() net.Addr {
	return s.addr()
}

// Bound resolves once Listen succeeded.
func (s *RedirectServer) Bound() *Awaiter {
	return s.bound
}

// NewRedirectServer renders the page once; port 0 picks a free port.
func NewRedirectServer(port int, target, title string, metrics *Metrics) (*RedirectServer, error) {
	var page bytes.Buffer
	err := redirectPage.Execute(&page, struct{ Title, Target string }{title, target})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s := &RedirectServer{
		Target:  target,
		Title:   title,
		page:    page.Bytes(),
		metrics: metrics,
	}
	s.endpoint = newEndpoint(port, s, log.Fields{"module": "redirect_server"})
	return s, nil
}
