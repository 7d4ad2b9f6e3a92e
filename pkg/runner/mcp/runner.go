package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/innervoice/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner serves the analytics tools over MCP.
type Runner struct {
	Service *app.Service
	Name    string
	Version string
	// DefaultRange is the range key used when a tool call names none.
	DefaultRange string

	Transport Transport
	// Addr, Path and the TLS pair only apply to TransportHTTP.
	Addr    string
	Path    string
	TLSCert string
	TLSKey  string
	// Out receives the listening banner. Nil discards it.
	Out io.Writer
}

const (
	defaultAddr = "127.0.0.1:8080"
	defaultPath = "/mcp"
)

// NewServer builds the MCP server with every resource and tool registered.
func (r Runner) NewServer() (*server.MCPServer, error) {
	if r.Service == nil {
		return nil, errors.New("mcp: runner requires a service")
	}
	name := r.Name
	if name == "" {
		name = "innervoice"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	svc := NewService(r.Service)
	if r.DefaultRange != "" {
		def, err := svc.ParseRange(r.DefaultRange)
		if err != nil {
			return nil, err
		}
		svc.DefaultRange = def
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read emotion analytics over journal entries, export them as CSV, add entries and rate detected emotions."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, nil
}

// Do serves until ctx is cancelled or stdin closes.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.NewServer()
	if err != nil {
		return err
	}
	switch Transport(strings.ToLower(string(r.Transport))) {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unsupported transport %q (expected http or stdio)", r.Transport)
	}
}

// EndpointPath normalises Path to a rooted path.
func (r Runner) EndpointPath() string {
	path := strings.TrimSpace(r.Path)
	if path == "" {
		return defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (r Runner) tls() (bool, error) {
	switch {
	case r.TLSCert == "" && r.TLSKey == "":
		return false, nil
	case r.TLSCert == "" || r.TLSKey == "":
		return false, errors.New("mcp: both tls cert and key must be provided")
	}
	return true, nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	useTLS, err := r.tls()
	if err != nil {
		return err
	}
	addr := r.Addr
	if addr == "" {
		addr = defaultAddr
	}
	path := r.EndpointPath()

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if r.Out != nil {
		fmt.Fprintf(r.Out, "MCP HTTP server listening on %s\n", ListenURL(ln.Addr(), useTLS, path))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if useTLS {
		err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenURL is the URL clients should connect to. Wildcard listeners are
// shown as loopback.
func ListenURL(a net.Addr, useTLS bool, path string) string {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), path)
	}
	host := "127.0.0.1"
	if tcp.IP != nil && !tcp.IP.IsUnspecified() {
		host = tcp.IP.String()
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, fmt.Sprint(tcp.Port)), path)
}
