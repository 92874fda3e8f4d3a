package websocket

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
)

// Path is where the link is served.
const Path = "/ws"

// Handler creates an http.Handler running a Registrar per connection.
func Handler(ctx context.Context, handler link.CommandHandler, events *comm.RegistrarMux) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		reg := comm.NewRegistrar(New(conn), handler)
		if events != nil {
			events.Add(reg)
			defer events.Remove(reg)
		}
		err := reg.Run(ctx)
		glog.V(2).Infof("websocket peer %s gone: %v", conn.Request().RemoteAddr, err)
	})
}

// Server serves the link on Path.
type Server struct {
	Addr    string
	Handler link.CommandHandler
	Events  *comm.RegistrarMux

	listener net.Listener
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handler link.CommandHandler, events *comm.RegistrarMux) *Server {
	return &Server{Addr: addr, Handler: handler, Events: events}
}

// Name implements Named.
func (s *Server) Name() string {
	return "websocket"
}

// Listen binds the address. Run calls it if needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.listener = ln
	return nil
}

// ListenAddr returns the bound address, nil before Listen.
func (s *Server) ListenAddr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle(Path, Handler(ctx, s.Handler, s.Events))
	server := &http.Server{Handler: mux}
	glog.Infof("link listening on ws://%s%s", s.listener.Addr(), Path)
	err := fx.RunWithContextCloser(ctx, server, func() error {
		return server.Serve(s.listener)
	})
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Dial connects to a Server, url is like ws://host:port/ws.
func Dial(url string) (*comm.DeviceConn, error) {
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	return comm.NewDeviceConn(New(conn)), nil
}
