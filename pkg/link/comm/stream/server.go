package stream

import (
	"context"
	"fmt"
	"net"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
)

// Server accepts TCP connections, each one a Registrar whose commands
// go to Handler and which receives the events sent through Events.
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
	return "tcp"
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
	glog.Infof("link listening on tcp %s", s.listener.Addr())
	return fx.RunWithContextCloser(ctx, s.listener, func() error {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				return err
			}
			go s.serve(ctx, conn)
		}
	})
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	peer := conn.RemoteAddr()
	glog.V(2).Infof("tcp peer %s connected", peer)
	reg := comm.NewRegistrar(New(conn), s.Handler)
	if s.Events != nil {
		s.Events.Add(reg)
		defer s.Events.Remove(reg)
	}
	err := reg.Run(ctx)
	glog.V(2).Infof("tcp peer %s gone: %v", peer, err)
}

// Dial connects to a Server.
func Dial(ctx context.Context, addr string) (*comm.DeviceConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return comm.NewDeviceConn(New(conn)), nil
}
