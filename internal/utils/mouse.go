package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11Pointer queries the global pointer position from the X server. A
// wallpaper window sits below every other window and never sees mouse
// events, so in that mode the pointer has to be read from the root window.
type X11Pointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewX11Pointer() (*X11Pointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &X11Pointer{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// Position returns the pointer in root window coordinates.
func (p *X11Pointer) Position() (float64, float64, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return float64(reply.RootX), float64(reply.RootY), nil
}

func (p *X11Pointer) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
