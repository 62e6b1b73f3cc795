package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
)

// PointerState is the desktop-wide pointer as seen by the X server.
type PointerState struct {
	X, Y   int
	Left   bool
	Middle bool
	Right  bool
}

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// GetGlobalPointer queries position and button mask. Used in wallpaper mode, where
// the window sits below the desktop and never receives input events.
func GetGlobalPointer() (PointerState, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return PointerState{}, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return PointerState{}, fmt.Errorf("query pointer: %w", err)
	}

	return PointerState{
		X:      int(reply.RootX),
		Y:      int(reply.RootY),
		Left:   reply.Mask&xproto.KeyButMaskButton1 != 0,
		Middle: reply.Mask&xproto.KeyButMaskButton2 != 0,
		Right:  reply.Mask&xproto.KeyButMaskButton3 != 0,
	}, nil
}
