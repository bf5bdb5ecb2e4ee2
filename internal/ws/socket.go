package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/otiyot/internal/screen"
)

// ConnCtx remembers the screen a connection is playing on.
type ConnCtx struct {
	ScreenID string
}

// conn is the part of socketio.Conn the handlers use.
type conn interface {
	ID() string
	Emit(event string, v ...interface{})
	Context() interface{}
	SetContext(v interface{})
}

type Server struct {
	mgr        *screen.Manager
	corsOrigin string
}

func New(mgr *screen.Manager, corsOrigin string) *Server {
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Server{mgr: mgr, corsOrigin: corsOrigin}
}

type openReq struct {
	Game  string `json:"game"`
	Input string `json:"input"`
}

type tapReq struct {
	Letter string `json:"letter"`
}

type indexReq struct {
	Index int `json:"index"`
}

// Mount attaches Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	io.OnEvent("/", "screen:open", func(s socketio.Conn, payload openReq) map[string]any {
		return srv.open(s, payload)
	})
	io.OnEvent("/", "screen:restart", func(s socketio.Conn) map[string]any {
		return srv.restart(s)
	})
	io.OnEvent("/", "screen:close", func(s socketio.Conn) map[string]any {
		srv.closeScreen(s)
		return map[string]any{"ok": true}
	})
	io.OnEvent("/", "find:tap", func(s socketio.Conn, payload tapReq) map[string]any {
		return srv.tap(s, payload)
	})
	io.OnEvent("/", "sort:grab", func(s socketio.Conn, payload screen.Source) map[string]any {
		return srv.grab(s, payload)
	})
	io.OnEvent("/", "sort:release", func(s socketio.Conn, payload screen.Target) map[string]any {
		return srv.release(s, payload)
	})
	io.OnEvent("/", "sort:cancel", func(s socketio.Conn) map[string]any {
		return srv.cancel(s)
	})
	io.OnEvent("/", "sort:check", func(s socketio.Conn) map[string]any {
		return srv.check(s)
	})
	io.OnEvent("/", "memory:reveal", func(s socketio.Conn, payload indexReq) map[string]any {
		return srv.reveal(s, payload)
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.closeScreen(s)
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go func() {
		if err := io.Serve(); err != nil {
			log.Error().Err(err).Msg("socket server stopped")
		}
	}()

	// Mount to router
	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	// Basic CORS preflight for Socket.IO POST
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", srv.corsOrigin)
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// open replaces whatever the connection was playing with a new screen.
func (srv *Server) open(c conn, req openReq) map[string]any {
	srv.closeScreen(c)
	sc, err := srv.mgr.Open(screen.Kind(req.Game), screen.Options{
		Input:  screen.InputMode(req.Input),
		Notify: func(v screen.View) { c.Emit("screen:state", v) },
	})
	if err != nil {
		return srv.err(c, err)
	}
	c.SetContext(&ConnCtx{ScreenID: sc.ID()})
	log.Info().Str("sid", c.ID()).Str("screen", sc.ID()).Str("game", req.Game).Msg("screen:open")
	c.Emit("screen:state", sc.View())
	return map[string]any{"id": sc.ID()}
}

func (srv *Server) closeScreen(c conn) {
	ctx, ok := c.Context().(*ConnCtx)
	if !ok || ctx.ScreenID == "" {
		return
	}
	_ = srv.mgr.Close(ctx.ScreenID)
	c.SetContext(&ConnCtx{})
}

func (srv *Server) restart(c conn) map[string]any {
	sc, err := current[screen.Screen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	sc.Restart()
	return srv.state(c, sc.View(), nil)
}

func (srv *Server) tap(c conn, req tapReq) map[string]any {
	f, err := current[*screen.FindScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	v, err := f.Tap(req.Letter)
	return srv.state(c, v, err)
}

func (srv *Server) grab(c conn, src screen.Source) map[string]any {
	s, err := current[*screen.SortScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	v, err := s.Grab(src)
	return srv.state(c, v, err)
}

func (srv *Server) release(c conn, dst screen.Target) map[string]any {
	s, err := current[*screen.SortScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	v, err := s.Release(dst)
	return srv.state(c, v, err)
}

func (srv *Server) cancel(c conn) map[string]any {
	s, err := current[*screen.SortScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	return srv.state(c, s.Cancel(), nil)
}

func (srv *Server) check(c conn) map[string]any {
	s, err := current[*screen.SortScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	return srv.state(c, s.Check(), nil)
}

func (srv *Server) reveal(c conn, req indexReq) map[string]any {
	m, err := current[*screen.MemoryScreen](srv, c)
	if err != nil {
		return srv.err(c, err)
	}
	v, err := m.Reveal(req.Index)
	return srv.state(c, v, err)
}

func current[T screen.Screen](srv *Server, c conn) (T, error) {
	var zero T
	ctx, ok := c.Context().(*ConnCtx)
	if !ok || ctx.ScreenID == "" {
		return zero, screen.ErrScreenNotFound
	}
	sc, err := srv.mgr.Get(ctx.ScreenID)
	if err != nil {
		return zero, err
	}
	return screen.As[T](sc)
}

// state sends v to the connection, along with err if the action failed.
func (srv *Server) state(c conn, v screen.View, err error) map[string]any {
	if err != nil {
		return srv.err(c, err)
	}
	c.Emit("screen:state", v)
	return map[string]any{"ok": true}
}

func (srv *Server) err(c conn, err error) map[string]any {
	code := screen.ErrorCode(err)
	log.Debug().Str("sid", c.ID()).Str("code", code).Err(err).Msg("rejected")
	c.Emit("error", map[string]any{"code": code, "message": err.Error()})
	return map[string]any{"error": err.Error()}
}
