// Package api exposes screens over plain HTTP for clients without a socket.
// Timer-driven changes are picked up by polling GET /api/screens/:id.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiliankoe/otiyot/internal/game"
	"github.com/kiliankoe/otiyot/internal/screen"
)

type Handler struct {
	mgr *screen.Manager
}

func New(mgr *screen.Manager) *Handler {
	return &Handler{mgr: mgr}
}

type openReq struct {
	Game  string `json:"game" binding:"required,oneof=find sort memory"`
	Input string `json:"input" binding:"omitempty,oneof=drag tap"`
}

type tapReq struct {
	Letter string `json:"letter" binding:"required"`
}

type sourceReq struct {
	Area   screen.Area `json:"area" binding:"required,oneof=pool slot"`
	Index  int         `json:"index"`
	Letter string      `json:"letter" binding:"required_if=Area pool"`
}

type targetReq struct {
	Area  screen.Area `json:"area" binding:"required,oneof=pool slot"`
	Index int         `json:"index"`
}

type revealReq struct {
	Index *int `json:"index" binding:"required"`
}

// Register mounts the routes under /api.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api/screens")
	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.close)
	g.POST("/:id/restart", h.restart)
	g.POST("/:id/find/tap", h.tap)
	g.POST("/:id/sort/grab", h.grab)
	g.POST("/:id/sort/release", h.release)
	g.POST("/:id/sort/cancel", h.cancel)
	g.POST("/:id/sort/check", h.check)
	g.POST("/:id/memory/reveal", h.reveal)
}

func (h *Handler) open(c *gin.Context) {
	var req openReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	sc, err := h.mgr.Open(screen.Kind(req.Game), screen.Options{Input: screen.InputMode(req.Input)})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc.View())
}

func (h *Handler) get(c *gin.Context) {
	sc, err := h.mgr.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sc.View())
}

func (h *Handler) close(c *gin.Context) {
	if err := h.mgr.Close(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) restart(c *gin.Context) {
	sc, err := h.mgr.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sc.Restart()
	c.JSON(http.StatusOK, sc.View())
}

func (h *Handler) tap(c *gin.Context) {
	f, ok := lookup[*screen.FindScreen](h, c)
	if !ok {
		return
	}
	var req tapReq
	if !bind(c, &req) {
		return
	}
	respond(c)(f.Tap(req.Letter))
}

func (h *Handler) grab(c *gin.Context) {
	s, ok := lookup[*screen.SortScreen](h, c)
	if !ok {
		return
	}
	var req sourceReq
	if !bind(c, &req) {
		return
	}
	respond(c)(s.Grab(screen.Source{Area: req.Area, Index: req.Index, Letter: req.Letter}))
}

func (h *Handler) release(c *gin.Context) {
	s, ok := lookup[*screen.SortScreen](h, c)
	if !ok {
		return
	}
	var req targetReq
	if !bind(c, &req) {
		return
	}
	respond(c)(s.Release(screen.Target{Area: req.Area, Index: req.Index}))
}

func (h *Handler) cancel(c *gin.Context) {
	s, ok := lookup[*screen.SortScreen](h, c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Cancel())
}

func (h *Handler) check(c *gin.Context) {
	s, ok := lookup[*screen.SortScreen](h, c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Check())
}

func (h *Handler) reveal(c *gin.Context) {
	m, ok := lookup[*screen.MemoryScreen](h, c)
	if !ok {
		return
	}
	var req revealReq
	if !bind(c, &req) {
		return
	}
	respond(c)(m.Reveal(*req.Index))
}

func lookup[T screen.Screen](h *Handler, c *gin.Context) (T, bool) {
	var zero T
	sc, err := h.mgr.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return zero, false
	}
	t, err := screen.As[T](sc)
	if err != nil {
		fail(c, err)
		return zero, false
	}
	return t, true
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return false
	}
	return true
}

func respond(c *gin.Context) func(screen.View, error) {
	return func(v screen.View, err error) {
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(status(err), gin.H{"error": screen.ErrorCode(err), "message": err.Error()})
}

func status(err error) int {
	switch {
	case errors.Is(err, screen.ErrScreenNotFound):
		return http.StatusNotFound
	case errors.Is(err, screen.ErrUnknownKind), errors.Is(err, game.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, screen.ErrWrongKind), errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, game.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
