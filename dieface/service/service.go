// Package service exposes the registered dice over HTTP: orientation queries
// and the authoring commands of the editor.
package service

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/dieface/dieface/author"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/registry"
)

// Service ...
type Service struct {
	log     *slog.Logger
	key     string
	persist func(*registry.Entry) error

	router *gin.Engine
}

// New creates the service. Requests must carry key in the authorization header
// unless key is empty. persist is called after every successful edit and may be
// nil.
func New(log *slog.Logger, key string, persist func(*registry.Entry) error) *Service {
	gin.SetMode(gin.ReleaseMode)

	s := &Service{
		log:     log,
		key:     key,
		persist: persist,
		router:  gin.New(),
	}
	s.setupRoutes()
	return s
}

// Handler ...
func (s *Service) Handler() http.Handler {
	return s.router
}

// setupRoutes ...
func (s *Service) setupRoutes() {
	r := s.router
	r.Use(gin.Recovery(), s.logRequests)
	r.Use(func(c *gin.Context) {
		if s.key != "" && c.GetHeader("authorization") != s.key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	})

	r.GET("/presets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"presets": die.Names()})
	})
	r.GET("/dice", s.list)

	d := r.Group("/dice/:id")
	d.GET("", s.get)
	d.POST("/query", s.query)
	d.POST("/flip", s.flipAll)
	d.POST("/pick", s.pick)
	d.POST("/sides", s.addSide)
	d.PUT("/sides/:index", s.updateSide)
	d.DELETE("/sides/:index", s.removeSide)
	d.POST("/sides/:index/flip", s.flipSide)
	d.POST("/sides/:index/reassign", s.reassignSide)
}

// logRequests ...
func (s *Service) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("HTTP request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

// list ...
func (s *Service) list(c *gin.Context) {
	ids := registry.Identifiers()
	dice := make([]DieResponse, 0, len(ids))
	for _, id := range ids {
		if e := registry.FromIdentifier(id); e != nil {
			dice = append(dice, newDieResponse(e))
		}
	}
	c.JSON(http.StatusOK, gin.H{"dice": dice})
}

// get ...
func (s *Service) get(c *gin.Context) {
	e, ok := s.entry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newDieResponse(e))
}

// query ...
func (s *Service) query(c *gin.Context) {
	e, ok := s.entry(c)
	if !ok {
		return
	}
	var req OrientationRequest
	if !s.bind(c, &req) {
		return
	}

	m, found := e.Die().Match(req.quat(), req.up())
	if !found {
		c.JSON(http.StatusOK, QueryResponse{Index: -1})
		return
	}
	c.JSON(http.StatusOK, QueryResponse{Value: m.Side.Value, Index: m.Index, Angle: m.Angle})
}

// flipAll ...
func (s *Service) flipAll(c *gin.Context) {
	s.edit(c, func(ed *author.Editor) (int, error) {
		ed.FlipAll()
		return -1, nil
	})
}

// pick ...
func (s *Service) pick(c *gin.Context) {
	e, ok := s.entry(c)
	if !ok {
		return
	}
	var req HitRequest
	if !s.bind(c, &req) {
		return
	}
	i, err := author.NewEditor(e.Die().Clone()).Pick(mgl64.Vec3(req.Normal), req.quat())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": i})
}

// addSide ...
func (s *Service) addSide(c *gin.Context) {
	var req SideRequest
	if !s.bind(c, &req) {
		return
	}
	s.edit(c, func(ed *author.Editor) (int, error) {
		i := -1
		if req.Normal != nil {
			var err error
			if i, err = ed.Place(mgl64.Vec3(*req.Normal), req.quat()); err != nil {
				return -1, err
			}
		} else {
			i = ed.Add()
		}
		if req.Value != nil {
			return i, ed.SetValue(i, *req.Value)
		}
		return i, nil
	})
}

// updateSide ...
func (s *Service) updateSide(c *gin.Context) {
	var req SideRequest
	if !s.bind(c, &req) {
		return
	}
	s.editSide(c, func(ed *author.Editor, i int) error {
		if req.Normal != nil {
			if err := ed.SetNormal(i, mgl64.Vec3(*req.Normal)); err != nil {
				return err
			}
		}
		if req.Value != nil {
			return ed.SetValue(i, *req.Value)
		}
		return nil
	})
}

// removeSide ...
func (s *Service) removeSide(c *gin.Context) {
	s.editSide(c, func(ed *author.Editor, i int) error {
		return ed.Remove(i)
	})
}

// flipSide ...
func (s *Service) flipSide(c *gin.Context) {
	s.editSide(c, func(ed *author.Editor, i int) error {
		return ed.Flip(i)
	})
}

// reassignSide ...
func (s *Service) reassignSide(c *gin.Context) {
	var req HitRequest
	if !s.bind(c, &req) {
		return
	}
	s.editSide(c, func(ed *author.Editor, i int) error {
		if err := ed.Select(i); err != nil {
			return err
		}
		return ed.Reassign(mgl64.Vec3(req.Normal), req.quat())
	})
}

// editSide runs f with the side index taken from the path.
func (s *Service) editSide(c *gin.Context, f func(ed *author.Editor, i int) error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid side index"})
		return
	}
	s.edit(c, func(ed *author.Editor) (int, error) {
		return i, f(ed, i)
	})
}

// edit applies f to the die named in the path and responds with the result.
func (s *Service) edit(c *gin.Context, f func(ed *author.Editor) (int, error)) {
	e, ok := s.entry(c)
	if !ok {
		return
	}

	index := -1
	err := e.Update(func(ed *author.Editor) error {
		var err error
		index, err = f(ed)
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	if s.persist != nil {
		if err = s.persist(e); err != nil {
			s.log.Error("failed to save side table", "identifier", e.Identifier(), "error", err)
			sentry.CaptureException(err)
		}
	}
	c.JSON(http.StatusOK, EditResponse{Index: index, Die: newDieResponse(e)})
}

// entry ...
func (s *Service) entry(c *gin.Context) (*registry.Entry, bool) {
	e := registry.FromIdentifier(c.Param("id"))
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no die found"})
		return nil, false
	}
	return e, true
}

// bind decodes an optional JSON body into v.
func (s *Service) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// fail ...
func (s *Service) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		sentry.CaptureException(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusOf maps authoring errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, author.ErrIndexOutOfRange), errors.Is(err, author.ErrNoSide):
		return http.StatusNotFound
	case errors.Is(err, author.ErrDuplicateNormal):
		return http.StatusConflict
	case errors.Is(err, author.ErrDegenerateNormal), errors.Is(err, author.ErrNoSelection):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
