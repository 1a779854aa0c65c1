package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tokenlore/storyd/internal/stories"
	"github.com/tokenlore/storyd/internal/tokens"
	"github.com/tokenlore/storyd/pkg/errors"
	"github.com/tokenlore/storyd/pkg/logger"
)

func NewServer(cfg Config, log logger.Logger, stories stories.API) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: true,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		RequestMethods:          []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	s := &server{
		stories: stories,
		http:    fiber.New(fiberCfg),
		addr:    cfg.HTTP.Addr,
		log:     serveLog,
	}

	s.setupRoutes()

	return s
}

type server struct {
	stories stories.API
	http    *fiber.App
	addr    string
	log     logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	err := s.stories.Close(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "close stories api"))
	}

	err = s.http.ShutdownWithContext(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "shutdown http server"))
	}

	return errors.Join(errs...)
}

func (s *server) setupRoutes() {
	s.http.Get("/story/enabled", s.handleStoryEnabled)
	s.http.Put("/story/enabled", s.handleSetStoryEnabled)

	s.http.Post("/tokens/:id/creator-story", s.handleAddCreatorStory)
	s.http.Post("/tokens/:id/story", s.handleAddStory)
	s.http.Get("/tokens/:id/creator-stories", s.handleCreatorStories)
	s.http.Get("/tokens/:id/stories", s.handleStories)
}

type appendRequest struct {
	Caller string `json:"caller"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

type toggleRequest struct {
	Caller  string `json:"caller"`
	Enabled bool   `json:"enabled"`
}

func (s *server) handleStoryEnabled(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(map[string]bool{"enabled": s.stories.StoryEnabled()})
}

func (s *server) handleSetStoryEnabled(c *fiber.Ctx) error {
	var req toggleRequest
	err := c.BodyParser(&req)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "unmarshal toggle payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	err = s.stories.SetStoryEnabled(c.Context(), tokens.Address(req.Caller), req.Enabled)
	if err != nil {
		return s.sendStoryError(c, err)
	}

	return c.Status(http.StatusOK).Send(nil)
}

func (s *server) handleAddCreatorStory(c *fiber.Ctx) error {
	return s.handleAppend(c, s.stories.AddCreatorStory)
}

func (s *server) handleAddStory(c *fiber.Ctx) error {
	return s.handleAppend(c, s.stories.AddStory)
}

func (s *server) handleAppend(
	c *fiber.Ctx,
	appendFunc func(context.Context, tokens.Address, uint64, string, string) (stories.Entry, error),
) error {
	tokenID, err := s.getTokenIDOrErr(c)
	if err != nil {
		s.log.Warn(err)
		return s.sendError(c, http.StatusBadRequest, "bad token id")
	}

	var req appendRequest
	err = c.BodyParser(&req)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "unmarshal story payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	entry, err := appendFunc(c.Context(), tokens.Address(req.Caller), tokenID, req.Name, req.Text)
	if err != nil {
		return s.sendStoryError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(entry)
}

func (s *server) handleCreatorStories(c *fiber.Ctx) error {
	return s.handleRead(c, s.stories.CreatorStories)
}

func (s *server) handleStories(c *fiber.Ctx) error {
	return s.handleRead(c, s.stories.Stories)
}

func (s *server) handleRead(
	c *fiber.Ctx,
	readFunc func(context.Context, uint64) ([]stories.Entry, error),
) error {
	tokenID, err := s.getTokenIDOrErr(c)
	if err != nil {
		s.log.Warn(err)
		return s.sendError(c, http.StatusBadRequest, "bad token id")
	}

	entries, err := readFunc(c.Context(), tokenID)
	if err != nil {
		return errors.WrapFail(err, "read story entries")
	}

	return c.Status(http.StatusOK).JSON(entries)
}

// sendStoryError maps the failure taxonomy to status codes; anything
// outside it falls through to the fiber error handler.
func (s *server) sendStoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, stories.ErrUnauthorized):
		return s.sendError(c, http.StatusForbidden, "unauthorized")
	case errors.Is(err, stories.ErrStoryDisabled):
		return s.sendError(c, http.StatusLocked, "story disabled")
	case errors.Is(err, stories.ErrNonexistentToken):
		return s.sendError(c, http.StatusNotFound, "nonexistent token")
	case errors.Is(err, stories.ErrInsufficientHolding):
		return s.sendError(c, http.StatusForbidden, "insufficient holding")
	default:
		return err
	}
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(map[string]string{"status": "ERROR", "message": msg})
}

func (s *server) getTokenIDOrErr(c *fiber.Ctx) (uint64, error) {
	raw := c.Params("id", "")
	if raw == "" {
		return 0, errors.Error("got empty \"id\" param")
	}

	tokenID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.WrapFailf(err, "parse token id %q", raw)
	}

	return tokenID, nil
}
