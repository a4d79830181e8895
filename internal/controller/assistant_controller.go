package controller

import (
	"errors"
	"io"
	"time"

	"nexter-ai-be/internal/constant"
	"nexter-ai-be/internal/dto"
	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/pkg/serverutils"
	"nexter-ai-be/internal/repository/contract"
	"nexter-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionHeaderName = "X-Session-Id"
	sessionCookieName = "session_id"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Refine(ctx *fiber.Ctx) error
	Assistant(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
}

type assistantController struct {
	refineService      service.IRefineService
	coverLetterService service.ICoverLetterService
	analysisService    service.IAnalysisService
}

func NewAssistantController(
	refineService service.IRefineService,
	coverLetterService service.ICoverLetterService,
	analysisService service.IAnalysisService,
) IAssistantController {
	return &assistantController{
		refineService:      refineService,
		coverLetterService: coverLetterService,
		analysisService:    analysisService,
	}
}

// RegisterRoutes keeps the original path layout so existing clients work
// unchanged. These endpoints return their documented raw body shapes, not
// the envelope; the envelope is reserved for error responses.
func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/projects")
	h.Post("/refine", c.Refine)
	h.Post("/assistant", c.Assistant)
	h.Post("/analyze", c.Analyze)
}

// turnProbe distinguishes a start turn from a continuation without
// committing to either request shape yet.
type turnProbe struct {
	State     string `json:"state"`
	Answer    string `json:"answer"`
	SessionId string `json:"session_id"`
}

func (c *assistantController) Refine(ctx *fiber.Ctx) error {
	var probe turnProbe
	if err := ctx.BodyParser(&probe); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if probe.State == dto.StateStart {
		var req dto.RefineStartRequest
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, session, err := c.refineService.Start(ctx.Context(), &req)
		if err != nil {
			return err
		}
		setSessionCookie(ctx, session)
		return ctx.JSON(res)
	}

	if probe.Answer == "" {
		return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청 형식입니다.")
	}

	res, session, err := c.refineService.Continue(ctx.Context(), resolveSessionId(ctx, probe.SessionId), probe.Answer)
	if errors.Is(err, contract.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, constant.SessionNotFoundMessage)
	}
	if err != nil {
		return err
	}
	setSessionCookie(ctx, session)
	return ctx.JSON(res)
}

func (c *assistantController) Assistant(ctx *fiber.Ctx) error {
	var probe turnProbe
	if err := ctx.BodyParser(&probe); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if probe.State == dto.StateStart {
		var req dto.CoverLetterStartRequest
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		res, session, err := c.coverLetterService.Start(ctx.Context(), &req)
		if err != nil {
			return err
		}
		setSessionCookie(ctx, session)
		return ctx.JSON(res)
	}

	if probe.Answer == "" {
		return fiber.NewError(fiber.StatusBadRequest, "잘못된 요청 형식입니다.")
	}

	res, session, err := c.coverLetterService.Continue(ctx.Context(), resolveSessionId(ctx, probe.SessionId), probe.Answer)
	if errors.Is(err, contract.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, constant.SessionNotFoundMessage)
	}
	if err != nil {
		return err
	}
	setSessionCookie(ctx, session)
	return ctx.JSON(res)
}

// Analyze accepts multipart (file/url/text fields) or a JSON body with
// url/text. Exactly one source is used, preferring file, then url, then text.
func (c *assistantController) Analyze(ctx *fiber.Ctx) error {
	if fileHeader, err := ctx.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
		}

		res, err := c.analysisService.AnalyzeUpload(ctx.Context(), fileHeader.Filename, content)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return ctx.JSON(res)
	}

	req := dto.AnalyzeRequest{
		URL:  ctx.FormValue("url"),
		Text: ctx.FormValue("text"),
	}
	if req.URL == "" && req.Text == "" {
		// Not multipart: fall back to the JSON body.
		if err := ctx.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	switch {
	case req.URL != "":
		res, err := c.analysisService.AnalyzeURL(ctx.Context(), req.URL)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return ctx.JSON(res)
	case req.Text != "":
		res, err := c.analysisService.AnalyzeText(ctx.Context(), req.Text)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return ctx.JSON(res)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "No file, url, or text provided")
	}
}

// resolveSessionId honors the documented precedence: header, cookie, body
// field. An empty result lets the service apply its own fallback policy.
func resolveSessionId(ctx *fiber.Ctx, bodySessionId string) string {
	if id := ctx.Get(sessionHeaderName); id != "" {
		return id
	}
	if id := ctx.Cookies(sessionCookieName); id != "" {
		return id
	}
	return bodySessionId
}

func setSessionCookie(ctx *fiber.Ctx, session *entity.Session) {
	if session == nil {
		return
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    session.Id.String(),
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
