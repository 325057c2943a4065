package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/cobaltlabs/go-auth/middleware/bearerware"
)

// ServiceResponse is the JSON envelope every endpoint answers with
type ServiceResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

func successResponse(message string, object any, status int) ServiceResponse {
	return ServiceResponse{Success: true, Message: message, ResponseObject: object, StatusCode: status}
}

func failureResponse(message string, status int) ServiceResponse {
	return ServiceResponse{Success: false, Message: message, ResponseObject: nil, StatusCode: status}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest is the registration payload. Password length bounds are
// enforced here, at the request boundary, not inside the auth core.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 255)),
	)
}

type authPayload struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// AuthController exposes the authentication endpoints over Fiber
type AuthController struct {
	auther Authenticator
	logger Logger
}

// NewAuthController builds a controller around the given authenticator
func NewAuthController(auther Authenticator) *AuthController {
	return &AuthController{
		auther: auther,
		logger: defLogger{},
	}
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	if l != nil {
		a.logger = l
	}
	return a
}

// RegisterRoutes wires the public auth endpoints, the health check, and a
// protected user route guarded by the bearer middleware.
func (a *AuthController) RegisterRoutes(app *fiber.App) {
	app.Get("/health", a.HealthCheck)

	grp := app.Group("/auth")
	grp.Post("/login", a.Login)
	grp.Post("/register", a.Register)

	users := app.Group("/users", a.Protected())
	users.Get("/me", a.CurrentUser)
}

// Protected returns the bearer middleware bound to this controller's
// authenticator. Handlers behind it can rely on the identity being
// attached to both Locals and the request context.
func (a *AuthController) Protected() fiber.Handler {
	return bearerware.New(bearerware.Config{
		Authorizer: func(ctx context.Context, token string) (bearerware.Identity, error) {
			return a.auther.Authorize(ctx, token)
		},
		ContextEnricher: func(ctx context.Context, identity bearerware.Identity) context.Context {
			if full, ok := identity.(Identity); ok {
				return WithContext(ctx, full)
			}
			return ctx
		},
		ErrorHandler: a.unauthorizedHandler,
	})
}

func (a *AuthController) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(successResponse("Service is healthy", nil, fiber.StatusOK))
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	req := LoginRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failureResponse("Invalid request body", fiber.StatusBadRequest))
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failureResponse(err.Error(), fiber.StatusBadRequest))
	}

	result, err := a.auther.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(successResponse("Login successful", authPayload{
		Token: result.Token,
		User:  NewAuthUser(result.Identity),
	}, fiber.StatusOK))
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	req := RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failureResponse("Invalid request body", fiber.StatusBadRequest))
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failureResponse(err.Error(), fiber.StatusBadRequest))
	}

	result, err := a.auther.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(successResponse("Registration successful", authPayload{
		Token: result.Token,
		User:  NewAuthUser(result.Identity),
	}, fiber.StatusCreated))
}

// CurrentUser answers with the identity the middleware attached
func (a *AuthController) CurrentUser(c *fiber.Ctx) error {
	identity, ok := FromContext(c.UserContext())
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(failureResponse("Invalid token", fiber.StatusUnauthorized))
	}

	return c.Status(fiber.StatusOK).JSON(successResponse("User retrieved", NewAuthUser(identity), fiber.StatusOK))
}

// renderError maps rejection reasons to 4xx responses with their own
// message, and everything else to an opaque 500. Details of operational
// faults are logged, never sent to the client.
func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	if status >= fiber.StatusInternalServerError {
		a.logger.Error("auth request fault", "path", c.Path(), "error", err)
		return c.Status(status).JSON(failureResponse("Authentication error", status))
	}

	message := "Unauthorized"
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Message != "" {
		message = rich.Message
	}

	return c.Status(status).JSON(failureResponse(message, status))
}

func (a *AuthController) unauthorizedHandler(c *fiber.Ctx, err error) error {
	status := StatusForError(err)
	if status >= fiber.StatusInternalServerError {
		a.logger.Error("authorization fault", "path", c.Path(), "error", err)
		return c.Status(status).JSON(failureResponse("Authentication error", status))
	}
	return c.Status(status).JSON(failureResponse("Invalid token", status))
}

// StatusForError translates the error taxonomy into an HTTP status class:
// conflicts are 409, other rejections 401, validation problems 400, and
// operational faults 500.
func StatusForError(err error) int {
	if err == nil {
		return fiber.StatusOK
	}

	if goerrors.Is(err, ErrEmailTaken) {
		return fiber.StatusConflict
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryConflict:
			return fiber.StatusConflict
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return fiber.StatusBadRequest
		case goerrors.CategoryAuth:
			return fiber.StatusUnauthorized
		}
	}

	return fiber.StatusInternalServerError
}
