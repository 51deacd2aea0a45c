package credentials

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the credential endpoints on the given router.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.
		Post(controller.Routes.SignIn, controller.SignInPost).
		SetName("auth.sign-in.post")

	app.
		Post(controller.Routes.Register, controller.RegisterPost).
		SetName("auth.register.post")

	app.
		Post(controller.Routes.ChangePassword, controller.ChangePasswordPost).
		SetName("auth.change-pw.post")

	app.
		Post(controller.Routes.Update, controller.UpdatePost).
		SetName("auth.update.post")

	app.
		Get(controller.Routes.Params, controller.ParamsShow).
		SetName("auth.params.get")
}

type AuthControllerRoutes struct {
	SignIn         string
	Register       string
	ChangePassword string
	Update         string
	Params         string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Manager      CredentialManager
	Tokens       TokenService
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			SignIn:         "/auth/sign_in",
			Register:       "/auth",
			ChangePassword: "/auth/change_pw",
			Update:         "/auth/update",
			Params:         "/auth/params",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Manager == nil {
		panic("Missing CredentialManager in auth controller...")
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

func WithControllerManager(manager CredentialManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Manager = manager
		return c
	}
}

func WithControllerTokens(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithControllerRepository(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func WithControllerErrorHandler(handler router.ErrorHandler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.ErrorHandler = handler
		return c
	}
}

// credentialParamsPayload carries the whitelisted key-derivation parameters a
// client may send alongside any credential operation. Pointer fields
// distinguish absent from zero.
type credentialParamsPayload struct {
	PwFunc    *string `json:"pw_func,omitempty"`
	PwAlg     *string `json:"pw_alg,omitempty"`
	PwCost    *int    `json:"pw_cost,omitempty"`
	PwKeySize *int    `json:"pw_key_size,omitempty"`
	PwNonce   *string `json:"pw_nonce,omitempty"`
	PwSalt    *string `json:"pw_salt,omitempty"`
	Version   *int    `json:"version,omitempty"`
	API       *string `json:"api,omitempty"`
}

func (p credentialParamsPayload) toParams() Params {
	params := Params{}
	if p.PwFunc != nil {
		params[paramPwFunc] = *p.PwFunc
	}
	if p.PwAlg != nil {
		params[paramPwAlg] = *p.PwAlg
	}
	if p.PwCost != nil {
		params[paramPwCost] = *p.PwCost
	}
	if p.PwKeySize != nil {
		params[paramPwKeySize] = *p.PwKeySize
	}
	if p.PwNonce != nil {
		params[paramPwNonce] = *p.PwNonce
	}
	if p.PwSalt != nil {
		params[paramPwSalt] = *p.PwSalt
	}
	if p.Version != nil {
		params[paramVersion] = *p.Version
	}
	if p.API != nil {
		params[paramAPI] = *p.API
	}
	return params
}

// SignInRequest payload
type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	credentialParamsPayload
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) SignInPost(ctx router.Context) error {
	payload := new(SignInRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse body"))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid sign in payload"); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= AUTH SIGN IN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===========================")
	}

	result, err := a.Manager.SignIn(
		ctx.Context(),
		payload.Email,
		payload.Password,
		payload.toParams(),
		ctx.GetString("User-Agent", ""),
	)
	if err != nil {
		a.Logger.Error("sign in error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	credentialParamsPayload
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			validation.Length(3, 255),
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse body"))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid registration payload"); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	result, err := a.Manager.Register(
		ctx.Context(),
		payload.Email,
		payload.Password,
		payload.toParams(),
		ctx.GetString("User-Agent", ""),
	)
	if err != nil {
		a.Logger.Error("register error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

// ChangePasswordRequest payload
type ChangePasswordRequest struct {
	NewPassword string `form:"new_password" json:"new_password"`
	credentialParamsPayload
}

// Validate will run validation rules
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.NewPassword,
			validation.Required,
		),
	)
}

func (a *AuthController) ChangePasswordPost(ctx router.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(ChangePasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse body"))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid change password payload"); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	result, err := a.Manager.ChangePassword(
		ctx.Context(),
		user,
		payload.NewPassword,
		payload.toParams(),
		ctx.GetString("User-Agent", ""),
	)
	if err != nil {
		a.Logger.Error("change password error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

// UpdateRequest payload
type UpdateRequest struct {
	credentialParamsPayload
}

func (a *AuthController) UpdatePost(ctx router.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(UpdateRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse body"))
	}

	result, err := a.Manager.Update(ctx.Context(), user, payload.toParams())
	if err != nil {
		a.Logger.Error("update error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, result)
}

func (a *AuthController) ParamsShow(ctx router.Context) error {
	email := ctx.Query("email")
	if email == "" {
		return a.ErrorHandler(ctx, errors.New("email is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest))
	}

	params, err := a.Manager.AuthParams(ctx.Context(), email)
	if err != nil {
		a.Logger.Error("auth params error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if params == nil {
		// Unknown identifiers answer with an empty object rather than a
		// 404 so the endpoint does not double as an account oracle.
		return ctx.JSON(router.StatusOK, map[string]any{})
	}

	return ctx.JSON(router.StatusOK, params)
}

// currentUser resolves the authenticated user for password-bearing
// operations. Tokens are tried first, then session access tokens; a token
// minted against a superseded password hash is rejected.
func (a *AuthController) currentUser(ctx router.Context) (*User, error) {
	header := ctx.GetString("Authorization", "")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, ErrInvalidCredentials
	}

	if claims, err := a.Tokens.Validate(token); err == nil {
		user, err := a.Repo.Users().GetByIdentifier(ctx.Context(), claims.UserID())
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if claims.CredentialDigest() != CredentialDigest(user.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		return user, nil
	}

	session, err := a.Repo.Sessions().GetByAccessToken(ctx.Context(), token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := a.Repo.Users().GetByIdentifier(ctx.Context(), session.UserID.String())
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func defaultErrHandler(c router.Context, err error) error {
	var e *errors.Error
	if !errors.As(err, &e) {
		e = errors.Wrap(err, errors.CategoryInternal, "internal error").
			WithCode(errors.CodeInternal)
	}

	status := e.Code
	if status == 0 {
		status = router.StatusInternalServerError
	}

	return c.JSON(status, map[string]any{
		"error": map[string]any{
			"message": e.Message,
			"status":  status,
		},
	})
}
