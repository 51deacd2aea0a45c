package credentials

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
)

// NewServer builds a Fiber backed HTTP server with the credential endpoints
// mounted. Callers that need middleware or extra routes can keep configuring
// srv.Router() before serving.
func NewServer(manager CredentialManager, tokens TokenService, repo RepositoryManager, opts ...AuthControllerOption) router.Server[*fiber.App] {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	options := append([]AuthControllerOption{
		WithControllerManager(manager),
		WithControllerTokens(tokens),
		WithControllerRepository(repo),
	}, opts...)

	RegisterAuthRoutes(srv.Router(), options...)

	return srv
}
