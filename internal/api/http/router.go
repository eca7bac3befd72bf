package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/http/handlers"
	"github.com/spec-kit/qrmenu-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Menu           *handlers.MenuHandler
	Tables         *handlers.TablesHandler
	Orders         *handlers.OrdersHandler
	POS            *handlers.POSHandler
	Billing        *handlers.BillingHandler
	Contacts       *handlers.ContactsHandler
	Stats          *handlers.StatsHandler
	Content        *handlers.ContentHandler
	Public         *handlers.PublicHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", cfg.Auth.ResetPassword)
	authGroup.Post("/email/forgot", cfg.Auth.ForgotEmail)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	public := app.Group("/public")
	public.Get("/menu/:qrToken", cfg.Public.Menu)
	public.Post("/orders", cfg.Public.CreateOrder)
	public.Post("/chat", cfg.Public.RecordChat)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/menu", cfg.Menu.List)
	api.Post("/menu", cfg.Menu.Create)
	api.Put("/menu/:id", cfg.Menu.Update)
	api.Delete("/menu/:id", cfg.Menu.Delete)
	api.Get("/menu/:id/upsell", cfg.Menu.Upsell)

	api.Get("/tables", cfg.Tables.List)
	api.Post("/tables", cfg.Tables.Create)
	api.Delete("/tables/:id", cfg.Tables.Delete)

	api.Get("/orders", cfg.Orders.List)
	api.Get("/orders/:id", cfg.Orders.Get)
	api.Patch("/orders/:id/status", cfg.Orders.UpdateStatus)
	api.Post("/orders/:id/pos", cfg.Orders.Dispatch)

	api.Post("/pos/test", cfg.POS.TestConnection)
	api.Post("/billing/checkout", cfg.Billing.CreateCheckout)

	api.Get("/contacts", cfg.Contacts.List)
	api.Post("/contacts", cfg.Contacts.Create)
	api.Get("/stats", cfg.Stats.Summary)

	api.Post("/content/translate", cfg.Content.Translate)
	api.Get("/content/images", cfg.Content.SearchImage)

	admin := app.Group("/admin", cfg.AuthMiddleware.RequireSuperAdmin)
	admin.Get("/businesses", cfg.Admin.ListBusinesses)
	admin.Patch("/businesses/:id/enabled", cfg.Admin.SetEnabled)
	admin.Patch("/businesses/:id/subscription", cfg.Admin.UpdateSubscription)
}
