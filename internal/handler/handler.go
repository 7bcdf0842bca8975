// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler wires HTTP routes to the service layer. Public
// routes serve JSON page payloads; back-office mutations answer with
// redirects carrying success/error flags in the query string.
package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/stconstruction/website/internal/middleware"
	"github.com/stconstruction/website/internal/service"
	"github.com/stconstruction/website/internal/upload"
)

// Handler holds the dependencies shared by all routes.
type Handler struct {
	sessions *scs.SessionManager

	users     *service.Users
	cities    *service.Cities
	projects  *service.Projects
	news      *service.News
	settings  *service.Settings
	callbacks *service.Callbacks

	imageValidator *upload.Validator
	logoValidator  *upload.Validator
	saver          *upload.Saver

	loginProtection *middleware.LoginProtection
}

// Deps bundles the constructor arguments for New.
type Deps struct {
	Sessions *scs.SessionManager

	Users     *service.Users
	Cities    *service.Cities
	Projects  *service.Projects
	News      *service.News
	Settings  *service.Settings
	Callbacks *service.Callbacks

	Saver *upload.Saver
}

// New returns a Handler over the given dependencies.
func New(d Deps) *Handler {
	return &Handler{
		sessions:        d.Sessions,
		users:           d.Users,
		cities:          d.Cities,
		projects:        d.Projects,
		news:            d.News,
		settings:        d.Settings,
		callbacks:       d.Callbacks,
		imageValidator:  upload.NewValidator(upload.MaxImageSize),
		logoValidator:   upload.NewValidator(upload.MaxLogoSize),
		saver:           d.Saver,
		loginProtection: middleware.NewLoginProtection(),
	}
}

// Routes registers every route on r. resolver must already be in the
// middleware chain so identity is available.
func (h *Handler) Routes(r chi.Router) {
	// public pages
	r.Get(RouteHome, h.Home)
	r.Get(RouteContacts, h.Contacts)
	r.Get(RouteProjects, h.ProjectList)
	r.Get(RouteProjects+"/{slug}", h.ProjectDetail)
	r.Get(RouteNews, h.NewsList)
	r.Get(RouteNews+"/{slug}", h.NewsDetail)
	r.Get(RouteHealth, h.Health)

	r.With(middleware.PerIPRateLimit(0.2, 3)).
		Post(RouteCallback, h.SubmitCallback)

	// session auth
	r.Route("/auth", func(r chi.Router) {
		r.With(h.loginProtection.Middleware()).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		// public sign-up, throttled to 3 per hour per IP
		r.With(middleware.PerIPRateLimit(3.0/3600, 3)).
			Post("/register", h.Register)
	})

	// back office, superusers only
	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Use(middleware.RequireSuperuser)

		r.Get("/", h.Dashboard)

		registerCRUD(r, "/cities", crudHandlers{
			list: h.AdminCityList, add: h.AdminCityAdd,
			edit: h.AdminCityEdit, delete: h.AdminCityDelete,
		})
		registerCRUD(r, "/projects", crudHandlers{
			list: h.AdminProjectList, add: h.AdminProjectAdd,
			edit: h.AdminProjectEdit, delete: h.AdminProjectDelete,
		})
		r.Post("/projects/{id}/toggle-publish", h.AdminProjectTogglePublish)

		registerCRUD(r, "/news", crudHandlers{
			list: h.AdminNewsList, add: h.AdminNewsAdd,
			edit: h.AdminNewsEdit, delete: h.AdminNewsDelete,
		})
		r.Post("/news/{id}/toggle-publish", h.AdminNewsTogglePublish)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.AdminUserList)
			r.Post("/add", h.AdminUserAdd)
			r.Post("/{id}/edit", h.AdminUserEdit)
			r.Post("/{id}/delete", h.AdminUserDelete)
		})

		r.Get("/settings", h.AdminSettingsShow)
		r.Post("/settings", h.AdminSettingsUpdate)

		r.Get("/callbacks", h.AdminCallbackList)
		r.Post("/callbacks/{id}/process", h.AdminCallbackProcess)
		r.Post("/callbacks/{id}/delete", h.AdminCallbackDelete)
	})
}

type crudHandlers struct {
	list, add, edit, delete http.HandlerFunc
}

// registerCRUD mounts the standard list/add/edit/delete route shape
// used by every back-office entity.
func registerCRUD(r chi.Router, prefix string, hs crudHandlers) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", hs.list)
		r.Post("/add", hs.add)
		r.Post("/{id}/edit", hs.edit)
		r.Post("/{id}/delete", hs.delete)
	})
}
