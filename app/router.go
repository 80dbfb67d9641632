package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	// users and sessions
	router.HandlerFunc(http.MethodPost, "/api/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/logout", app.logoutUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/user", app.requireAuthUser(app.currentUserHandler))

	// blogs
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/user/blogs", app.requireAuthUser(app.getUserBlogsHandler))

	// notifications
	router.HandlerFunc(http.MethodGet, "/api/notifications", app.requireAuthUser(app.getNotificationsHandler))
	router.HandlerFunc(http.MethodGet, "/api/user/notifications", app.requireAuthUser(app.getUserNotificationsHandler))
	router.HandlerFunc(http.MethodPost, "/api/notifications/:id/read", app.requireAuthUser(app.markNotificationReadHandler))

	// live channel
	router.HandlerFunc(http.MethodGet, "/ws", app.serveWS)

	router.HandlerFunc(http.MethodGet, "/api/health", app.healthCheckHandler)

	return app.recoverPanic(app.logRequest(app.authenticate(router)))
}
