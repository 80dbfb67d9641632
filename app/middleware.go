package main

import (
	"fmt"
	"log/slog"
	"net/http"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the session cookie to a user and stashes it in the
// request context. Requests without a valid session proceed anonymously;
// protected routes reject them via requireAuthUser.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, ok := app.sessions.Get(cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := app.userService.UserByID(r.Context(), session.UserID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		if user == nil {
			// the user vanished under a live session; treat as anonymous
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, app.createUserContext(r, user))
	})
}

func (app *application) requireAuthUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.getUserContext(r) == nil {
			app.notAuthenticatedErrorResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}
}
