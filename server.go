package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/timecrax/webapp/handlers"
	"github.com/timecrax/webapp/services"
)

const (
	requestTimeout = 60 * time.Second
	logDate        = "2006-01-02T15:04:05.000"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func requestLogger(cfg *Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logf(cfg, "SERVE: %s %s from %s in %s", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

func serve(ctx context.Context, cfg *Config) error {
	app := &handlers.App{
		BackendURL: cfg.backendURL,
		MinCards:   cfg.minCards,
		MaxCards:   cfg.maxCards,
		Drafts:     services.NewDraftStore(),
	}

	mux := httprouter.New()

	mux.GET("/", app.HomePage)

	mux.GET("/login", app.LoginPage)
	mux.POST("/perform-login", app.LoginHandler)
	mux.GET("/register", app.RegisterPage)
	mux.POST("/perform-register", app.RegisterHandler)
	mux.GET("/logout", app.LogoutHandler)

	mux.GET("/profile", app.ProfilePage)
	mux.POST("/update-profile", app.UpdateProfileHandler)
	mux.POST("/change-password", app.ChangePasswordHandler)
	mux.POST("/upload-picture", app.UploadPictureHandler)

	mux.GET("/ranking", app.RankingPage)
	mux.GET("/my-themes", app.MyThemesPage)
	mux.GET("/storage", app.StoragePage)

	mux.GET("/create-theme", app.NewThemePage)
	mux.POST("/create-theme/card", app.SaveCardHandler)
	mux.POST("/create-theme/card/delete", app.DeleteCardHandler)
	mux.POST("/create-theme/submit", app.SubmitThemeHandler)
	mux.GET("/themes/:id/edit", app.EditThemePage)
	mux.POST("/themes/:id/delete", app.DeleteThemeHandler)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           requestLogger(cfg, mux),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       requestTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("Server shutdown:", err)
		}
	}()

	logf(cfg, "START: timecrax-web v%s", releaseVersion)
	log.Println("Server listening on", srv.Addr)

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
