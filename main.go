package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/backdrop"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/stream"
	"github.com/Zachkp/portfolio/internal/tilt"
)

// App is everything the routes need.
type App struct {
	Content  content.Provider
	Contact  *contact.Service
	Backdrop *stream.Hub
	Started  time.Time
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Load()

	tuning, err := config.BackdropConfig(cfg.TuningPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TuningPath).Msg("invalid backdrop tuning")
	}
	var current atomic.Pointer[backdrop.Config]
	current.Store(&tuning)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalogue")
	}
	defer db.Close()

	catalogue, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ContentPath).Msg("failed to load content")
	}
	if _, err := db.Seed(context.Background(), catalogue); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalogue")
	}

	initPrivacySalt()

	app := &App{
		Content:  db,
		Contact:  contact.NewService(mailer.NewSMTP(cfg.SMTP), cfg.ContactTo, cfg.ContactPerMinute, cfg.ContactBurst),
		Backdrop: stream.NewHub(func() backdrop.Config { return *current.Load() }),
		Started:  time.Now(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := config.WatchTuning(ctx, cfg.TuningPath, func(c backdrop.Config) { current.Store(&c) }); err != nil {
			log.Warn().Err(err).Msg("tuning hot reload disabled")
		}
	}()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: newRouter(app)}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("portfolio listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func newRouter(app *App) *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(template.FuncMap{
		"tiltRest": func() template.CSS { return template.CSS(tilt.Neutral.CSS(tilt.DefaultPerspective)) },
		"percent":  func(proficiency int) int { return proficiency * 10 },
	})
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")

	// Home page: every section in order, one theme flag threaded through
	r.GET("/", func(c *gin.Context) {
		theme := themeOf(c)
		skills, err := app.Content.ListSkills(c.Request.Context())
		if err != nil {
			renderError(c, err, "Failed to load skills")
			return
		}
		experience, err := app.Content.ListExperience(c.Request.Context())
		if err != nil {
			renderError(c, err, "Failed to load experience")
			return
		}

		data := skillsData(theme, skills, content.AllCategories)
		data["initials"] = Initials
		data["name"] = FullName
		data["headline"] = Headline
		data["heroBlurb"] = HeroBlurb
		data["aboutMe"] = AboutMe
		data["experience"] = experience
		data["projects"] = Projects
		data["publications"] = Publications
		data["contacts"] = Contacts
		data["socials"] = Socials
		data["contact"] = contact.State{}
		data["tilt"] = tilt.Default
		data["year"] = time.Now().Year()
		c.HTML(http.StatusOK, "index.html", data)
	})

	r.POST("/theme", func(c *gin.Context) {
		next := "light"
		if themeOf(c) == "light" {
			next = "dark"
		}
		c.SetCookie("theme", next, 3600*24*365, "/", "", false, true)
		c.Redirect(http.StatusSeeOther, "/")
	})

	// HTMX skills grid filtered by category
	r.GET("/skills-content", func(c *gin.Context) {
		category := c.DefaultQuery("category", content.AllCategories)
		skills, err := app.Content.ListSkills(c.Request.Context())
		if err != nil {
			renderError(c, err, "Failed to load skills")
			return
		}
		c.HTML(http.StatusOK, "skills.html", skillsData(themeOf(c), skills, category))
	})

	r.GET("/experience-content", func(c *gin.Context) {
		experience, err := app.Content.ListExperience(c.Request.Context())
		if err != nil {
			renderError(c, err, "Failed to load experience")
			return
		}
		c.HTML(http.StatusOK, "experience.html", gin.H{
			"theme":      themeOf(c),
			"experience": experience,
		})
	})

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"theme":   themeOf(c),
			"contact": contact.State{},
		})
	})

	// Contact form submission with HTMX: the form comes back cleared on
	// success and untouched on failure
	r.POST("/contact", func(c *gin.Context) {
		var form contact.Form
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusOK, "contact.html", gin.H{
				"theme": themeOf(c),
				"contact": contact.State{
					Form:  form,
					Error: "Please fill in every field with a valid email address.",
				},
			})
			return
		}

		state := app.Contact.Submit(c.Request.Context(), hashIP(c.ClientIP()), form)
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"theme":   themeOf(c),
			"contact": state,
		})
	})

	r.GET("/ws/backdrop", gin.WrapH(app.Backdrop))

	setupStatusRoutes(r, app)
	return r
}

type categoryView struct {
	Key      string
	Label    string
	Selected bool
}

func skillsData(theme string, skills []content.Skill, category string) gin.H {
	cats := make([]categoryView, len(content.Categories))
	for i, k := range content.Categories {
		cats[i] = categoryView{Key: k, Label: content.CategoryLabel(k), Selected: k == category}
	}
	return gin.H{
		"theme":      theme,
		"categories": cats,
		"selected":   category,
		"skills":     content.FilterSkills(skills, category),
		"tilt":       tilt.Default,
	}
}

func themeOf(c *gin.Context) string {
	if t, err := c.Cookie("theme"); err == nil && t == "light" {
		return "light"
	}
	return "dark"
}

func renderError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"error": msg,
	})
}
