// status.go - privacy-conscious site status
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/stream"
)

type SiteStatus struct {
	StartedAt time.Time     `json:"started_at"`
	Uptime    string        `json:"uptime"`
	Skills    int           `json:"skills"`
	Backdrop  stream.Stats  `json:"backdrop"`
	Contact   contact.Stats `json:"contact"`
}

var hashingSalt string

// initPrivacySalt picks a per-process salt, so visitor keys cannot be linked
// across restarts.
func initPrivacySalt() {
	hashingSalt = generateSalt()
	log.Info().Msg("privacy: visitors are keyed by salted IP hashes and nothing is stored")
}

func generateSalt() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal().Err(err).Msg("failed to generate salt")
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy (consistent per IP within one process)
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func siteStatus(c *gin.Context, app *App) (*SiteStatus, error) {
	skills, err := app.Content.ListSkills(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &SiteStatus{
		StartedAt: app.Started,
		Uptime:    time.Since(app.Started).Round(time.Second).String(),
		Skills:    len(skills),
		Backdrop:  app.Backdrop.Stats(),
		Contact:   app.Contact.Stats(),
	}, nil
}

func setupStatusRoutes(r *gin.Engine, app *App) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
			"theme": themeOf(c),
		})
	})

	r.GET("/status", func(c *gin.Context) {
		status, err := siteStatus(c, app)
		if err != nil {
			renderError(c, err, "Failed to load status")
			return
		}
		c.HTML(http.StatusOK, "status.html", gin.H{
			"status":  status,
			"started": humanize.Time(status.StartedAt),
			"frames":  humanize.Comma(int64(status.Backdrop.Frames)),
		})
	})

	r.GET("/status/api", func(c *gin.Context) {
		status, err := siteStatus(c, app)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, status)
	})

	// Status export (for backups or analysis)
	r.GET("/status/export", func(c *gin.Context) {
		status, err := siteStatus(c, app)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=site-status.json")
		c.JSON(http.StatusOK, status)
	})
}
