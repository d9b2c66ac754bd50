// Command pagecraft runs the pages engine with a plain built-in theme.
// All site branding comes from environment variables via SiteConfig.
package main

import (
	"log"
	"time"

	"github.com/averill/pagecraft"
)

func main() {
	cfg := pagecraft.SiteConfig{
		Name:        pagecraft.EnvOr("SITE_NAME", "Pages"),
		URL:         pagecraft.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: pagecraft.EnvOr("SITE_DESCRIPTION", ""),
		Author:      pagecraft.EnvOr("SITE_AUTHOR", ""),

		Addr:         pagecraft.EnvOr("ADDR", ":3000"),
		DatabasePath: pagecraft.EnvOr("DATABASE_PATH", "data/pages.db"),

		AdminPassword: pagecraft.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: pagecraft.MustEnv("SESSION_SECRET"),
		CookieSecure:  pagecraft.EnvOr("COOKIE_SECURE", "") != "",

		PageCacheTTL: 5 * time.Minute,
	}

	app := pagecraft.New(cfg, defaultViews(cfg), pagecraft.WithStaticDir(pagecraft.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
