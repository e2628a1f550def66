package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/gerunddev/draftbridge/internal/config"
	"github.com/gerunddev/draftbridge/internal/styles"
	"github.com/gerunddev/draftbridge/internal/substack"
)

var (
	errSetupRequired = errors.New("setup required")
	errAuthFailed    = errors.New("authentication failed")
)

// AuthCmd checks the credential environment and tries to log in
type AuthCmd struct{}

func (c *AuthCmd) Run(ctx context.Context, app *App) error {
	banner := styles.TitleStyle.Render("Substack Authentication Check")
	app.println(banner)
	app.println()
	app.println("Checking environment variables...")
	app.println()

	status := config.CheckEnvironment(app.Getenv)
	app.envLine(config.EnvPublicationURL, status.PublicationURL)
	switch status.Method {
	case config.AuthCookie:
		app.envLine(config.EnvCookie, status.Cookie)
	default:
		app.envLine(config.EnvEmail, status.Email)
		password := ""
		if app.Getenv(config.EnvPassword) != "" {
			password = "****"
		}
		app.envLine(config.EnvPassword, password)
	}

	if len(status.Missing) > 0 {
		app.println()
		app.println(styles.ErrorStyle.Render("SETUP REQUIRED"))
		app.println("\nOption 1 - Cookie auth (recommended):")
		app.println("  1. Log into Substack in your browser")
		app.println("  2. DevTools > Application > Cookies > substack.com")
		app.println("  3. Copy the 'substack.sid' cookie value")
		app.printf("  4. export %s=\"substack.sid=YOUR_VALUE\"\n", config.EnvCookie)
		app.println("\nOption 2 - Password auth:")
		app.printf("  export %s=\"your-email\"\n", config.EnvEmail)
		app.printf("  export %s=\"your-password\"\n", config.EnvPassword)
		app.println("\nAlso required:")
		app.printf("  export %s=\"https://yourpub.substack.com\"\n", config.EnvPublicationURL)
		return errSetupRequired
	}

	creds, err := config.LoadCredentials(app.Getenv)
	if err != nil {
		return err
	}

	app.printf("\nTesting authentication (%s method)...\n", creds.Method())
	userID, err := authenticate(ctx, creds, app.ClientOptions)
	app.Log.AuthChecked(string(creds.Method()), userID, err)
	if err != nil {
		app.println(styles.ErrorStyle.Render("  [FAILED] ") + err.Error())
		app.println()
		app.println(styles.ErrorStyle.Render("AUTHENTICATION FAILED"))
		app.println("\nPossible issues:")
		if creds.Method() == config.AuthCookie {
			app.println("1. Cookie expired - get a fresh one from browser")
			app.println("2. Wrong cookie format - should be 'substack.sid=VALUE'")
		} else {
			app.println("1. Wrong email/password")
			app.println("2. Account requires CAPTCHA - try cookie auth instead")
		}
		app.println("3. Publication URL doesn't match your account")
		return errAuthFailed
	}

	app.println(styles.SuccessStyle.Render("  [OK] ") + "Authenticated successfully")
	app.println(styles.SuccessStyle.Render("  [OK] ") + "User ID: " + strconv.FormatInt(userID, 10))
	app.println()
	app.println(styles.SuccessStyle.Render("ALL CHECKS PASSED"))
	app.println("\nYou're ready to publish to Substack!")
	return nil
}

func authenticate(ctx context.Context, creds *config.Credentials, opts []substack.Option) (int64, error) {
	client, err := substack.NewClient(ctx, creds, opts...)
	if err != nil {
		return 0, err
	}
	return client.UserID(ctx)
}

func (a *App) envLine(name, value string) {
	if value == "" {
		a.println(styles.ErrorStyle.Render("  [MISSING] ") + name)
		return
	}
	a.println(styles.SuccessStyle.Render("  [OK] ") + name + " = " + value)
}
