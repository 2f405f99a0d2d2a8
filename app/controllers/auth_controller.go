package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pressroom/newshub/app/models"
	"github.com/pressroom/newshub/internal/pkg/env"
	"github.com/pressroom/newshub/internal/pkg/hcaptcha"
	"github.com/pressroom/newshub/internal/pkg/mail"
	"github.com/pressroom/newshub/internal/pkg/session"
	"github.com/pressroom/newshub/internal/pkg/statistics"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		user, err := repos().User.GetByEmail(c.FormValue("email"))
		if err != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.CheckPassword(c.FormValue("password")) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.IsActive() {
			fm["message"] = "Please activate your account first. Check your inbox."

			return flash.WithError(c, fm).Redirect("/login")
		}

		if err := createLoginSession(c, user); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		now := time.Now()
		user.LastLoginAt = &now
		_ = repos().User.Update(user)

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back!",
		}

		return flash.WithSuccess(c, fm).Redirect("/")
	}

	return render(c, "auth/login", fiber.Map{
		"Title": "Login",
	})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	err = sess.Destroy()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Bye! See you soon.",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		// Verify hCaptcha token when configured
		if hcaptcha.IsEnabled() {
			valid, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
			if err != nil || !valid {
				errorMsg := "Captcha validation failed. Please try again."
				if err != nil && env.IsDev() {
					errorMsg = fmt.Sprintf("Captcha validation failed: %v", err)
				}

				fm := fiber.Map{
					"type":    "error",
					"message": errorMsg,
				}
				return flash.WithError(c, fm).Redirect("/register")
			}
		}

		// Sign-up supports readers and journalists; editor accounts come
		// from publication ownership only.
		role := c.FormValue("role", models.ROLE_READER)
		if role != models.ROLE_READER && role != models.ROLE_JOURNALIST {
			role = models.ROLE_READER
		}

		user, err := models.CreateUser(
			c.FormValue("email"),
			c.FormValue("password"),
			c.FormValue("first_name"),
			c.FormValue("last_name"),
			role,
		)
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := user.GenerateActivationToken(); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := repos().User.Create(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		sendActivationMail(user)

		// Update statistics after registration
		go statistics.UpdateStatisticsCache()

		fm := fiber.Map{
			"type":    "success",
			"message": "Registration successful! Check your inbox for the activation link.",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return render(c, "auth/register", fiber.Map{
		"Title":           "Register",
		"HCaptchaSitekey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	})
}

// HandleAuthActivate activates an account via the emailed token.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).SendString("activation token missing")
	}

	user, err := repos().User.GetByActivationToken(token)
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Invalid or expired activation link.",
		}
		return flash.WithError(c, fm).Redirect("/login")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repos().User.Update(user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}
		return flash.WithError(c, fm).Redirect("/login")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Account activated. You can log in now.",
	}
	return flash.WithSuccess(c, fm).Redirect("/login")
}

// createLoginSession writes the authenticated user into the session.
func createLoginSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.EffectiveDisplayName())
	sess.Set(USER_ROLE, user.Role)

	return sess.Save()
}

func sendActivationMail(user *models.User) {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	link := fmt.Sprintf("%s/activate?token=%s", base, user.ActivationToken)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>please confirm your account:</p><p><a href=\"%s\">%s</a></p>",
		user.FirstName, link, link,
	)

	// Fire and forget; registration must not block on SMTP.
	go func() {
		_ = mail.SendMail(user.Email, "Activate your account", body)
	}()
}
