package handlers

import (
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/VeranoAtelier/verano-web/internal/router"
	"github.com/gofiber/fiber/v2"
)

func init() {
	router.Routes = append(router.Routes, &ContactHandler{})
}

type ContactHandler struct {
	router.BasicHandler
}

func (r *ContactHandler) Filter() (method string, path string) {
	return "POST", "/api/v1/contact"
}

func (r *ContactHandler) TemplatesToInject() []string {
	return []string{"views/partials/contact-status.html"}
}

func (r *ContactHandler) Render(c *fiber.Ctx, supplements *router.Supplements, templateMap fiber.Map) (statusCode int, err error) {
	visitorName := strings.TrimSpace(c.FormValue("name"))
	replyTo := strings.TrimSpace(c.FormValue("email"))
	body := strings.TrimSpace(c.FormValue("message"))

	if visitorName == "" || body == "" {
		return fiber.StatusBadRequest, fmt.Errorf("contact form is missing a name or a message")
	}
	if _, err := mail.ParseAddress(replyTo); err != nil {
		return fiber.StatusBadRequest, fmt.Errorf("contact form reply address '%s' is invalid: %w", replyTo, err)
	}

	if err := supplements.Mailer.ContactMessage(visitorName, replyTo, body); err != nil {
		slog.Error("failed to forward a contact message",
			slog.String("ip", c.IP()),
			slog.String("error", err.Error()),
		)
		templateMap["Sent"] = false
		templateMap["Notice"] = supplements.L.Contact.OnSendError
		return fiber.StatusBadGateway, nil
	}

	slog.Debug("forwarded a contact message", slog.String("ip", c.IP()))
	templateMap["Sent"] = true
	templateMap["Notice"] = supplements.L.Contact.SentNotice
	return fiber.StatusOK, nil
}
