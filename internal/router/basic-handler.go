package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type BasicHandler struct{}

var _ Route = &BasicHandler{}

func (r *BasicHandler) Filter() (method string, path string) {
	panic("handler did not implement Filter method")
}

func (r *BasicHandler) ToCache() CacheSetting {
	return Disabled
}

func (r *BasicHandler) CacheDuration() time.Duration {
	return 5 * time.Minute
}

func (r *BasicHandler) TemplatesToInject() []string {
	return []string{}
}

func (r *BasicHandler) Render(c *fiber.Ctx, supplements *Supplements, templateMap fiber.Map) (statusCode int, err error) {
	panic("handler did not implement Render method")
}
