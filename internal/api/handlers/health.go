package handlers

import (
	"github.com/wb-go/wbf/ginext"
)

func Health(c *ginext.Context) {
	OK(c.Writer, map[string]string{"status": "ok"})
}
