// Package web встраивает статическую страницу загрузчика в бинарник.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var files embed.FS

//go:embed static/index.html
var indexHTML []byte

// Static отдаёт содержимое каталога static для r.StaticFS.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Index отдаёт страницу по корневому пути.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
