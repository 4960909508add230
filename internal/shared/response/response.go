package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Paket ini menulis body persis sesuai kontrak presentasi: payload sukses
// dikirim apa adanya (tanpa envelope), error berupa map field -> pesan
// atau {"error": "..."} untuk error tanpa field.

func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error menulis body error. Jika fields kosong, fallback ke bentuk
// {"error": message} seperti yang diharapkan frontend.
func Error(c *gin.Context, status int, fields map[string][]string, message string) {
	if len(fields) > 0 {
		c.JSON(status, fields)
		return
	}
	c.JSON(status, gin.H{"error": message})
}
