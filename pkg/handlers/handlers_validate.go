package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepline/schedule-import-go/pkg/mappings"
	"github.com/prepline/schedule-import-go/pkg/models"
)

func (h *Handler) missingFields(m *models.ColumnMapping) []string {
	missing := mappings.Validate(m)
	if missing == nil {
		missing = []string{}
	}
	return missing
}

// ValidateMapping checks a mapping draft against the required-field
// rules for its format without saving it, so the client can gate its
// save button.
func (h *Handler) ValidateMapping(c *gin.Context) {
	var m models.ColumnMapping
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	missing := h.missingFields(&m)
	if len(missing) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"missing": missing,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"format": m.Format,
		},
	})
}
