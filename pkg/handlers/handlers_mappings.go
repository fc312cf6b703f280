package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepline/schedule-import-go/pkg/models"
)

// importContext reads the context query parameter, defaulting to the
// schedule import screens.
func importContext(c *gin.Context) string {
	if ctx := c.Query("context"); ctx != "" {
		return ctx
	}
	return scheduleContext
}

// ListMappings returns all saved mappings for the authenticated
// organization and context. No saved mappings is an empty list.
func (h *Handler) ListMappings(c *gin.Context) {
	organizationID := c.GetString("organizationID")

	saved, err := h.Store.FetchMappings(organizationID, importContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load saved mappings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": saved})
}

// SaveMapping validates and persists a mapping for the organization. A
// mapping that fails validation is rejected before any store call and
// stays editable on the client.
func (h *Handler) SaveMapping(c *gin.Context) {
	organizationID := c.GetString("organizationID")

	var m models.ColumnMapping
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Store.SaveMapping(organizationID, importContext(c), &m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save mapping"})
		return
	}
	if !saved {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"saved":   false,
			"missing": h.missingFields(&m),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true, "mapping": m})
}

// DeleteMapping removes a saved mapping. Deleting an unknown id is not
// an error.
func (h *Handler) DeleteMapping(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteMapping(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete mapping"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted"})
}
