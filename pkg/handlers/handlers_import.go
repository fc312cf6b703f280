package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prepline/schedule-import-go/pkg/importer"
	"github.com/prepline/schedule-import-go/pkg/models"
	"github.com/prepline/schedule-import-go/pkg/schedule"
)

// readUpload pulls the uploaded CSV out of the multipart form
func readUpload(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return nil, false
	}
	return data, true
}

// resolveMapping picks the mapping for an import run: a saved mapping by
// mapping_id, an inline mapping JSON payload, or nil when the caller
// wants format detection.
func (h *Handler) resolveMapping(c *gin.Context, organizationID string) (*models.ColumnMapping, bool) {
	if id := c.PostForm("mapping_id"); id != "" {
		saved, err := h.Store.FetchMappings(organizationID, scheduleContext)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load saved mappings"})
			return nil, false
		}
		for i := range saved {
			if saved[i].ID == id {
				return &saved[i], true
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found: " + id})
		return nil, false
	}

	if raw := c.PostForm("mapping"); raw != "" {
		var m models.ColumnMapping
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping payload"})
			return nil, false
		}
		return &m, true
	}

	return nil, true
}

// ImportSchedule handles a schedule CSV upload. Without a mapping it
// returns the detector's proposal for the caller to confirm or edit;
// with one it applies the mapping, stores the resulting shifts, and
// reports imported/skipped counts.
func (h *Handler) ImportSchedule(c *gin.Context) {
	organizationID := c.GetString("organizationID")

	data, ok := readUpload(c)
	if !ok {
		return
	}

	mapping, ok := h.resolveMapping(c, organizationID)
	if !ok {
		return
	}

	var weekStart time.Time
	if raw := c.PostForm("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	result, err := h.Importer.Import(data, importer.Options{
		OrganizationID: organizationID,
		Mapping:        mapping,
		WeekStart:      weekStart,
	})
	if err != nil {
		var incomplete *schedule.MappingIncompleteError
		switch {
		case errors.Is(err, importer.ErrFileUnreadable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &incomplete):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   incomplete.Error(),
				"missing": incomplete.Missing,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
		}
		return
	}

	if !result.NeedsMapping {
		h.RecordUsage(c, result.RowsTotal, result.Imported)
	}
	c.JSON(http.StatusOK, result)
}

// DetectSchedule inspects an uploaded CSV's header row and returns the
// proposed format classification and column bindings without importing.
func (h *Handler) DetectSchedule(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}

	headers, _, err := importer.ParseCSV(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detected := schedule.DetectFormat(headers)
	c.JSON(http.StatusOK, detected)
}
