package handlers

import (
	"net/http"

	"searchsync/internal/models"
	"searchsync/internal/syncer"

	"github.com/labstack/echo/v4"
)

// SyncAllHandler triggers a full reconciliation pass
// @Summary Run a full sync pass
// @Description Reconciles every source conversation into the content repository and search index
// @Tags sync
// @Produce json
// @Success 200 {object} models.SyncResponse
// @Failure 500 {object} models.SyncResponse
// @Router /api/sync [post]
func SyncAllHandler(s *syncer.Syncer) echo.HandlerFunc {
	return func(c echo.Context) error {
		report, err := s.SyncAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.SyncResponse{
				Success: false,
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.SyncResponse{
			Success: true,
			Report:  &report,
		})
	}
}

// SyncOneHandler reconciles a single conversation by id
// @Summary Sync one conversation
// @Description Reconciles a single source conversation; skips are reported as success
// @Tags sync
// @Produce json
// @Param id path string true "Conversation id"
// @Success 200 {object} models.SyncOneResponse
// @Failure 500 {object} models.SyncOneResponse
// @Router /api/sync/{id} [post]
func SyncOneHandler(s *syncer.Syncer) echo.HandlerFunc {
	return func(c echo.Context) error {
		conversationID := c.Param("id")

		synced, err := s.SyncOne(c.Request().Context(), conversationID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.SyncOneResponse{
				Success:        false,
				ConversationID: conversationID,
				Error:          err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.SyncOneResponse{
			Success:        true,
			ConversationID: conversationID,
			Synced:         synced,
		})
	}
}

// CleanupHandler wipes all synced records from the content repository
// @Summary Clean the downstream project
// @Description Deletes every conversation and user record under the bulk throttle
// @Tags sync
// @Produce json
// @Success 200 {object} models.CleanupResponse
// @Failure 500 {object} models.CleanupResponse
// @Router /api/cleanup [post]
func CleanupHandler(s *syncer.Syncer) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := s.CleanProject(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CleanupResponse{
				Success: false,
				Deleted: deleted,
				Error:   err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.CleanupResponse{
			Success: true,
			Deleted: deleted,
		})
	}
}
