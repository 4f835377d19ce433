package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/models"
	"botfolio/internal/services"
)

// maxBackupUploadBytes bounds imported backup files.
const maxBackupUploadBytes = 10 << 20

// BackupHandler handles backup snapshot requests.
type BackupHandler struct {
	backupService services.BackupServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// GetBackups handles listing snapshots.
// @Summary     List backups
// @Description Get all backup snapshots, newest first
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Backup "Backup snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups [get]
func (h *BackupHandler) GetBackups(c *gin.Context) {
	backups, err := h.backupService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": backups, "total": len(backups)})
}

// CreateBackup handles taking a manual snapshot.
// @Summary     Create backup
// @Description Take a manual snapshot of the catalog, activity log, and settings
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} models.Backup "Backup created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups [post]
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	backup, err := h.backupService.Create(actor, models.BackupManual)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"backup": backup})
}

// RestoreBackup handles restoring a snapshot.
// @Summary     Restore backup
// @Description Restore the catalog, activity log, and settings from a snapshot
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Backup ID"
// @Success     200 {object} MessageResponse "Backup restored"
// @Failure     400 {object} ErrorResponse "Invalid backup ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Backup not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups/{id}/restore [post]
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseBackupID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.backupService.Restore(id, actor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

// DeleteBackup handles deleting a snapshot.
// @Summary     Delete backup
// @Description Delete a backup snapshot by ID
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Backup ID"
// @Success     200 {object} MessageResponse "Backup deleted"
// @Failure     400 {object} ErrorResponse "Invalid backup ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Backup not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups/{id} [delete]
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseBackupID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.backupService.Delete(id, actor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup deleted successfully"})
}

// ExportBackup handles downloading one snapshot as a JSON file.
// @Summary     Export backup
// @Description Download a backup snapshot as a JSON attachment
// @Tags        backups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Backup ID"
// @Success     200 {file} file "JSON backup export"
// @Failure     400 {object} ErrorResponse "Invalid backup ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Backup not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups/{id}/export [get]
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parseBackupID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, filename, err := h.backupService.Export(id, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ImportBackup handles uploading a previously exported snapshot file.
// @Summary     Import backup
// @Description Upload a previously exported backup file
// @Tags        backups
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Backup JSON file"
// @Success     201 {object} models.Backup "Backup imported"
// @Failure     400 {object} ErrorResponse "Invalid or malformed backup file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/backups/import [post]
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A backup file is required"))
		return
	}
	if fileHeader.Size > maxBackupUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Backup file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBackupUploadBytes))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	backup, err := h.backupService.Import(data, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"backup": backup})
}
