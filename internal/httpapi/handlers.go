package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paper-code/go-papercode/internal/archive"
	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) projectTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"project_types": s.catalog.ProjectTypes()})
}

func (s *Server) techStacks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tech_stacks": s.catalog.TechStacks(c.Param("project_type"))})
}

func (s *Server) libraries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"libraries": s.catalog.Libraries(c.Param("tech_stack"))})
}

func (s *Server) fullConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Snapshot())
}

func (s *Server) aiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": s.gen.AIAvailable()})
}

func (s *Server) openapi(c *gin.Context) {
	c.JSON(http.StatusOK, s.spec)
}

func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperrors.InvalidField("config", "", "request body is not valid JSON").WithError(err))
		return
	}
	if req.Config == nil {
		s.writeError(c, apperrors.InvalidField("config", "", "config is required"))
		return
	}

	cfg := *req.Config
	if cfg.TemplateDir != "" {
		dir, err := s.resolveTemplateDir(cfg.TemplateDir)
		if err != nil {
			s.writeError(c, err)
			return
		}
		cfg.TemplateDir = dir
	}

	projectID := uuid.New().String()
	root := s.projectDir(projectID)

	ctx := logger.WithContext(c.Request.Context(), logger.ProjectIDKey, projectID)
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	result, err := s.gen.Generate(ctx, cfg, root)
	if err != nil {
		if rmErr := os.RemoveAll(root); rmErr != nil {
			logger.Enrich(ctx, s.logger).Warn("cleanup after failed generation", "error", rmErr.Error())
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Success:        true,
		Message:        "Project documentation generated successfully!",
		ProjectID:      projectID,
		OutputPath:     result.OutputRoot,
		FilesGenerated: result.Files,
	})
}

// resolveTemplateDir maps a client supplied template_dir onto the configured
// template root. Absolute paths and paths that climb out of the root are
// refused.
func (s *Server) resolveTemplateDir(requested string) (string, error) {
	if s.opts.TemplateRoot == "" {
		return "", apperrors.InvalidField("template_dir", requested, "template_dir is not enabled on this server")
	}
	if !filepath.IsLocal(requested) {
		return "", apperrors.InvalidField("template_dir", requested, "template_dir must be a relative path inside the server template root")
	}
	return filepath.Join(s.opts.TemplateRoot, requested), nil
}

func (s *Server) download(c *gin.Context) {
	projectID := c.Param("project_id")
	if _, err := uuid.Parse(projectID); err != nil {
		s.writeError(c, apperrors.InvalidField("project_id", projectID, "project id must be a UUID"))
		return
	}

	root := s.projectDir(projectID)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{
			Message: "Project not found",
			Code:    string(apperrors.CodeInvalidParam),
			Field:   "project_id",
			Value:   projectID,
		})
		return
	}

	var buf bytes.Buffer
	if err := archive.WriteZip(&buf, root); err != nil {
		s.writeError(c, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build archive"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="paper-code-project-%s.zip"`, projectID))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// cleanup removes every generated output root under the work directory. Other
// entries in the directory are left alone.
func (s *Server) cleanup(c *gin.Context) {
	entries, err := os.ReadDir(s.opts.WorkDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.writeError(c, apperrors.Wrap(err, apperrors.CodeInternal, "failed to read work directory"))
		return
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), ProjectDirPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.opts.WorkDir, entry.Name())); err != nil {
			s.writeError(c, apperrors.Wrap(err, apperrors.CodeInternal, "failed to remove generated project"))
			return
		}
		removed++
	}

	logger.Enrich(c.Request.Context(), s.logger).Info("work directory cleaned", "removed", removed)
	c.JSON(http.StatusOK, messageResponse{
		Message: "Temporary files cleaned up successfully",
		Removed: removed,
	})
}

func (s *Server) projectDir(projectID string) string {
	return filepath.Join(s.opts.WorkDir, ProjectDirPrefix+projectID)
}
