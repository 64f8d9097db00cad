package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/model"
)

type generateRequest struct {
	Config *model.ProjectConfig `json:"config"`
}

type generateResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	ProjectID      string   `json:"project_id"`
	OutputPath     string   `json:"output_path"`
	FilesGenerated []string `json:"files_generated"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Path    string `json:"path,omitempty"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

// writeError translates err into its HTTP status and the standard body.
func (s *Server) writeError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Enrich(c.Request.Context(), s.logger).Error("request failed", "error", err.Error(), "path", c.FullPath())
	}

	detail := appErr.Detail
	if detail == "" && appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Success: false,
		Message: appErr.Message,
		Code:    string(appErr.Code),
		Field:   appErr.Field,
		Value:   appErr.Value,
		Path:    appErr.Path,
		Detail:  detail,
		TraceID: c.GetString("trace_id"),
	})
}
