package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// Meta serves lookup data for clients
type Meta struct {
	logger *zap.Logger
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(logger *zap.Logger) *Meta {
	return &Meta{logger: logger}
}

// Labels handles GET /meta/labels
// @Summary      Display labels
// @Description  Every status, role and type label in the requested locale, keyed by table then value
// @Tags         Meta
// @Produce      json
// @Param        locale  query     string  false  "en or ar"
// @Success      200     {object}  map[string]map[string]string
// @Router       /meta/labels [get]
func (h *Meta) Labels(c echo.Context) error {
	return HandleSuccess(h.logger, c, entities.LabelTables(locale(c)))
}
