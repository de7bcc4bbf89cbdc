package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/types"
)

type CategoryNode struct {
	types.Category
	Children []*CategoryNode `json:"children,omitempty"`
}

type CategoryHandler struct {
	categories repos.CategoryRepo
	log        *logger.Logger
}

func NewCategoryHandler(categories repos.CategoryRepo, baseLog *logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: baseLog.With("handler", "CategoryHandler")}
}

// GetTree returns the full category hierarchy, parents first with their
// leaves nested under them.
func (h *CategoryHandler) GetTree(c *gin.Context) {
	rows, err := h.categories.GetAll(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("Failed to list categories", "error", err)
		RespondError(c, http.StatusInternalServerError, "categories_list_failed", err)
		return
	}

	parents := map[string]*CategoryNode{}
	var tree []*CategoryNode
	for _, row := range rows {
		if row.ParentID == nil {
			node := &CategoryNode{Category: *row}
			parents[row.ID] = node
			tree = append(tree, node)
		}
	}
	for _, row := range rows {
		if row.ParentID == nil {
			continue
		}
		if parent, ok := parents[*row.ParentID]; ok {
			parent.Children = append(parent.Children, &CategoryNode{Category: *row})
		}
	}

	RespondOK(c, gin.H{"categories": tree})
}
