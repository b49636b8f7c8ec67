package tools

import (
	"context"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetAllProductsInput struct{}

type CatalogEntry struct {
	ProductID       string   `json:"product_id"`
	Title           string   `json:"title"`
	Features        string   `json:"features"`
	Sizing          string   `json:"sizing"`
	AvailableColors []string `json:"available_colors"`
}

type GetAllProductsOutput struct {
	TotalProducts int            `json:"total_products"`
	Products      []CatalogEntry `json:"products"`
}

func newGetAllProductsTool(c *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetAllProducts,
			Desc:        "Get the complete product catalog with every available product: id, title, features, sizing and available colors. Use when the customer wants to browse everything.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *GetAllProductsInput) (*GetAllProductsOutput, error) {
			all := c.All()
			entries := make([]CatalogEntry, 0, len(all))
			for _, p := range all {
				entries = append(entries, CatalogEntry{
					ProductID:       p.ID,
					Title:           p.Title,
					Features:        p.Features,
					Sizing:          p.Sizing,
					AvailableColors: p.AvailableColors,
				})
			}
			return &GetAllProductsOutput{
				TotalProducts: len(entries),
				Products:      entries,
			}, nil
		},
	)
}
