package tools

import (
	"context"
	"fmt"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetProductInfoInput struct {
	ProductID string `json:"product_id"`
}

type GetProductInfoOutput struct {
	ProductID       string                        `json:"product_id,omitempty"`
	Title           string                        `json:"title,omitempty"`
	Features        string                        `json:"features,omitempty"`
	Sizing          string                        `json:"sizing,omitempty"`
	Pricing         map[string]map[string]float64 `json:"pricing,omitempty"`
	AvailableColors []string                      `json:"available_colors,omitempty"`

	// Soft-error payload so the model can recover instead of aborting.
	Error                   string   `json:"error,omitempty"`
	AvailableProductsSample []string `json:"available_product_ids_sample,omitempty"`
	Hint                    string   `json:"hint,omitempty"`
}

func newGetProductInfoTool(c *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductInfo,
			Desc: "Get detailed information about a specific product from the catalog: title, features, sizing, flat and 3D embroidery pricing for every quantity tier, and available colors. Accepts product IDs with or without the 'i' prefix (e.g. 'i3038' or '3038').",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "string",
					Desc:     "Product identifier, e.g. i3038, 3038, i7041, i8501",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductInfoInput) (*GetProductInfoOutput, error) {
			if in.ProductID == "" {
				return nil, fmt.Errorf("product_id is required")
			}

			p, ok := c.Get(in.ProductID)
			if !ok {
				return &GetProductInfoOutput{
					Error:                   fmt.Sprintf("Product %s not found", catalog.NormalizeID(in.ProductID)),
					AvailableProductsSample: c.SampleIDs(10),
					Hint:                    "Try using product ID with or without 'i' prefix",
				}, nil
			}

			return &GetProductInfoOutput{
				ProductID: p.ID,
				Title:     p.Title,
				Features:  p.Features,
				Sizing:    p.Sizing,
				Pricing: map[string]map[string]float64{
					"flat_embroidery": p.FlatEmbroidery,
					"3d_embroidery":   p.ThreeDEmbroidery,
				},
				AvailableColors: p.AvailableColors,
			}, nil
		},
	)
}
