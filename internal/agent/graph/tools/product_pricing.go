package tools

import (
	"context"
	"fmt"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetProductPricingInput struct {
	ProductID      string `json:"product_id"`
	EmbroideryType string `json:"embroidery_type,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
}

type GetProductPricingOutput struct {
	ProductID      string  `json:"product_id,omitempty"`
	ProductTitle   string  `json:"product_title,omitempty"`
	EmbroideryType string  `json:"embroidery_type,omitempty"`
	Quantity       int     `json:"quantity,omitempty"`
	UnitPrice      float64 `json:"unit_price,omitempty"`
	TotalCost      float64 `json:"total_cost,omitempty"`
	Currency       string  `json:"currency,omitempty"`

	Error               string   `json:"error,omitempty"`
	AvailableQuantities []string `json:"available_quantities,omitempty"`
}

func newGetProductPricingTool(c *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductPricing,
			Desc: "Get exact pricing for a product given embroidery type and order quantity. Quantity tiers: 24, 48, 96, 144, 576, 2500+. Embroidery types: flat, 3d.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "string",
					Desc:     "Product identifier, e.g. i3038, i7041",
					Required: true,
				},
				"embroidery_type": {
					Type: "string",
					Desc: "Embroidery type: 'flat' (default) or '3d'",
				},
				"quantity": {
					Type: "number",
					Desc: "Number of units (default 24)",
				},
			}),
		},
		func(ctx context.Context, in *GetProductPricingInput) (*GetProductPricingOutput, error) {
			if in.ProductID == "" {
				return nil, fmt.Errorf("product_id is required")
			}
			if in.Quantity <= 0 {
				in.Quantity = 24
			}
			embroidery := catalog.NormalizeEmbroidery(in.EmbroideryType)

			p, ok := c.Get(in.ProductID)
			if !ok {
				return &GetProductPricingOutput{
					Error: fmt.Sprintf("Product %s not found", catalog.NormalizeID(in.ProductID)),
				}, nil
			}

			unitPrice, err := c.UnitPrice(in.ProductID, embroidery, in.Quantity)
			if err != nil {
				return &GetProductPricingOutput{
					Error:               err.Error(),
					AvailableQuantities: catalog.QuantityTiers,
				}, nil
			}

			return &GetProductPricingOutput{
				ProductID:      p.ID,
				ProductTitle:   p.Title,
				EmbroideryType: embroidery,
				Quantity:       in.Quantity,
				UnitPrice:      unitPrice,
				TotalCost:      unitPrice * float64(in.Quantity),
				Currency:       "USD",
			}, nil
		},
	)
}
