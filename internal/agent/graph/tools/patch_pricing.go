package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetPatchPricingInput struct {
	PatchType string `json:"patch_type,omitempty"`
}

type GetPatchPricingOutput struct {
	PatchType    string             `json:"patch_type,omitempty"`
	UnitPrice    float64            `json:"unit_price,omitempty"`
	PatchPrices  map[string]float64 `json:"patch_prices,omitempty"`
	Currency     string             `json:"currency"`
	PricingNotes string             `json:"pricing_notes,omitempty"`

	Error          string   `json:"error,omitempty"`
	AvailableTypes []string `json:"available_types,omitempty"`
}

func newGetPatchPricingTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetPatchPricing,
			Desc: "Get custom patch pricing. With a patch_type, returns its per-unit price; without one, returns the whole patch price table. Patch types: molded_rubber, woven, embroidered, faux_leather, genuine_leather, debossed_leather, flexstyle, sublimated.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"patch_type": {
					Type: "string",
					Desc: "Optional patch type, e.g. woven, molded_rubber, genuine_leather",
				},
			}),
		},
		func(ctx context.Context, in *GetPatchPricingInput) (*GetPatchPricingOutput, error) {
			if strings.TrimSpace(in.PatchType) == "" {
				return &GetPatchPricingOutput{
					PatchPrices:  catalog.AllPatchPrices(),
					Currency:     "USD",
					PricingNotes: "Patch price is per unit, added on top of the base embroidered cap price.",
				}, nil
			}

			price, ok := catalog.PatchPrice(in.PatchType)
			if !ok {
				return &GetPatchPricingOutput{
					Error:          fmt.Sprintf("Unknown patch type %q", in.PatchType),
					AvailableTypes: catalog.PatchTypes(),
					Currency:       "USD",
				}, nil
			}

			return &GetPatchPricingOutput{
				PatchType: in.PatchType,
				UnitPrice: price,
				Currency:  "USD",
			}, nil
		},
	)
}

type CalculateTotalPriceInput struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity,omitempty"`
	EmbroideryType string `json:"embroidery_type,omitempty"`
	PatchType      string `json:"patch_type,omitempty"`
}

type CalculateTotalPriceOutput struct {
	Quote *catalog.Quote `json:"quote,omitempty"`
	Error string         `json:"error,omitempty"`
}

func newCalculateTotalPriceTool(c *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCalculateTotalPrice,
			Desc: "Calculate the complete itemized price for an order: base embroidery unit price at the quantity tier plus an optional per-unit patch upcharge. Use for complete quotes with patches.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "string",
					Desc:     "Product identifier, e.g. i7041",
					Required: true,
				},
				"quantity": {
					Type: "number",
					Desc: "Number of units (default 24)",
				},
				"embroidery_type": {
					Type: "string",
					Desc: "Embroidery type: 'flat' (default) or '3d'",
				},
				"patch_type": {
					Type: "string",
					Desc: "Optional patch type, e.g. woven, embroidered, molded_rubber",
				},
			}),
		},
		func(ctx context.Context, in *CalculateTotalPriceInput) (*CalculateTotalPriceOutput, error) {
			if in.ProductID == "" {
				return nil, fmt.Errorf("product_id is required")
			}
			if in.Quantity <= 0 {
				in.Quantity = 24
			}

			quote, err := c.QuoteTotal(in.ProductID, in.EmbroideryType, in.Quantity, in.PatchType)
			if err != nil {
				return &CalculateTotalPriceOutput{Error: err.Error()}, nil
			}
			return &CalculateTotalPriceOutput{Quote: quote}, nil
		},
	)
}
