package tools

import (
	"context"
	"fmt"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Tool names as exposed to the model.
const (
	ToolGetProductInfo      = "get_product_info"
	ToolSearchProducts      = "search_products"
	ToolGetProductPricing   = "get_product_pricing"
	ToolGetAllProducts      = "get_all_products"
	ToolGetPatchPricing     = "get_patch_pricing"
	ToolCalculateTotalPrice = "calculate_total_price"
)

// NewQueryTools builds the full tool set over the given catalog.
func NewQueryTools(c *catalog.Catalog) []tool.BaseTool {
	return []tool.BaseTool{
		newGetProductInfoTool(c),
		newSearchProductsTool(c),
		newGetProductPricingTool(c),
		newGetAllProductsTool(c),
		newGetPatchPricingTool(),
		newCalculateTotalPriceTool(c),
	}
}

// GetToolInfos collects ToolInfo from each tool for model binding.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
