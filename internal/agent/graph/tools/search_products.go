package tools

import (
	"context"
	"fmt"

	"github.com/nexusflow-ai/server/internal/catalog"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type SearchProductsInput struct {
	Keyword string `json:"keyword"`
}

type SearchResult struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Features  string `json:"features"`
}

type SearchProductsOutput struct {
	Keyword  string         `json:"keyword,omitempty"`
	Matches  int            `json:"matches,omitempty"`
	Products []SearchResult `json:"products,omitempty"`

	Error          string   `json:"error,omitempty"`
	SampleProducts []string `json:"sample_products,omitempty"`
	Hint           string   `json:"hint,omitempty"`
}

const searchFeaturesPreview = 100

func newSearchProductsTool(c *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProducts,
			Desc: "Search for products by keyword in title or features. Good keywords: trucker, performance, mesh, wool, athletic, snapback, visor, UV.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"keyword": {
					Type:     "string",
					Desc:     "Search term to find in the product catalog",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SearchProductsInput) (*SearchProductsOutput, error) {
			if in.Keyword == "" {
				return nil, fmt.Errorf("keyword is required")
			}

			matches := c.Search(in.Keyword)
			if len(matches) == 0 {
				return &SearchProductsOutput{
					Error:          fmt.Sprintf("No products found for %q", in.Keyword),
					SampleProducts: c.SampleTitles(5),
					Hint:           "Try keywords like: trucker, performance, mesh, wool, athletic",
				}, nil
			}

			results := make([]SearchResult, 0, len(matches))
			for _, p := range matches {
				features := p.Features
				if len(features) > searchFeaturesPreview {
					features = features[:searchFeaturesPreview] + "..."
				}
				results = append(results, SearchResult{
					ProductID: p.ID,
					Title:     p.Title,
					Features:  features,
				})
			}

			return &SearchProductsOutput{
				Keyword:  in.Keyword,
				Matches:  len(results),
				Products: results,
			}, nil
		},
	)
}
