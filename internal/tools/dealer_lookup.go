package tools

import (
	"context"
	"encoding/json"

	"agrisentry/internal/dealers"
)

// DealerLookupName is the tool name exposed to the model during diagnosis.
const DealerLookupName = "dealers.lookup"

type dealerLookupTool struct {
	dir *dealers.Directory
}

// NewDealerLookup exposes the dealer directory as a model-callable tool.
func NewDealerLookup(dir *dealers.Directory) Tool {
	return &dealerLookupTool{dir: dir}
}

func (t *dealerLookupTool) Spec() Spec {
	return Spec{
		Name:        DealerLookupName,
		Description: "Get a list of agro-dealers who stock a specific category of product.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"productCategory":{"type":"string","description":"The category of product to search for, e.g., \"fungicide\", \"pesticide\", \"bio-pesticide\"."}},"required":["productCategory"]}`),
		OutputSchema: json.RawMessage(`{"type":"array","items":{"type":"object","properties":{"name":{"type":"string"},"address":{"type":"string"},"phone":{"type":"string"}}}}`),
	}
}

type dealerLookupInput struct {
	ProductCategory string `json:"productCategory"`
}

func (t *dealerLookupTool) Call(_ context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in dealerLookupInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	// Unknown categories and "none" come back as an empty list, not an error;
	// the model treats that as "no supplier available".
	return json.Marshal(t.dir.FindByCategory(in.ProductCategory))
}
