package commerce

import (
	"encoding/json"

	"resale/internal/types"
)

const accessTokenHeader = "X-Platform-Access-Token"

// The platform payloads are snapshotted verbatim; nothing in this system
// interprets individual items.
type (
	catalogItemsResponse struct {
		Products []json.RawMessage `json:"products"`
	}

	themeAssetsResponse struct {
		Themes []json.RawMessage `json:"themes"`
	}

	embeddedScriptsResponse struct {
		ScriptTags []json.RawMessage `json:"script_tags"`
	}

	structuredContentResponse struct {
		Metaobjects []json.RawMessage `json:"metaobjects"`
	}

	publishedContentResponse struct {
		Articles []json.RawMessage `json:"articles"`
	}
)

func category(items []json.RawMessage) types.ContentCategory {
	return types.ContentCategory{
		Items: items,
		Count: len(items),
	}
}
