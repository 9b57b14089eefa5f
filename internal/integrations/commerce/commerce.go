package commerce

import (
	"context"

	"resale/internal/integrations"
	"resale/internal/types"
)

// Client is the read-only view of the storefront's commerce platform. Each
// list call is independent; a failing category never blocks the others.
type Client interface {
	ListCatalogItems(ctx context.Context) (types.ContentCategory, error)
	ListThemeAssets(ctx context.Context) (types.ContentCategory, error)
	ListEmbeddedScripts(ctx context.Context) (types.ContentCategory, error)
	ListStructuredContentObjects(ctx context.Context) (types.ContentCategory, error)
	ListPublishedContent(ctx context.Context) (types.ContentCategory, error)
}

type client struct {
	httpClient integrations.HttpClient
}

func NewClient(baseUrl, apiToken string) Client {
	return &client{
		httpClient: integrations.NewHttpClient(baseUrl, map[string]string{
			accessTokenHeader: apiToken,
		}),
	}
}

func (c client) ListCatalogItems(ctx context.Context) (types.ContentCategory, error) {
	result := &catalogItemsResponse{}
	if err := c.httpClient.Do(ctx, "GET", "products.json?limit=250", nil, result); err != nil {
		return types.ContentCategory{}, err
	}
	return category(result.Products), nil
}

func (c client) ListThemeAssets(ctx context.Context) (types.ContentCategory, error) {
	result := &themeAssetsResponse{}
	if err := c.httpClient.Do(ctx, "GET", "themes.json", nil, result); err != nil {
		return types.ContentCategory{}, err
	}
	return category(result.Themes), nil
}

func (c client) ListEmbeddedScripts(ctx context.Context) (types.ContentCategory, error) {
	result := &embeddedScriptsResponse{}
	if err := c.httpClient.Do(ctx, "GET", "script_tags.json", nil, result); err != nil {
		return types.ContentCategory{}, err
	}
	return category(result.ScriptTags), nil
}

func (c client) ListStructuredContentObjects(ctx context.Context) (types.ContentCategory, error) {
	result := &structuredContentResponse{}
	if err := c.httpClient.Do(ctx, "GET", "metaobjects.json", nil, result); err != nil {
		return types.ContentCategory{}, err
	}
	return category(result.Metaobjects), nil
}

func (c client) ListPublishedContent(ctx context.Context) (types.ContentCategory, error) {
	result := &publishedContentResponse{}
	if err := c.httpClient.Do(ctx, "GET", "articles.json", nil, result); err != nil {
		return types.ContentCategory{}, err
	}
	return category(result.Articles), nil
}
