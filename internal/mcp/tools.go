package mcp

import "github.com/mark3labs/mcp-go/mcp"

func createHighlightTool() mcp.Tool {
	return mcp.NewTool("create_highlight",
		mcp.WithDescription("Create a single highlight in Readwise."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The highlighted passage."),
		),
		mcp.WithString("title",
			mcp.Description("Title of the book or article the highlight comes from."),
		),
		mcp.WithString("author",
			mcp.Description("Author of the source."),
		),
		mcp.WithString("source_url",
			mcp.Description("URL of the source article or page."),
		),
		mcp.WithString("source_type",
			mcp.Description("Source app or integration the highlight comes from."),
		),
		mcp.WithString("category",
			mcp.Description("One of: books, articles, tweets, podcasts."),
		),
		mcp.WithString("note",
			mcp.Description("Annotation attached to the highlight. A note starting with \".word\" attaches the inline tag \"word\"."),
		),
		mcp.WithNumber("location",
			mcp.Description("Position of the highlight in the source."),
		),
		mcp.WithString("location_type",
			mcp.Description("One of: page, order, time_offset."),
		),
		mcp.WithString("highlighted_at",
			mcp.Description("When the highlight was taken, ISO 8601."),
		),
		mcp.WithString("highlight_url",
			mcp.Description("Unique URL of the highlight itself."),
		),
		mcp.WithString("image_url",
			mcp.Description("Cover image URL for the source."),
		),
	)
}

func createHighlightsTool() mcp.Tool {
	return mcp.NewTool("create_highlights",
		mcp.WithDescription("Create multiple highlights in Readwise with one call."),
		mcp.WithArray("highlights",
			mcp.Required(),
			mcp.Description("Highlights to create, in order. Each needs at least a text field."),
			mcp.Items(map[string]any{
				"type":     "object",
				"required": []string{"text"},
				"properties": map[string]any{
					"text":           map[string]any{"type": "string", "description": "The highlighted passage."},
					"title":          map[string]any{"type": "string"},
					"author":         map[string]any{"type": "string"},
					"source_url":     map[string]any{"type": "string"},
					"source_type":    map[string]any{"type": "string"},
					"category":       map[string]any{"type": "string"},
					"note":           map[string]any{"type": "string"},
					"location":       map[string]any{"type": "integer"},
					"location_type":  map[string]any{"type": "string"},
					"highlighted_at": map[string]any{"type": "string"},
					"highlight_url":  map[string]any{"type": "string"},
					"image_url":      map[string]any{"type": "string"},
				},
			}),
		),
	)
}

func getHighlightsTool() mcp.Tool {
	return mcp.NewTool("get_highlights",
		mcp.WithDescription("Fetch highlights from Readwise (first page)."),
	)
}
