package routes

import (
	"bytes"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/config"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 960px; padding: 40px 20px; font-family: Georgia, serif; color: #132019; }
    h1 { margin-bottom: 4px; }
    .muted { color: #536258; }
    table { width: 100%; border-collapse: collapse; margin-top: 24px; }
    th, td { padding: 8px 10px; text-align: left; border-bottom: 1px solid #d8ddd6; }
    code { font-size: 0.92rem; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p class="muted">Development-only endpoint reference, generated {{ .LoadedAt }}. All /api/v1 routes expect a Bearer token.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Description</th></tr>
    {{ range .Endpoints }}<tr><td><code>{{ .Method }}</code></td><td><code>{{ .Path }}</code></td><td>{{ .Description }}</td></tr>
    {{ end }}
  </table>
</body>
</html>
`

type docsEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type docsPageData struct {
	Title     string
	LoadedAt  string
	Endpoints []docsEndpoint
}

var docsEndpoints = []docsEndpoint{
	{"POST", "/api/auth/register", "Create an account and receive a token"},
	{"POST", "/api/auth/login", "Exchange credentials for a token"},
	{"GET", "/api/auth/me", "Current account"},
	{"GET", "/api/v1/users", "List users"},
	{"PUT", "/api/v1/users/profile", "Update own profile"},
	{"GET", "/api/v1/users/:id", "Fetch a user"},
	{"GET", "/api/v1/users/:id/posts", "Posts authored by a user"},
	{"GET", "/api/v1/matches", "Matches involving the caller"},
	{"POST", "/api/v1/matches", "Request a match"},
	{"GET", "/api/v1/matches/potential", "Scored candidates without a match record"},
	{"GET", "/api/v1/matches/score/:userId", "Compatibility score against one user"},
	{"PUT", "/api/v1/matches/:id/status", "Move a match to accepted or declined"},
	{"POST", "/api/v1/matches/:id/accept", "Accept a pending match"},
	{"POST", "/api/v1/matches/:id/decline", "Decline a pending match"},
	{"GET", "/api/v1/posts", "Paginated feed"},
	{"POST", "/api/v1/posts", "Publish a post"},
	{"GET", "/api/v1/posts/:id", "Fetch a post"},
	{"POST", "/api/v1/posts/:id/like", "Like a post"},
	{"DELETE", "/api/v1/posts/:id/like", "Remove a like"},
	{"GET", "/api/v1/challenges", "List challenges"},
	{"POST", "/api/v1/challenges", "Create a challenge"},
	{"GET", "/api/v1/challenges/:id", "Challenge with leaderboard"},
	{"PUT", "/api/v1/challenges/:id", "Update a challenge (creator only)"},
	{"DELETE", "/api/v1/challenges/:id", "Delete a challenge (creator only)"},
	{"POST", "/api/v1/challenges/:id/join", "Join a challenge"},
	{"POST", "/api/v1/challenges/:id/leave", "Leave a challenge"},
	{"PUT", "/api/v1/challenges/:id/progress", "Report challenge progress"},
	{"GET", "/api/v1/leaderboard", "Global points leaderboard"},
	{"GET", "/api/v1/conversations", "Conversations with unread counts"},
	{"POST", "/api/v1/conversations", "Open a conversation with an accepted match"},
	{"GET", "/api/v1/conversations/:id/messages", "Paginated message history"},
	{"POST", "/api/v1/conversations/:id/messages", "Send a message"},
	{"POST", "/api/v1/conversations/:id/read", "Mark a conversation read"},
	{"GET", "/api/v1/workouts", "Workout log"},
	{"POST", "/api/v1/workouts", "Record a workout"},
	{"GET", "/api/v1/workouts/:id", "Fetch a workout"},
	{"DELETE", "/api/v1/workouts/:id", "Delete a workout"},
	{"GET", "/api/v1/progress", "Per-day workout rollup"},
	{"GET", "/api/v1/ws", "WebSocket chat (token via query or Bearer header)"},
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	indexTemplate := template.Must(template.New("docs-index").Parse(docsIndexHTML))
	pageData := docsPageData{
		Title:     "FitBuddyBack API Docs",
		LoadedAt:  time.Now().UTC().Format(time.RFC3339),
		Endpoints: docsEndpoints,
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}
		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/endpoints.json", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"endpoints": docsEndpoints})
	})
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
	c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")
}
