package server

// Server aggregates the entity-specific HTTP servers.
type Server struct {
	AnalyzeServer
	MarginServer
	WebhookServer
}

func NewServer(
	analyzeServer AnalyzeServer,
	marginServer MarginServer,
	webhookServer WebhookServer,
) Server {
	return Server{
		AnalyzeServer: analyzeServer,
		MarginServer:  marginServer,
		WebhookServer: webhookServer,
	}
}
